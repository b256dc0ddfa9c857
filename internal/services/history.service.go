package services

import (
	"fmt"

	"netwatch/internal/models"
)

// RollingSeries is a fixed-capacity FIFO of timestamp/upload/download
// triples kept in three parallel ring buffers that share head and size.
// It is owned by the monitor loop and is not safe for concurrent use.
type RollingSeries struct {
	timestamps []string
	uploads    []float64
	downloads  []float64
	head       int // oldest entry
	size       int
}

// NewRollingSeries creates an empty series holding at most capacity entries
func NewRollingSeries(capacity int) (*RollingSeries, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: series capacity must be at least 1, got %d", ErrInvalidCapacity, capacity)
	}
	return &RollingSeries{
		timestamps: make([]string, capacity),
		uploads:    make([]float64, capacity),
		downloads:  make([]float64, capacity),
	}, nil
}

// Capacity returns the maximum number of retained entries
func (rs *RollingSeries) Capacity() int {
	return len(rs.timestamps)
}

// Len returns the number of retained entries
func (rs *RollingSeries) Len() int {
	return rs.size
}

func (rs *RollingSeries) index(i int) int {
	return (rs.head + i) % len(rs.timestamps)
}

// Append adds one triple, overwriting the oldest once the series is full
func (rs *RollingSeries) Append(timestamp string, upload, download float64) {
	var slot int
	if rs.size < len(rs.timestamps) {
		slot = rs.index(rs.size)
		rs.size++
	} else {
		slot = rs.head
		rs.head = (rs.head + 1) % len(rs.timestamps)
	}

	rs.timestamps[slot] = timestamp
	rs.uploads[slot] = upload
	rs.downloads[slot] = download
}

// SetCapacity resizes the series, dropping the oldest entries if the
// retained suffix no longer fits
func (rs *RollingSeries) SetCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: series capacity must be at least 1, got %d", ErrInvalidCapacity, capacity)
	}
	if capacity == len(rs.timestamps) {
		return nil
	}

	keep := min(rs.size, capacity)
	skip := rs.size - keep

	timestamps := make([]string, capacity)
	uploads := make([]float64, capacity)
	downloads := make([]float64, capacity)
	for i := 0; i < keep; i++ {
		src := rs.index(skip + i)
		timestamps[i] = rs.timestamps[src]
		uploads[i] = rs.uploads[src]
		downloads[i] = rs.downloads[src]
	}

	rs.timestamps = timestamps
	rs.uploads = uploads
	rs.downloads = downloads
	rs.head = 0
	rs.size = keep
	return nil
}

// Snapshot returns a chronological copy of the retained entries
func (rs *RollingSeries) Snapshot() []models.SeriesPoint {
	points := make([]models.SeriesPoint, rs.size)
	for i := range points {
		j := rs.index(i)
		points[i] = models.SeriesPoint{
			Timestamp:    rs.timestamps[j],
			UploadRate:   rs.uploads[j],
			DownloadRate: rs.downloads[j],
		}
	}
	return points
}
