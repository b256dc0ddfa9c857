package models

import "time"

// CounterSnapshot is one read of the host-wide cumulative byte counters
type CounterSnapshot struct {
	BytesSent uint64    `json:"bytes_sent"`
	BytesRecv uint64    `json:"bytes_recv"`
	TakenAt   time.Time `json:"taken_at"`
}

// RateSample is the throughput derived from two consecutive snapshots
type RateSample struct {
	UploadRate   float64 `json:"upload_rate"`   // KiB/s
	DownloadRate float64 `json:"download_rate"` // KiB/s
	ObservedAt   string  `json:"observed_at"`   // HH:MM:SS
}
