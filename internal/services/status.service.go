package services

import (
	"fmt"
	"time"

	"netwatch/internal/models"
)

// Status thresholds in KiB/s
const (
	GoodThreshold      = 50.0
	ExcellentThreshold = 200.0
)

// Classify maps a rate in KiB/s to its status tier
func Classify(rate float64) models.Status {
	switch {
	case rate < GoodThreshold:
		return models.StatusSlow
	case rate < ExcellentThreshold:
		return models.StatusGood
	default:
		return models.StatusExcellent
	}
}

// FormatStatusLine renders the one-line summary shown under the chart
func FormatStatusLine(upload, download float64) string {
	return fmt.Sprintf("Current Upload: %.2f KB/s (%s) | Current Download: %.2f KB/s (%s)",
		upload, Classify(upload).Label(),
		download, Classify(download).Label(),
	)
}

// NewStatusReport classifies both rates of a sample
func NewStatusReport(sample models.RateSample, at time.Time) models.StatusReport {
	return models.StatusReport{
		UploadRate:     sample.UploadRate,
		DownloadRate:   sample.DownloadRate,
		UploadStatus:   Classify(sample.UploadRate),
		DownloadStatus: Classify(sample.DownloadRate),
		Line:           FormatStatusLine(sample.UploadRate, sample.DownloadRate),
		ObservedAt:     sample.ObservedAt,
		Timestamp:      at,
	}
}
