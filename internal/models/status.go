package models

import (
	"fmt"
	"time"
)

// Status is the qualitative tier of a rate
type Status int

const (
	StatusSlow Status = iota
	StatusGood
	StatusExcellent
)

// Label returns the icon and name shown next to a rate
func (s Status) Label() string {
	switch s {
	case StatusSlow:
		return "⚠️ Slow"
	case StatusGood:
		return "✅ Good"
	case StatusExcellent:
		return "🚀 Excellent"
	default:
		return "unknown"
	}
}

func (s Status) String() string {
	switch s {
	case StatusSlow:
		return "slow"
	case StatusGood:
		return "good"
	case StatusExcellent:
		return "excellent"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name in JSON payloads
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "slow":
		*s = StatusSlow
	case "good":
		*s = StatusGood
	case "excellent":
		*s = StatusExcellent
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// StatusReport is what the log collaborator receives for each tick
type StatusReport struct {
	UploadRate     float64   `json:"upload_rate"`
	DownloadRate   float64   `json:"download_rate"`
	UploadStatus   Status    `json:"upload_status"`
	DownloadStatus Status    `json:"download_status"`
	Line           string    `json:"line"`
	ObservedAt     string    `json:"observed_at"`
	Timestamp      time.Time `json:"timestamp"`
}
