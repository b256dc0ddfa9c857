package models

// MonitorSettings is the runtime-adjustable part of the configuration
type MonitorSettings struct {
	IntervalSeconds float64 `json:"interval_seconds"`
	Capacity        int     `json:"capacity"`
}

// Bounds and defaults for MonitorSettings
const (
	DefaultIntervalSeconds = 1.0
	MinIntervalSeconds     = 0.5
	MaxIntervalSeconds     = 5.0
	IntervalStep           = 0.5

	DefaultCapacity = 60
	MinCapacity     = 10
	MaxCapacity     = 200
	CapacityStep    = 10
)

// DefaultSettings returns the startup settings
func DefaultSettings() MonitorSettings {
	return MonitorSettings{
		IntervalSeconds: DefaultIntervalSeconds,
		Capacity:        DefaultCapacity,
	}
}
