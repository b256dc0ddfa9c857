package services

import (
	"errors"
	"sync"

	"netwatch/internal/models"
)

// ValidateInterval checks an interval against the accepted range
func ValidateInterval(seconds float64) error {
	if !(seconds >= models.MinIntervalSeconds && seconds <= models.MaxIntervalSeconds) {
		return &RangeError{
			Field: "interval_seconds",
			Value: seconds,
			Min:   models.MinIntervalSeconds,
			Max:   models.MaxIntervalSeconds,
			err:   ErrInvalidInterval,
		}
	}
	return nil
}

// ValidateCapacity checks a capacity against the accepted range
func ValidateCapacity(capacity int) error {
	if capacity < models.MinCapacity || capacity > models.MaxCapacity {
		return &RangeError{
			Field: "capacity",
			Value: float64(capacity),
			Min:   models.MinCapacity,
			Max:   models.MaxCapacity,
			err:   ErrInvalidCapacity,
		}
	}
	return nil
}

// ValidateSettings reports every out-of-range field
func ValidateSettings(s models.MonitorSettings) error {
	return errors.Join(ValidateInterval(s.IntervalSeconds), ValidateCapacity(s.Capacity))
}

// SettingsStore holds the settings shared between the control surfaces
// and the monitor loop. A rejected update leaves the previous value intact.
type SettingsStore struct {
	mu      sync.RWMutex
	current models.MonitorSettings
}

// NewSettingsStore validates and stores the initial settings
func NewSettingsStore(initial models.MonitorSettings) (*SettingsStore, error) {
	if err := ValidateSettings(initial); err != nil {
		return nil, err
	}
	return &SettingsStore{current: initial}, nil
}

// Get returns the current settings
func (s *SettingsStore) Get() models.MonitorSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces both settings atomically
func (s *SettingsStore) Update(next models.MonitorSettings) (models.MonitorSettings, error) {
	return s.Patch(&next.IntervalSeconds, &next.Capacity)
}

// Patch applies the non-nil fields on top of the current settings under a
// single lock, so a concurrent step is never lost
func (s *SettingsStore) Patch(intervalSeconds *float64, capacity *int) (models.MonitorSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	if intervalSeconds != nil {
		next.IntervalSeconds = *intervalSeconds
	}
	if capacity != nil {
		next.Capacity = *capacity
	}
	if err := ValidateSettings(next); err != nil {
		return s.current, err
	}
	s.current = next
	return s.current, nil
}

// SetInterval changes only the interval
func (s *SettingsStore) SetInterval(seconds float64) (models.MonitorSettings, error) {
	return s.Patch(&seconds, nil)
}

// SetCapacity changes only the capacity
func (s *SettingsStore) SetCapacity(capacity int) (models.MonitorSettings, error) {
	return s.Patch(nil, &capacity)
}

// StepInterval moves the interval by steps of models.IntervalStep
func (s *SettingsStore) StepInterval(steps int) (models.MonitorSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.IntervalSeconds + float64(steps)*models.IntervalStep
	if err := ValidateInterval(next); err != nil {
		return s.current, err
	}
	s.current.IntervalSeconds = next
	return s.current, nil
}

// StepCapacity moves the capacity by steps of models.CapacityStep
func (s *SettingsStore) StepCapacity(steps int) (models.MonitorSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Capacity + steps*models.CapacityStep
	if err := ValidateCapacity(next); err != nil {
		return s.current, err
	}
	s.current.Capacity = next
	return s.current, nil
}
