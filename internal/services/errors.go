package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailableCounters means the OS counter read failed or timed out
	ErrUnavailableCounters = errors.New("network counters unavailable")
	// ErrInvalidInterval means a sampling interval outside the accepted range
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidCapacity means a series capacity outside the accepted range
	ErrInvalidCapacity = errors.New("invalid capacity")
)

// RangeError reports a rejected setting together with the accepted range
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
	err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %s=%g, accepted range is [%g, %g]", e.err, e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return e.err
}
