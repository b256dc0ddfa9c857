package services

import (
	"context"
	"fmt"

	"netwatch/internal/models"

	"go.uber.org/zap"
)

// bytesPerKiB converts byte counts to the KiB/s unit used everywhere
const bytesPerKiB = 1024

// ResetObserver is notified when a counter went backwards
type ResetObserver interface {
	ObserveCounterReset(direction string)
}

// RateSampler turns consecutive counter snapshots into KiB/s rates.
// It is owned by a single goroutine and is not safe for concurrent use.
type RateSampler struct {
	source   CounterSource
	previous models.CounterSnapshot
	log      *zap.SugaredLogger
	observer ResetObserver
}

// NewRateSampler primes the sampler with one counter read
func NewRateSampler(ctx context.Context, source CounterSource, log *zap.SugaredLogger, observer ResetObserver) (*RateSampler, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	first, err := source.ReadCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("prime sampler: %w", err)
	}
	return &RateSampler{
		source:   source,
		previous: first,
		log:      log,
		observer: observer,
	}, nil
}

// Previous returns the snapshot the next delta is computed against
func (s *RateSampler) Previous() models.CounterSnapshot {
	return s.previous
}

// Sample reads the counters and returns upload and download rates in KiB/s
// over intervalSeconds. Rates are never negative: a counter that moved
// backwards counts as zero bytes for this interval.
func (s *RateSampler) Sample(ctx context.Context, intervalSeconds float64) (upload, download float64, current models.CounterSnapshot, err error) {
	if !(intervalSeconds > 0) {
		return 0, 0, models.CounterSnapshot{}, fmt.Errorf("%w: interval must be positive, got %g", ErrInvalidInterval, intervalSeconds)
	}

	current, err = s.source.ReadCounters(ctx)
	if err != nil {
		return 0, 0, models.CounterSnapshot{}, err
	}

	sent := s.delta("sent", current.BytesSent, s.previous.BytesSent)
	recv := s.delta("recv", current.BytesRecv, s.previous.BytesRecv)

	upload = float64(sent) / intervalSeconds / bytesPerKiB
	download = float64(recv) / intervalSeconds / bytesPerKiB

	s.previous = current
	return upload, download, current, nil
}

func (s *RateSampler) delta(direction string, current, previous uint64) uint64 {
	if current >= previous {
		return current - previous
	}
	s.log.Warnw("[MONITOR] counter went backwards, clamping interval to zero",
		"direction", direction,
		"previous", previous,
		"current", current,
	)
	if s.observer != nil {
		s.observer.ObserveCounterReset(direction)
	}
	return 0
}
