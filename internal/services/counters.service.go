package services

import (
	"context"
	"fmt"
	"time"

	"netwatch/internal/models"

	"github.com/benbjohnson/clock"
	"github.com/shirou/gopsutil/v3/net"
)

// DefaultCounterTimeout bounds a single counter read
const DefaultCounterTimeout = 2 * time.Second

// CounterSource reads the host-wide cumulative byte counters
type CounterSource interface {
	ReadCounters(ctx context.Context) (models.CounterSnapshot, error)
}

type ioCountersFunc func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)

// HostCounterSource reads aggregate counters through gopsutil
type HostCounterSource struct {
	clock   clock.Clock
	timeout time.Duration
	read    ioCountersFunc
}

// NewHostCounterSource creates a counter source for the local host.
// A zero timeout falls back to DefaultCounterTimeout.
func NewHostCounterSource(clk clock.Clock, timeout time.Duration) *HostCounterSource {
	if clk == nil {
		clk = clock.New()
	}
	if timeout <= 0 {
		timeout = DefaultCounterTimeout
	}
	return &HostCounterSource{
		clock:   clk,
		timeout: timeout,
		read:    net.IOCountersWithContext,
	}
}

type ioCountersResult struct {
	counters []net.IOCountersStat
	err      error
}

// ReadCounters returns the summed sent/received bytes across all interfaces.
// A read that fails, reports nothing or outlives the timeout is
// ErrUnavailableCounters.
func (s *HostCounterSource) ReadCounters(ctx context.Context) (models.CounterSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan ioCountersResult, 1)
	go func() {
		counters, err := s.read(ctx, false)
		done <- ioCountersResult{counters: counters, err: err}
	}()

	var res ioCountersResult
	select {
	case res = <-done:
	case <-ctx.Done():
		return models.CounterSnapshot{}, fmt.Errorf("%w: %v", ErrUnavailableCounters, ctx.Err())
	}

	if res.err != nil {
		return models.CounterSnapshot{}, fmt.Errorf("%w: %v", ErrUnavailableCounters, res.err)
	}
	if len(res.counters) == 0 {
		return models.CounterSnapshot{}, fmt.Errorf("%w: no interfaces reported", ErrUnavailableCounters)
	}

	// pernic=false yields a single "all" entry; summing keeps this correct
	// on platforms that ignore the flag
	snap := models.CounterSnapshot{TakenAt: s.clock.Now()}
	for _, counter := range res.counters {
		snap.BytesSent += counter.BytesSent
		snap.BytesRecv += counter.BytesRecv
	}
	return snap, nil
}
