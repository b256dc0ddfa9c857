package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"netwatch/internal/models"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// LoopState is the phase the monitor loop is in
type LoopState int32

const (
	StateIdle LoopState = iota
	StateSampling
	StateRendering
	StateStopped
)

func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	case StateRendering:
		return "rendering"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ChartRenderer receives the whole series after every append.
// Implementations must treat the frame as read-only.
type ChartRenderer interface {
	RenderChart(frame models.ChartFrame) error
}

// StatusRenderer receives the classified rates of every tick
type StatusRenderer interface {
	RenderStatus(report models.StatusReport) error
}

// LogRenderer writes the status line through the application logger
type LogRenderer struct {
	Log *zap.SugaredLogger
}

func (r LogRenderer) RenderStatus(report models.StatusReport) error {
	r.Log.Infow("[MONITOR] "+report.Line,
		"upload_kibps", report.UploadRate,
		"download_kibps", report.DownloadRate,
	)
	return nil
}

// MonitorOptions wires a Monitor. Sampler and Settings are required.
type MonitorOptions struct {
	Clock    clock.Clock
	Sampler  *RateSampler
	Settings *SettingsStore
	Charts   []ChartRenderer
	Statuses []StatusRenderer
	Log      *zap.SugaredLogger
}

// Monitor drives Idle -> Sampling -> Rendering -> Idle on a single
// goroutine. It owns the rolling series and the sampler exclusively.
type Monitor struct {
	clock    clock.Clock
	sampler  *RateSampler
	settings *SettingsStore
	series   *RollingSeries
	charts   []ChartRenderer
	statuses []StatusRenderer
	log      *zap.SugaredLogger

	state atomic.Int32
	ticks atomic.Uint64
}

// NewMonitor creates a monitor whose series is sized from the current settings
func NewMonitor(opts MonitorOptions) (*Monitor, error) {
	if opts.Sampler == nil {
		return nil, errors.New("monitor: sampler is required")
	}
	if opts.Settings == nil {
		return nil, errors.New("monitor: settings are required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}

	series, err := NewRollingSeries(opts.Settings.Get().Capacity)
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		clock:    opts.Clock,
		sampler:  opts.Sampler,
		settings: opts.Settings,
		series:   series,
		charts:   opts.Charts,
		statuses: opts.Statuses,
		log:      opts.Log,
	}
	m.setState(StateStopped)
	return m, nil
}

// State returns the current loop phase
func (m *Monitor) State() LoopState {
	return LoopState(m.state.Load())
}

// Ticks returns the number of completed samples
func (m *Monitor) Ticks() uint64 {
	return m.ticks.Load()
}

func (m *Monitor) setState(s LoopState) {
	m.state.Store(int32(s))
}

// Run loops until ctx is cancelled (returns nil) or a tick fails (returns
// the error). Failed ticks are not retried.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.setState(StateStopped)

	m.log.Infow("[MONITOR] loop started", "settings", m.settings.Get())
	for {
		// The interval is read once per cycle so the rate divisor always
		// matches the time actually waited.
		interval := m.settings.Get().IntervalSeconds

		m.setState(StateIdle)
		if err := m.wait(ctx, interval); err != nil {
			m.log.Infow("[MONITOR] loop stopped", "ticks", m.Ticks())
			return nil
		}

		if err := m.Tick(ctx, interval); err != nil {
			m.log.Errorw("[MONITOR] tick failed, stopping loop", "error", err)
			return err
		}
	}
}

func (m *Monitor) wait(ctx context.Context, seconds float64) error {
	timer := m.clock.Timer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Tick runs one Sampling and one Rendering phase for an interval that has
// already elapsed
func (m *Monitor) Tick(ctx context.Context, intervalSeconds float64) error {
	m.setState(StateSampling)

	if err := m.series.SetCapacity(m.settings.Get().Capacity); err != nil {
		return err
	}

	upload, download, _, err := m.sampler.Sample(ctx, intervalSeconds)
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}

	now := m.clock.Now()
	sample := models.RateSample{
		UploadRate:   upload,
		DownloadRate: download,
		ObservedAt:   now.Format(models.TimestampLayout),
	}
	m.series.Append(sample.ObservedAt, sample.UploadRate, sample.DownloadRate)
	m.ticks.Add(1)

	m.setState(StateRendering)

	frame := BuildChartFrame(m.series)
	for _, r := range m.charts {
		if err := r.RenderChart(frame); err != nil {
			m.log.Warnw("[MONITOR] chart render failed", "error", err)
		}
	}

	report := NewStatusReport(sample, now)
	for _, r := range m.statuses {
		if err := r.RenderStatus(report); err != nil {
			m.log.Warnw("[MONITOR] status render failed", "error", err)
		}
	}

	return nil
}
