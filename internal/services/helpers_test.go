package services

import (
	"context"
	"sync"

	"netwatch/internal/models"
)

// scriptedSource replays snapshots in order and keeps returning the last
// one; once failFrom is reached every read returns err.
type scriptedSource struct {
	mu       sync.Mutex
	snaps    []models.CounterSnapshot
	err      error
	failFrom int
	calls    int
}

func newScriptedSource(snaps ...models.CounterSnapshot) *scriptedSource {
	return &scriptedSource{snaps: snaps, failFrom: -1}
}

func (s *scriptedSource) failAfter(n int, err error) *scriptedSource {
	s.failFrom = n
	s.err = err
	return s
}

func (s *scriptedSource) ReadCounters(ctx context.Context) (models.CounterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	if s.failFrom >= 0 && i >= s.failFrom {
		return models.CounterSnapshot{}, s.err
	}
	if i >= len(s.snaps) {
		return s.snaps[len(s.snaps)-1], nil
	}
	return s.snaps[i], nil
}

func snap(sent, recv uint64) models.CounterSnapshot {
	return models.CounterSnapshot{BytesSent: sent, BytesRecv: recv}
}

type resetRecorder struct {
	mu         sync.Mutex
	directions []string
}

func (r *resetRecorder) ObserveCounterReset(direction string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directions = append(r.directions, direction)
}

type recordingRenderer struct {
	mu      sync.Mutex
	frames  []models.ChartFrame
	reports []models.StatusReport
	onChart func(models.ChartFrame)
}

func (r *recordingRenderer) RenderChart(frame models.ChartFrame) error {
	if r.onChart != nil {
		r.onChart(frame)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return nil
}

func (r *recordingRenderer) RenderStatus(report models.StatusReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

func (r *recordingRenderer) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recordingRenderer) reportCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func (r *recordingRenderer) lastFrame() models.ChartFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func (r *recordingRenderer) lastReport() models.StatusReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports[len(r.reports)-1]
}
