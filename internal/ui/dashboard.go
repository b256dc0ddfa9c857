// Package ui hosts the terminal dashboard: the chart, the status line and
// keyboard controls for the sampling settings.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"netwatch/internal/models"
	"netwatch/internal/services"

	termui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"go.uber.org/zap"
)

// ErrQuit is returned by Run when the user asks to exit
var ErrQuit = errors.New("dashboard closed by user")

var seriesColors = map[string]termui.Color{
	"red":   termui.ColorRed,
	"green": termui.ColorGreen,
}

// Dashboard renders the monitor output with termui. Render calls arrive
// from the monitor goroutine and key events from Run, so widget access is
// serialized by mu.
type Dashboard struct {
	mu       sync.Mutex
	settings *services.SettingsStore
	log      *zap.SugaredLogger
	started  bool
	notice   string

	grid     *termui.Grid
	plot     *widgets.Plot
	status   *widgets.Paragraph
	controls *widgets.Paragraph
}

// NewDashboard builds the widgets; nothing is drawn until Run
func NewDashboard(settings *services.SettingsStore, log *zap.SugaredLogger) *Dashboard {
	plot := widgets.NewPlot()
	plot.Title = " " + services.ChartTitle + " "
	plot.Marker = widgets.MarkerBraille
	plot.Data = [][]float64{{0, 0}, {0, 0}}
	plot.LineColors = []termui.Color{termui.ColorRed, termui.ColorGreen}
	plot.AxesColor = termui.ColorWhite
	plot.MaxVal = 1

	status := widgets.NewParagraph()
	status.Title = " Status "
	status.Text = "Waiting for the first sample..."

	controls := widgets.NewParagraph()
	controls.Title = " Settings "

	d := &Dashboard{
		settings: settings,
		log:      log,
		plot:     plot,
		status:   status,
		controls: controls,
	}
	d.updateControls(settings.Get())
	return d
}

func (d *Dashboard) RenderChart(frame models.ChartFrame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	legend := make([]string, 0, len(frame.Series))
	data := make([][]float64, 0, len(frame.Series))
	colors := make([]termui.Color, 0, len(frame.Series))
	peak := 0.0
	for _, s := range frame.Series {
		legend = append(legend, fmt.Sprintf("%s (%s)", s.Name, s.Color))
		values := s.Values
		// braille plots need two points per line
		for len(values) < 2 {
			values = append([]float64{0}, values...)
		}
		for _, v := range values {
			peak = max(peak, v)
		}
		data = append(data, values)
		colors = append(colors, seriesColors[s.Color])
	}

	d.plot.Data = data
	d.plot.LineColors = colors
	d.plot.DataLabels = frame.Labels
	d.plot.MaxVal = 0
	if peak < 1 {
		d.plot.MaxVal = 1
	}

	span := ""
	if n := len(frame.Labels); n > 0 {
		span = fmt.Sprintf(" %s %s to %s ", frame.XLabel, frame.Labels[0], frame.Labels[n-1])
	}
	d.plot.Title = fmt.Sprintf(" %s, %s |%s| %s ", frame.Title, frame.YLabel, span, strings.Join(legend, " "))

	d.draw()
	return nil
}

func (d *Dashboard) RenderStatus(report models.StatusReport) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.status.Text = fmt.Sprintf("[%s](fg:cyan) %s", report.ObservedAt, report.Line)
	// settings may also change over HTTP
	d.updateControls(d.settings.Get())
	d.draw()
	return nil
}

// draw must be called with mu held
func (d *Dashboard) draw() {
	if d.started {
		termui.Render(d.grid)
	}
}

func (d *Dashboard) updateControls(s models.MonitorSettings) {
	text := fmt.Sprintf(
		"Interval: %.1fs  [←/→](fg:yellow) step %.1f in [%.1f, %.1f]    Capacity: %d  [↓/↑](fg:yellow) step %d in [%d, %d]    [q](fg:yellow) quit",
		s.IntervalSeconds, models.IntervalStep, models.MinIntervalSeconds, models.MaxIntervalSeconds,
		s.Capacity, models.CapacityStep, models.MinCapacity, models.MaxCapacity,
	)
	if d.notice != "" {
		text += "\n" + d.notice
	}
	d.controls.Text = text
}

// Run takes over the terminal until ctx is done (returns nil) or the user
// quits (returns ErrQuit)
func (d *Dashboard) Run(ctx context.Context) error {
	if err := termui.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer termui.Close()

	d.mu.Lock()
	d.grid = termui.NewGrid()
	width, height := termui.TerminalDimensions()
	d.grid.SetRect(0, 0, width, height)
	d.grid.Set(
		termui.NewRow(0.7, termui.NewCol(1.0, d.plot)),
		termui.NewRow(0.15, termui.NewCol(1.0, d.status)),
		termui.NewRow(0.15, termui.NewCol(1.0, d.controls)),
	)
	d.started = true
	d.draw()
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.started = false
		d.mu.Unlock()
	}()

	events := termui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-events:
			if e.Type == termui.ResizeEvent {
				payload := e.Payload.(termui.Resize)
				d.mu.Lock()
				d.grid.SetRect(0, 0, payload.Width, payload.Height)
				termui.Clear()
				d.draw()
				d.mu.Unlock()
				continue
			}
			if e.Type != termui.KeyboardEvent {
				continue
			}
			if e.ID == "q" || e.ID == "<C-c>" {
				return ErrQuit
			}
			d.HandleKey(e.ID)
		}
	}
}

// HandleKey applies a settings key. Rejected changes leave the settings
// untouched and show the accepted range.
func (d *Dashboard) HandleKey(id string) {
	var (
		next models.MonitorSettings
		err  error
	)
	switch id {
	case "<Right>":
		next, err = d.settings.StepInterval(1)
	case "<Left>":
		next, err = d.settings.StepInterval(-1)
	case "<Up>":
		next, err = d.settings.StepCapacity(1)
	case "<Down>":
		next, err = d.settings.StepCapacity(-1)
	default:
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.notice = err.Error()
	} else {
		d.notice = ""
		d.log.Infow("[UI] settings updated", "settings", next)
	}
	d.updateControls(next)
	d.draw()
}
