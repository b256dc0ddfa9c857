package services

import (
	"sync"

	"netwatch/internal/models"
)

// LatestCache keeps the most recent frame and status report for readers
// outside the monitor goroutine
type LatestCache struct {
	mu     sync.RWMutex
	frame  *models.ChartFrame
	report *models.StatusReport
}

// NewLatestCache creates an empty cache
func NewLatestCache() *LatestCache {
	return &LatestCache{}
}

func (c *LatestCache) RenderChart(frame models.ChartFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = &frame
	return nil
}

func (c *LatestCache) RenderStatus(report models.StatusReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = &report
	return nil
}

// Frame returns the last published frame, or an empty frame before the
// first tick
func (c *LatestCache) Frame() models.ChartFrame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.frame == nil {
		return models.ChartFrame{
			Title:  ChartTitle,
			XLabel: ChartXLabel,
			YLabel: ChartYLabel,
			Labels: []string{},
			Series: []models.ChartSeries{
				{Name: UploadLegend, Color: "red", Values: []float64{}},
				{Name: DownloadLegend, Color: "green", Values: []float64{}},
			},
		}
	}
	return *c.frame
}

// Report returns the last status report, or false before the first tick
func (c *LatestCache) Report() (models.StatusReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.report == nil {
		return models.StatusReport{}, false
	}
	return *c.report, true
}
