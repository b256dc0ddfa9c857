package services

import "netwatch/internal/models"

// Chart labels
const (
	ChartTitle     = "Real-time Network Speed"
	ChartXLabel    = "Time"
	ChartYLabel    = "Speed (KB/s)"
	UploadLegend   = "Upload KB/s"
	DownloadLegend = "Download KB/s"
)

// BuildChartFrame turns a snapshot of the series into a frame for chart
// renderers
func BuildChartFrame(series *RollingSeries) models.ChartFrame {
	points := series.Snapshot()
	labels := make([]string, len(points))
	uploads := make([]float64, len(points))
	downloads := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Timestamp
		uploads[i] = p.UploadRate
		downloads[i] = p.DownloadRate
	}
	return models.ChartFrame{
		Title:  ChartTitle,
		XLabel: ChartXLabel,
		YLabel: ChartYLabel,
		Labels: labels,
		Series: []models.ChartSeries{
			{Name: UploadLegend, Color: "red", Values: uploads},
			{Name: DownloadLegend, Color: "green", Values: downloads},
		},
	}
}
