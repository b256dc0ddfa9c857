package models

// TimestampLayout formats series labels as HH:MM:SS
const TimestampLayout = "15:04:05"

// SeriesPoint is one synchronized entry of the rolling series
type SeriesPoint struct {
	Timestamp    string  `json:"timestamp"`
	UploadRate   float64 `json:"upload_rate"`   // KiB/s
	DownloadRate float64 `json:"download_rate"` // KiB/s
}

// ChartSeries is one named line of a chart
type ChartSeries struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// ChartFrame is an immutable, presentation-neutral copy of the series
// handed to chart renderers
type ChartFrame struct {
	Title  string        `json:"title"`
	XLabel string        `json:"x_label"`
	YLabel string        `json:"y_label"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}
