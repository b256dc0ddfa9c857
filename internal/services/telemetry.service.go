package services

import (
	"netwatch/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry exports the monitor's readings as Prometheus metrics
type Telemetry struct {
	uploadRate    prometheus.Gauge
	downloadRate  prometheus.Gauge
	statusTier    *prometheus.GaugeVec
	seriesLength  prometheus.Gauge
	ticks         prometheus.Counter
	counterResets *prometheus.CounterVec
}

// NewTelemetry registers the monitor metrics with reg
func NewTelemetry(reg prometheus.Registerer) *Telemetry {
	factory := promauto.With(reg)
	return &Telemetry{
		uploadRate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "netwatch",
			Name:      "upload_kibibytes_per_second",
			Help:      "Most recent upload rate in KiB/s.",
		}),
		downloadRate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "netwatch",
			Name:      "download_kibibytes_per_second",
			Help:      "Most recent download rate in KiB/s.",
		}),
		statusTier: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "netwatch",
			Name:      "status_tier",
			Help:      "Status tier of the most recent rate (0 slow, 1 good, 2 excellent).",
		}, []string{"direction"}),
		seriesLength: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "netwatch",
			Name:      "series_length",
			Help:      "Number of samples retained in the rolling series.",
		}),
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "netwatch",
			Name:      "ticks_total",
			Help:      "Completed sampling ticks.",
		}),
		counterResets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netwatch",
			Name:      "counter_resets_total",
			Help:      "Times a cumulative byte counter went backwards.",
		}, []string{"direction"}),
	}
}

func (t *Telemetry) RenderChart(frame models.ChartFrame) error {
	t.seriesLength.Set(float64(len(frame.Labels)))
	return nil
}

func (t *Telemetry) RenderStatus(report models.StatusReport) error {
	t.uploadRate.Set(report.UploadRate)
	t.downloadRate.Set(report.DownloadRate)
	t.statusTier.WithLabelValues("upload").Set(float64(report.UploadStatus))
	t.statusTier.WithLabelValues("download").Set(float64(report.DownloadStatus))
	t.ticks.Inc()
	return nil
}

func (t *Telemetry) ObserveCounterReset(direction string) {
	t.counterResets.WithLabelValues(direction).Inc()
}
