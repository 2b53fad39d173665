package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transcription outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the run metrics of one transcribe invocation.
type Metrics struct {
	registry *prometheus.Registry
	textfile string

	Transcriptions *prometheus.CounterVec
	Transcodes     prometheus.Counter
	APILatency     prometheus.Histogram
	LastRun        prometheus.Gauge
}

// NewMetrics registers all collectors on a private registry. textfile is the
// node-exporter textfile path written by Flush; empty disables writing.
func NewMetrics(textfile string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		textfile: textfile,

		Transcriptions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rec2txt_transcriptions_total",
			Help: "Total number of transcription jobs by outcome",
		}, []string{"status"}),
		Transcodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "rec2txt_transcodes_total",
			Help: "Total number of oversized inputs transcoded to MP3",
		}),
		APILatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rec2txt_api_request_duration_seconds",
			Help:    "Time spent waiting for the transcription API",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s to ~4 minutes
		}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rec2txt_last_run_timestamp_seconds",
			Help: "Unix time of the last finished transcribe run",
		}),
	}
}

// ObserveTranscription counts one finished job.
func (m *Metrics) ObserveTranscription(status string) {
	m.Transcriptions.WithLabelValues(status).Inc()
}

// ObserveAPILatency records the duration of one API call.
func (m *Metrics) ObserveAPILatency(d time.Duration) {
	m.APILatency.Observe(d.Seconds())
}

// Flush stamps the run time and writes the textfile, if one is configured.
func (m *Metrics) Flush(now time.Time) error {
	m.LastRun.Set(float64(now.Unix()))
	if m.textfile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.textfile), 0755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(m.textfile, m.registry)
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
