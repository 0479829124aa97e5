// Package metrics provides Prometheus metrics export for the generation
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter records pipeline metrics in Prometheus format.
type Exporter struct {
	registry *prometheus.Registry

	generationRequests *prometheus.CounterVec
	generationLatency  *prometheus.HistogramVec
	extractionStrategy *prometheus.CounterVec
	uploadBytes        prometheus.Counter
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// NewExporter creates a new Prometheus metrics exporter.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.generationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notewise",
			Subsystem: "notegen",
			Name:      "requests_total",
			Help:      "Generation pipeline runs by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	e.generationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notewise",
			Subsystem: "notegen",
			Name:      "latency_seconds",
			Help:      "Generation pipeline latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"intent"},
	)

	e.extractionStrategy = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notewise",
			Subsystem: "notegen",
			Name:      "extraction_strategy_total",
			Help:      "Image payload extractions by winning strategy",
		},
		[]string{"strategy"},
	)

	e.uploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notewise",
			Subsystem: "notegen",
			Name:      "upload_bytes_total",
			Help:      "Total bytes published to the object store",
		},
	)

	registry.MustRegister(
		e.generationRequests,
		e.generationLatency,
		e.extractionStrategy,
		e.uploadBytes,
	)

	return e
}

// ObserveGeneration records one pipeline run.
func (e *Exporter) ObserveGeneration(intent, outcome string, elapsed time.Duration) {
	e.generationRequests.WithLabelValues(intent, outcome).Inc()
	e.generationLatency.WithLabelValues(intent).Observe(elapsed.Seconds())
}

// ObserveExtraction records the strategy that produced a validated payload.
func (e *Exporter) ObserveExtraction(strategy string) {
	e.extractionStrategy.WithLabelValues(strategy).Inc()
}

// ObserveUpload records a successful blob publication.
func (e *Exporter) ObserveUpload(size int) {
	e.uploadBytes.Add(float64(size))
}

// Handler returns an HTTP handler serving the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
