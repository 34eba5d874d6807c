package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fix_display"

// Metrics holds the Prometheus collectors for the display pipeline.
type Metrics struct {
	FixesConsumed   prometheus.Counter
	FixesProduced   prometheus.Counter
	TransformErrors prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	UnavailableQuantities *prometheus.CounterVec // labels: kind
	PreferenceReloads     *prometheus.CounterVec // labels: outcome={applied,rejected}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FixesConsumed,
		m.FixesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.UnavailableQuantities,
		m.PreferenceReloads,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FixesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixes_consumed_total",
			Help:      "Total raw fixes read from the source topic.",
		}),
		FixesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixes_produced_total",
			Help:      "Total display fixes written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total fixes that could not be parsed or rendered.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of fixes per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-format-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		UnavailableQuantities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unavailable_quantities_total",
			Help:      "Quantities rendered empty, by kind.",
		}, []string{"kind"}),
		PreferenceReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_reloads_total",
			Help:      "Preference profile reloads by outcome.",
		}, []string{"outcome"}),
	}
}
