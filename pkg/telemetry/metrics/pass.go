package metrics

import (
	"time"

	"svdata-hq/svast/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// PassMetrics tracks pass and pipeline execution.
//
// Metrics:
//   - svast_pipeline_passes_total: passes by name, kind and status
//   - svast_pipeline_pass_duration_seconds: pass duration by name and kind
//   - svast_pipeline_runs_total: pipeline runs by status
//   - svast_pipeline_run_duration_seconds: pipeline run duration
//   - svast_pipeline_runs_in_flight: runs currently executing
type PassMetrics struct {
	passesTotal  *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	inFlight     prometheus.Gauge
}

// NewPassMetrics creates and registers pass metrics with the provided registry.
func NewPassMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PassMetrics {
	pm := &PassMetrics{
		passesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "passes_total",
				Help:      "Total number of passes executed",
			},
			[]string{"pass", "kind", "status"},
		),

		passDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pass_duration_seconds",
				Help:      "Duration of pass execution in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"pass", "kind"},
		),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of pipeline runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of pipeline runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_in_flight",
				Help:      "Number of pipeline runs currently executing",
			},
		),
	}

	registry.MustRegister(
		pm.passesTotal,
		pm.passDuration,
		pm.runsTotal,
		pm.runDuration,
		pm.inFlight,
	)

	return pm
}

// RecordPass records one pass execution.
func (pm *PassMetrics) RecordPass(pass, kind, status string, duration time.Duration) {
	pm.passesTotal.WithLabelValues(pass, kind, status).Inc()
	pm.passDuration.WithLabelValues(pass, kind).Observe(duration.Seconds())
}

// RecordRun records one completed pipeline run.
func (pm *PassMetrics) RecordRun(status string, duration time.Duration) {
	pm.runsTotal.WithLabelValues(status).Inc()
	pm.runDuration.Observe(duration.Seconds())
}
