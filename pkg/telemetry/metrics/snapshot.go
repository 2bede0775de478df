package metrics

import (
	"svdata-hq/svast/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SnapshotMetrics tracks the snapshot store.
//
// Metrics:
//   - svast_pipeline_snapshots_stored_total: snapshots written
//   - svast_pipeline_snapshot_errors_total: failed store operations by operation
//   - svast_pipeline_snapshots_pruned_total: snapshots removed by retention
type SnapshotMetrics struct {
	storedTotal prometheus.Counter
	errorsTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewSnapshotMetrics creates and registers snapshot metrics with the provided registry.
func NewSnapshotMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SnapshotMetrics {
	sm := &SnapshotMetrics{
		storedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "snapshots_stored_total",
				Help:      "Total number of pipeline snapshots stored",
			},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "snapshot_errors_total",
				Help:      "Total number of failed snapshot store operations",
			},
			[]string{"operation"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "snapshots_pruned_total",
				Help:      "Total number of snapshots removed by retention",
			},
		),
	}

	registry.MustRegister(
		sm.storedTotal,
		sm.errorsTotal,
		sm.prunedTotal,
	)

	return sm
}

// RecordStored records a stored snapshot.
func (sm *SnapshotMetrics) RecordStored() {
	sm.storedTotal.Inc()
}

// RecordError records a failed store operation.
func (sm *SnapshotMetrics) RecordError(operation string) {
	sm.errorsTotal.WithLabelValues(operation).Inc()
}

// RecordPruned records n snapshots removed by retention.
func (sm *SnapshotMetrics) RecordPruned(n int64) {
	if n > 0 {
		sm.prunedTotal.Add(float64(n))
	}
}
