package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/telemetry/metrics"
)

// Pruner enforces a retention policy on a store.
type Pruner struct {
	store   Store
	config  config.RetentionConfig
	metrics *metrics.Collector
	logger  *slog.Logger
	now     func() time.Time
}

// NewPruner creates a pruner. collector may be nil.
func NewPruner(store Store, cfg config.RetentionConfig, collector *metrics.Collector) *Pruner {
	return &Pruner{
		store:   store,
		config:  cfg,
		metrics: collector,
		logger:  slog.Default().With("component", "snapshot.retention"),
		now:     time.Now,
	}
}

// Prune deletes snapshots older than MaxAge and then the oldest
// snapshots beyond MaxSnapshots. A zero limit disables that phase. It
// returns the total number of deleted snapshots.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.MaxAge > 0 {
		cutoff := p.now().Add(-p.config.MaxAge)
		deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			p.metrics.RecordSnapshotError("prune")
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned snapshots by age", "deleted_count", deleted, "cutoff_time", cutoff)
	}

	if p.config.MaxSnapshots > 0 {
		deleted, err := p.store.DeleteOldest(ctx, p.config.MaxSnapshots)
		if err != nil {
			p.metrics.RecordSnapshotError("prune")
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned snapshots by count", "deleted_count", deleted, "max_snapshots", p.config.MaxSnapshots)
	}

	p.metrics.RecordSnapshotsPruned(total)
	if total > 0 {
		p.logger.Info("snapshot pruning completed",
			"total_deleted", total,
			"max_age", p.config.MaxAge,
			"max_snapshots", p.config.MaxSnapshots,
		)
	}
	return total, nil
}
