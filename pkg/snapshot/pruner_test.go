package snapshot

import (
	"context"
	"testing"
	"time"

	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/telemetry/metrics"
)

func TestPruner_Prune(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		retention config.RetentionConfig
		want      int64
		remaining int64
	}{
		{"disabled", config.RetentionConfig{}, 0, 6},
		{"by age", config.RetentionConfig{MaxAge: 150 * time.Minute}, 3, 3},
		{"by count", config.RetentionConfig{MaxSnapshots: 2}, 4, 2},
		{"both", config.RetentionConfig{MaxAge: 270 * time.Minute, MaxSnapshots: 4}, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			// Ages 0h..5h.
			for i := 0; i < 6; i++ {
				s := &Snapshot{RunID: "r", Index: i, Document: doc("d"), CreatedAt: now.Add(-time.Duration(i) * time.Hour)}
				if err := store.Put(ctx, s); err != nil {
					t.Fatal(err)
				}
			}

			collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
			p := NewPruner(store, tt.retention, collector)
			p.now = func() time.Time { return now }

			got, err := p.Prune(ctx)
			if err != nil {
				t.Fatalf("Prune() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Prune() = %d, want %d", got, tt.want)
			}
			if n, _ := store.Count(ctx); n != tt.remaining {
				t.Errorf("remaining = %d, want %d", n, tt.remaining)
			}
			if v := counterValue(t, collector, "svast_pipeline_snapshots_pruned_total"); v != float64(tt.want) {
				t.Errorf("pruned counter = %v, want %d", v, tt.want)
			}
		})
	}
}

func TestScheduler(t *testing.T) {
	p := NewPruner(NewMemoryStore(), config.RetentionConfig{MaxSnapshots: 1}, nil)

	s := NewScheduler(p, "")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() with empty schedule failed: %v", err)
	}
	if s.IsRunning() {
		t.Error("empty schedule should not start the scheduler")
	}

	if err := NewScheduler(p, "not a schedule").Start(context.Background()); err == nil {
		t.Error("Start() with invalid schedule should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s = NewScheduler(p, "0 3 * * *")
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	next := s.NextRun()
	if next == nil || next.Hour() != 3 {
		t.Errorf("NextRun() = %v, want 03:00", next)
	}
	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}

func counterValue(t *testing.T, c *metrics.Collector, name string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == name && len(f.GetMetric()) > 0 {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
