package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"svdata-hq/svast/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "metrics",
		DurationBuckets: []float64{0.01, 0.1, 1},
		SizeBuckets:     []float64{1024, 65536},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)
	if cfg.Namespace != config.DefaultMetricsNamespace || cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if len(cfg.DurationBuckets) == 0 || len(cfg.SizeBuckets) == 0 {
		t.Error("default buckets not applied")
	}
}

func TestCollector_RecordPass(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	tests := []struct {
		pass   string
		kind   string
		status string
	}{
		{"rename-clk", "internal", StatusSuccess},
		{"lint", "external", StatusFailure},
		{"rename-clk", "internal", StatusSuccess},
	}
	for _, tt := range tests {
		collector.RecordPass(tt.pass, tt.kind, tt.status, 5*time.Millisecond)
	}

	if got := testutil.ToFloat64(collector.passMetrics.passesTotal.WithLabelValues("rename-clk", "internal", StatusSuccess)); got != 2 {
		t.Errorf("rename-clk successes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.passMetrics.passesTotal.WithLabelValues("lint", "external", StatusFailure)); got != 1 {
		t.Errorf("lint failures = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.passMetrics.passDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestCollector_RunMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	done := collector.TrackRun()
	if got := testutil.ToFloat64(collector.passMetrics.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	done()
	if got := testutil.ToFloat64(collector.passMetrics.inFlight); got != 0 {
		t.Errorf("in flight after done = %v, want 0", got)
	}

	collector.RecordRun(StatusSuccess, 20*time.Millisecond)
	collector.RecordRun(StatusFailure, time.Millisecond)
	if got := testutil.ToFloat64(collector.passMetrics.runsTotal.WithLabelValues(StatusSuccess)); got != 1 {
		t.Errorf("successful runs = %v, want 1", got)
	}
}

func TestCollector_CodecMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordDocument(OperationEncode, 2048)
	collector.RecordDocument(OperationDecode, 100)
	collector.RecordDecodeError("unknown_kind")
	collector.RecordDecodeError("unknown_kind")

	if got := testutil.ToFloat64(collector.codecMetrics.documentsTotal.WithLabelValues(OperationEncode)); got != 1 {
		t.Errorf("encoded documents = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.codecMetrics.decodeErrors.WithLabelValues("unknown_kind")); got != 2 {
		t.Errorf("decode errors = %v, want 2", got)
	}
}

func TestCollector_CacheAndSnapshotMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordCacheHit("views")
	collector.RecordCacheMiss("views")
	collector.RecordCacheEviction("views")
	collector.RecordSnapshotStored()
	collector.RecordSnapshotError("put")
	collector.RecordSnapshotsPruned(3)
	collector.RecordSnapshotsPruned(0)

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"hits", collector.cacheMetrics.hitsTotal.WithLabelValues("views"), 1},
		{"misses", collector.cacheMetrics.missesTotal.WithLabelValues("views"), 1},
		{"evictions", collector.cacheMetrics.evictionsTotal.WithLabelValues("views"), 1},
		{"stored", collector.snapshotMetrics.storedTotal, 1},
		{"errors", collector.snapshotMetrics.errorsTotal.WithLabelValues("put"), 1},
		{"pruned", collector.snapshotMetrics.prunedTotal, 3},
	}
	for _, tt := range checks {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCollector_DisabledAndNil(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordPass("p", "internal", StatusSuccess, time.Millisecond)
	if got := testutil.CollectAndCount(collector.passMetrics.passesTotal); got != 0 {
		t.Errorf("disabled collector recorded %d series", got)
	}

	var nilCollector *Collector
	nilCollector.RecordPass("p", "internal", StatusSuccess, time.Millisecond)
	nilCollector.RecordDecodeError("syntax")
	nilCollector.TrackRun()()
}

func TestCollector_PassCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.cardinalityLimiter = NewCardinalityLimiter(1)

	collector.RecordPass("a", "internal", StatusSuccess, time.Millisecond)
	collector.RecordPass("b", "internal", StatusSuccess, time.Millisecond)

	if got := testutil.ToFloat64(collector.passMetrics.passesTotal.WithLabelValues("other", "internal", StatusSuccess)); got != 1 {
		t.Errorf("other = %v, want 1", got)
	}
	if collector.cardinalityLimiter.Count() != 1 {
		t.Errorf("Count() = %d, want 1", collector.cardinalityLimiter.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordPass("rename-clk", "internal", StatusSuccess, time.Millisecond)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `test_metrics_passes_total{kind="internal",pass="rename-clk",status="success"} 1`) {
		t.Errorf("metrics output missing pass counter:\n%s", body)
	}
}
