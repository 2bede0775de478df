package metrics

import (
	"sync"
	"time"

	"svdata-hq/svast/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Operation label values for document metrics.
const (
	OperationEncode = "encode"
	OperationDecode = "decode"
)

// DefaultMaxPassLabels bounds the distinct pass names tracked before
// further names are aggregated into "other".
const DefaultMaxPassLabels = 1000

// Collector owns every svast Prometheus metric and registers them on a
// single registry.
//
// Every method is safe on a nil *Collector and on a disabled one, so
// components take an optional collector without nil checks.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	passMetrics     *PassMetrics
	codecMetrics    *CodecMetrics
	cacheMetrics    *CacheMetrics
	snapshotMetrics *SnapshotMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
// Unset namespace, subsystem and buckets take the config package defaults.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}
	if len(cfg.SizeBuckets) == 0 {
		cfg.SizeBuckets = config.DefaultSizeBuckets
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(DefaultMaxPassLabels),
	}

	c.passMetrics = NewPassMetrics(cfg, registry)
	c.codecMetrics = NewCodecMetrics(cfg, registry)
	c.cacheMetrics = NewCacheMetrics(cfg, registry)
	c.snapshotMetrics = NewSnapshotMetrics(cfg, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordPass records one pass execution. status is StatusSuccess or
// StatusFailure; kind is the pass kind ("internal" or "external").
func (c *Collector) RecordPass(pass, kind, status string, duration time.Duration) {
	if !c.enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(pass) {
		pass = "other"
	}

	c.passMetrics.RecordPass(pass, kind, status, duration)
}

// RecordRun records one completed pipeline run.
func (c *Collector) RecordRun(status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.passMetrics.RecordRun(status, duration)
}

// TrackRun increments the in-flight run gauge and returns the function
// that decrements it.
func (c *Collector) TrackRun() (done func()) {
	if !c.enabled() {
		return func() {}
	}
	c.passMetrics.inFlight.Inc()
	return c.passMetrics.inFlight.Dec
}

// RecordDocument records a document of size bytes passing through
// operation (OperationEncode or OperationDecode).
func (c *Collector) RecordDocument(operation string, size int) {
	if !c.enabled() {
		return
	}
	c.codecMetrics.RecordDocument(operation, size)
}

// RecordDecodeError records one decode error of the given kind.
func (c *Collector) RecordDecodeError(kind string) {
	if !c.enabled() {
		return
	}
	c.codecMetrics.RecordDecodeError(kind)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(cacheName string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordMiss(cacheName)
}

// RecordCacheEviction records a cache eviction.
func (c *Collector) RecordCacheEviction(cacheName string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordEviction(cacheName)
}

// RecordSnapshotStored records a stored snapshot.
func (c *Collector) RecordSnapshotStored() {
	if !c.enabled() {
		return
	}
	c.snapshotMetrics.RecordStored()
}

// RecordSnapshotError records a failed snapshot store operation.
func (c *Collector) RecordSnapshotError(operation string) {
	if !c.enabled() {
		return
	}
	c.snapshotMetrics.RecordError(operation)
}

// RecordSnapshotsPruned records snapshots removed by retention.
func (c *Collector) RecordSnapshotsPruned(n int64) {
	if !c.enabled() {
		return
	}
	c.snapshotMetrics.RecordPruned(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether label may be used: it is already tracked or the
// limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[label]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
