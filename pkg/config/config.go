package config

import "time"

// Config is the root configuration structure for svast.
// It contains the codec limits, the pass pipeline, the snapshot store,
// the document watcher and telemetry settings.
type Config struct {
	// Codec contains document format and decoder limits.
	Codec CodecConfig `yaml:"codec"`

	// Pipeline contains the ordered pass list run by `svast run` and
	// `svast watch`.
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Snapshots contains configuration for recording pipeline states
	// including backend selection and retention.
	Snapshots SnapshotsConfig `yaml:"snapshots"`

	// Watch contains configuration for the document watcher.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CodecConfig contains serialized document settings.
type CodecConfig struct {
	// Format is the output format for encoded documents.
	// Options: "json", "yaml"
	// Default: "json"
	Format string `yaml:"format"`

	// MaxDepth is the maximum record nesting depth accepted by the decoder.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// MaxDocumentSize is the maximum document size in bytes accepted by
	// the decoder.
	// Default: 67108864 (64MB)
	MaxDocumentSize int64 `yaml:"max_document_size"`
}

// PipelineConfig contains the pass pipeline definition.
type PipelineConfig struct {
	// Passes lists the passes in execution order.
	Passes []PassConfig `yaml:"passes"`

	// Timeout is the default per-pass timeout for command passes.
	// A pass-level Timeout takes precedence.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// PassConfig describes one pipeline pass.
type PassConfig struct {
	// Name identifies the pass in results, logs and snapshots.
	Name string `yaml:"name"`

	// Type selects the pass implementation.
	// Options: "rename", "command"
	Type string `yaml:"type"`

	// From is the identifier to rename (type "rename").
	From string `yaml:"from"`

	// To is the replacement identifier (type "rename").
	To string `yaml:"to"`

	// Command is the argv of the external process (type "command").
	// The document is written to stdin and read back from stdout.
	Command []string `yaml:"command"`

	// Dir is the working directory of the external process.
	Dir string `yaml:"dir"`

	// Env contains extra KEY=VALUE entries for the external process.
	Env []string `yaml:"env"`

	// Timeout bounds a single command pass. Zero uses Pipeline.Timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// SnapshotsConfig contains configuration for the snapshot store.
type SnapshotsConfig struct {
	// Enabled controls whether pipeline states are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend specifies the storage backend for snapshots.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains retention policy configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/snapshots.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// JournalMode is the SQLite journal mode.
	// Default: "WAL"
	JournalMode string `yaml:"journal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains snapshot retention configuration.
type RetentionConfig struct {
	// MaxAge is how long snapshots are kept. 0 keeps snapshots forever.
	// Default: 0
	MaxAge time.Duration `yaml:"max_age"`

	// MaxSnapshots is the maximum number of snapshots to keep.
	// 0 means unlimited.
	// Default: 0
	MaxSnapshots int64 `yaml:"max_snapshots"`

	// PruneSchedule is a cron expression for scheduling pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains document watcher configuration.
type WatchConfig struct {
	// Debounce is the quiet period after a file event before the
	// pipeline is rerun.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "svast"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "pipeline"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for pass duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30]
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// SizeBuckets defines histogram buckets for document sizes (bytes).
	// Default: exponential from 1KiB to 64MiB
	SizeBuckets []float64 `yaml:"size_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "svast"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
