package config

import "time"

// Default values for configuration fields.
const (
	// Codec defaults
	DefaultCodecFormat          = "json"
	DefaultCodecMaxDepth        = 512
	DefaultCodecMaxDocumentSize = int64(64 << 20)

	// Pipeline defaults
	DefaultPipelineTimeout = 30 * time.Second

	// Snapshot defaults
	DefaultSnapshotsBackend       = "sqlite"
	DefaultSnapshotsSQLitePath    = "data/snapshots.db"
	DefaultSnapshotsSQLiteDriver  = "sqlite"
	DefaultSnapshotsMaxOpenConns  = 4
	DefaultSnapshotsJournalMode   = "WAL"
	DefaultSnapshotsBusyTimeout   = 5 * time.Second
	DefaultSnapshotsPruneSchedule = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "svast"
	DefaultMetricsSubsystem   = "pipeline"
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "svast"
	DefaultTracingOTLPTimeout = 10 * time.Second
)

// DefaultDurationBuckets are the pass duration histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30}

// DefaultSizeBuckets are the document size histogram buckets in bytes.
var DefaultSizeBuckets = []float64{1 << 10, 1 << 12, 1 << 14, 1 << 16, 1 << 18, 1 << 20, 1 << 22, 1 << 24, 1 << 26}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Codec defaults
	if cfg.Codec.Format == "" {
		cfg.Codec.Format = DefaultCodecFormat
	}
	if cfg.Codec.MaxDepth == 0 {
		cfg.Codec.MaxDepth = DefaultCodecMaxDepth
	}
	if cfg.Codec.MaxDocumentSize == 0 {
		cfg.Codec.MaxDocumentSize = DefaultCodecMaxDocumentSize
	}

	// Pipeline defaults
	if cfg.Pipeline.Timeout == 0 {
		cfg.Pipeline.Timeout = DefaultPipelineTimeout
	}

	// Snapshot defaults
	if cfg.Snapshots.Backend == "" {
		cfg.Snapshots.Backend = DefaultSnapshotsBackend
	}
	if cfg.Snapshots.SQLite.Path == "" {
		cfg.Snapshots.SQLite.Path = DefaultSnapshotsSQLitePath
	}
	if cfg.Snapshots.SQLite.Driver == "" {
		cfg.Snapshots.SQLite.Driver = DefaultSnapshotsSQLiteDriver
	}
	if cfg.Snapshots.SQLite.MaxOpenConns == 0 {
		cfg.Snapshots.SQLite.MaxOpenConns = DefaultSnapshotsMaxOpenConns
	}
	if cfg.Snapshots.SQLite.JournalMode == "" {
		cfg.Snapshots.SQLite.JournalMode = DefaultSnapshotsJournalMode
	}
	if cfg.Snapshots.SQLite.BusyTimeout == 0 {
		cfg.Snapshots.SQLite.BusyTimeout = DefaultSnapshotsBusyTimeout
	}
	if cfg.Snapshots.Retention.PruneSchedule == "" {
		cfg.Snapshots.Retention.PruneSchedule = DefaultSnapshotsPruneSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if len(cfg.Metrics.SizeBuckets) == 0 {
		cfg.Metrics.SizeBuckets = append([]float64(nil), DefaultSizeBuckets...)
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	// A zero ratio is indistinguishable from unset; "never" disables sampling.
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.OTLP.Timeout == 0 {
		cfg.Tracing.OTLP.Timeout = DefaultTracingOTLPTimeout
	}
}
