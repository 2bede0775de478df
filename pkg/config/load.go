package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SVAST_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Unknown keys in the file are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration bytes and applies defaults. It does not
// validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SVAST_SECTION_FIELD (e.g., SVAST_CODEC_FORMAT).
// An empty path starts from the defaults instead of a file.
//
// The loading sequence is:
// 1. Load YAML from file (or defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

// applyEnvOverrides applies SVAST_* overrides. Malformed values are
// reported as FieldErrors rather than silently ignored.
func applyEnvOverrides(cfg *Config, lookup lookupFunc) error {
	var errs []FieldError

	str := func(key string, dst *string) {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			*dst = val
		}
	}
	integer := func(key string, dst *int) {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, envError(key, val, "an integer"))
				return
			}
			*dst = i
		}
	}
	integer64 := func(key string, dst *int64) {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				errs = append(errs, envError(key, val, "an integer"))
				return
			}
			*dst = i
		}
	}
	boolean := func(key string, dst *bool) {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, envError(key, val, "a boolean"))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, envError(key, val, "a duration"))
				return
			}
			*dst = d
		}
	}
	float := func(key string, dst *float64) {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				errs = append(errs, envError(key, val, "a number"))
				return
			}
			*dst = f
		}
	}

	// Codec overrides
	str("CODEC_FORMAT", &cfg.Codec.Format)
	integer("CODEC_MAX_DEPTH", &cfg.Codec.MaxDepth)
	integer64("CODEC_MAX_DOCUMENT_SIZE", &cfg.Codec.MaxDocumentSize)

	// Pipeline overrides
	duration("PIPELINE_TIMEOUT", &cfg.Pipeline.Timeout)

	// Snapshot overrides
	boolean("SNAPSHOTS_ENABLED", &cfg.Snapshots.Enabled)
	str("SNAPSHOTS_BACKEND", &cfg.Snapshots.Backend)
	str("SNAPSHOTS_SQLITE_PATH", &cfg.Snapshots.SQLite.Path)
	str("SNAPSHOTS_SQLITE_DRIVER", &cfg.Snapshots.SQLite.Driver)
	duration("SNAPSHOTS_RETENTION_MAX_AGE", &cfg.Snapshots.Retention.MaxAge)
	integer64("SNAPSHOTS_RETENTION_MAX_SNAPSHOTS", &cfg.Snapshots.Retention.MaxSnapshots)
	str("SNAPSHOTS_RETENTION_PRUNE_SCHEDULE", &cfg.Snapshots.Retention.PruneSchedule)

	// Watch overrides
	duration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)

	// Telemetry overrides
	str("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	str("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	boolean("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	str("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	str("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	float("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func envError(key, val, want string) FieldError {
	return FieldError{
		Field:   EnvPrefix + key,
		Message: fmt.Sprintf("invalid value %q: must be %s", val, want),
	}
}
