package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svast.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
codec:
  format: yaml
  max_depth: 64
pipeline:
  timeout: 5s
  passes:
    - name: rename-clk
      type: rename
      from: clk
      to: clk_i
    - name: lint
      type: command
      command: ["svlint-pass", "--fix"]
      timeout: 2s
snapshots:
  enabled: true
  backend: memory
telemetry:
  logging:
    level: debug
    format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Codec.Format != "yaml" {
		t.Errorf("expected codec format %q, got %q", "yaml", cfg.Codec.Format)
	}
	if cfg.Codec.MaxDepth != 64 {
		t.Errorf("expected max depth 64, got %d", cfg.Codec.MaxDepth)
	}
	if cfg.Codec.MaxDocumentSize != DefaultCodecMaxDocumentSize {
		t.Errorf("expected default max document size, got %d", cfg.Codec.MaxDocumentSize)
	}
	if cfg.Pipeline.Timeout != 5*time.Second {
		t.Errorf("expected pipeline timeout 5s, got %v", cfg.Pipeline.Timeout)
	}
	if len(cfg.Pipeline.Passes) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(cfg.Pipeline.Passes))
	}
	if p := cfg.Pipeline.Passes[1]; p.Type != "command" || p.Command[0] != "svlint-pass" || p.Timeout != 2*time.Second {
		t.Errorf("unexpected command pass: %+v", p)
	}
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Backend != "memory" {
		t.Errorf("unexpected snapshots section: %+v", cfg.Snapshots)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "codec:\n  fromat: json\n", "fromat"},
		{"invalid yaml", "codec: [\n", "failed to parse"},
		{"invalid value", "codec:\n  format: xml\n", "codec.format"},
		{"bad cron", "snapshots:\n  retention:\n    prune_schedule: \"every day\"\n", "prune_schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Codec.Format != DefaultCodecFormat {
		t.Errorf("expected defaults, got format %q", cfg.Codec.Format)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"SVAST_CODEC_FORMAT":                   "yaml",
		"SVAST_CODEC_MAX_DEPTH":                "32",
		"SVAST_SNAPSHOTS_ENABLED":              "true",
		"SVAST_SNAPSHOTS_SQLITE_DRIVER":        "sqlite3",
		"SVAST_SNAPSHOTS_RETENTION_MAX_AGE":    "72h",
		"SVAST_TELEMETRY_TRACING_SAMPLE_RATIO": "0.25",
		"SVAST_WATCH_DEBOUNCE":                 "1s",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	if err := applyEnvOverrides(cfg, lookup); err != nil {
		t.Fatalf("applyEnvOverrides() error = %v", err)
	}

	if cfg.Codec.Format != "yaml" || cfg.Codec.MaxDepth != 32 {
		t.Errorf("codec overrides not applied: %+v", cfg.Codec)
	}
	if !cfg.Snapshots.Enabled || cfg.Snapshots.SQLite.Driver != "sqlite3" {
		t.Errorf("snapshot overrides not applied: %+v", cfg.Snapshots)
	}
	if cfg.Snapshots.Retention.MaxAge != 72*time.Hour {
		t.Errorf("expected max age 72h, got %v", cfg.Snapshots.Retention.MaxAge)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected sample ratio 0.25, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
}

func TestApplyEnvOverrides_Malformed(t *testing.T) {
	env := map[string]string{
		"SVAST_CODEC_MAX_DEPTH":   "deep",
		"SVAST_SNAPSHOTS_ENABLED": "maybe",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	err := applyEnvOverrides(Default(), lookup)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(verr.Errors), verr)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("SVAST_TELEMETRY_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level %q, got %q", "warn", cfg.Telemetry.Logging.Level)
	}
}
