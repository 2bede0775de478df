package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder whose configuration is valid
// and uses the in-memory snapshot backend.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	cfg.Snapshots.Backend = "memory"
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithRename appends a rename pass.
func (b *ConfigBuilder) WithRename(name, from, to string) *ConfigBuilder {
	b.cfg.Pipeline.Passes = append(b.cfg.Pipeline.Passes, PassConfig{
		Name: name,
		Type: "rename",
		From: from,
		To:   to,
	})
	return b
}

// WithCommand appends a command pass.
func (b *ConfigBuilder) WithCommand(name string, timeout time.Duration, argv ...string) *ConfigBuilder {
	b.cfg.Pipeline.Passes = append(b.cfg.Pipeline.Passes, PassConfig{
		Name:    name,
		Type:    "command",
		Command: argv,
		Timeout: timeout,
	})
	return b
}

// WithSQLite switches snapshots to the sqlite backend at path.
func (b *ConfigBuilder) WithSQLite(path string) *ConfigBuilder {
	b.cfg.Snapshots.Enabled = true
	b.cfg.Snapshots.Backend = "sqlite"
	b.cfg.Snapshots.SQLite.Path = path
	return b
}

// MinimalConfig returns a valid configuration with no passes.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
