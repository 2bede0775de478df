// Package config provides configuration management for svast.
//
// Configuration is read from an optional YAML file, completed with defaults,
// overridden from the environment and validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("svast.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SVAST_SECTION_FIELD:
//
//   - SVAST_CODEC_FORMAT overrides codec.format
//   - SVAST_SNAPSHOTS_SQLITE_PATH overrides snapshots.sqlite.path
//   - SVAST_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A malformed override (for example a non-numeric SVAST_CODEC_MAX_DEPTH) is
// a validation error.
//
// # Example
//
//	codec:
//	  format: yaml
//	pipeline:
//	  timeout: 10s
//	  passes:
//	    - name: rename-clk
//	      type: rename
//	      from: clk
//	      to: clk_i
//	    - name: lint
//	      type: command
//	      command: ["svlint-pass", "--fix"]
//	snapshots:
//	  enabled: true
//	  backend: sqlite
//	  retention:
//	    max_snapshots: 1000
//
// # Singleton
//
// The CLI stores the loaded configuration with Initialize or SetConfig and
// reads it back with GetConfig. Library code takes *Config explicitly.
package config
