package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/cli"
	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/snapshot"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
	"svdata-hq/svast/pkg/svast/pass"
	"svdata-hq/svast/pkg/telemetry/logging"
	"svdata-hq/svast/pkg/telemetry/metrics"
	"svdata-hq/svast/pkg/telemetry/tracing"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// errorContextLines is the number of document lines shown around a
// decode error.
const errorContextLines = 2

// loadConfig loads --config (or the defaults) with SVAST_* overrides and
// installs it as the process configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	config.SetConfig(cfg)
	return cfg, nil
}

// newLogger creates the command logger on the command's stderr and makes
// it the slog default, so components falling back to slog.Default share
// its handler.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())
	return logger, nil
}

// newCodec creates a codec honouring the codec section.
func newCodec(cfg *config.Config) (*codec.Codec, error) {
	format, err := codec.ParseFormat(cfg.Codec.Format)
	if err != nil {
		return nil, cli.NewConfigError("codec.format", err.Error())
	}
	return codec.New().
		WithFormat(format).
		WithMaxDepth(cfg.Codec.MaxDepth).
		WithMaxDocumentSize(int(cfg.Codec.MaxDocumentSize)), nil
}

// readInput reads path, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// decodeFile reads and decodes the document at path. Decode errors carry
// the surrounding document lines.
func decodeFile(cmd *cobra.Command, c *codec.Codec, path string) (concrete.Node, []byte, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}

	source := path
	if path == stdinPath {
		source = "<stdin>"
	}
	tree, err := c.DecodeSource(codec.NewDocument(data), source)
	if err != nil {
		return nil, data, sverrors.WithContext(err, data, errorContextLines)
	}
	return tree, data, nil
}

// writeOutput writes doc to path, or to the command's stdout when path is
// empty or "-". An existing file keeps its permissions.
func writeOutput(cmd *cobra.Command, path string, doc codec.Document) error {
	if path == "" || path == stdinPath {
		_, err := cmd.OutOrStdout().Write(doc.Bytes())
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, doc.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// services holds the collaborators of a pipeline run.
type services struct {
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	store   snapshot.Store
}

// newServices creates the metrics collector, the tracer and, when
// snapshots are enabled, the snapshot store.
func newServices(cfg *config.Config, logger *logging.Logger) (*services, error) {
	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	svc := &services{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		tracer:  tracer,
	}

	if cfg.Snapshots.Enabled {
		store, err := snapshot.Open(&cfg.Snapshots)
		if err != nil {
			_ = tracer.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		svc.store = store
	}
	return svc, nil
}

// pipeline builds the configured pipeline.
func (s *services) pipeline(cfg *config.Config, c *codec.Codec) (*pass.Pipeline, error) {
	passes, err := pass.Build(cfg.Pipeline.Passes, cfg.Pipeline.Timeout, s.logger)
	if err != nil {
		return nil, cli.NewConfigError("pipeline.passes", err.Error())
	}

	opts := []pass.Option{
		pass.WithCodec(c),
		pass.WithLogger(s.logger),
		pass.WithMetrics(s.metrics),
		pass.WithTracer(s.tracer),
	}
	if s.store != nil {
		opts = append(opts, pass.WithStore(s.store))
	}
	return pass.New(passes, opts...), nil
}

// Close flushes spans and closes the snapshot store.
func (s *services) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if err := s.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("snapshot store close: %w", err))
		}
	}
	return errors.Join(errs...)
}

// signalContext derives the command context cancelled on SIGINT or
// SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.SignalContext(ctx)
}
