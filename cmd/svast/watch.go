package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/snapshot"
	"svdata-hq/svast/pkg/svast"
	"svdata-hq/svast/pkg/svast/abstract"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/pass"
	"svdata-hq/svast/pkg/telemetry/health"
	"svdata-hq/svast/pkg/telemetry/logging"
	"svdata-hq/svast/pkg/watch"
)

var watchFlags struct {
	out         string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Rerun the pipeline whenever a document changes",
	Long:  `Run the configured pipeline once and again after every change to the
document, until interrupted.

A failing run is logged and the previous output stays in place. With
--metrics-addr an HTTP listener serves Prometheus metrics together with
/healthz, /readyz and /version. When snapshots are enabled the retention
policy runs on snapshots.retention.prune_schedule.

Examples:
  svast watch --out build/design.json design.json
  svast watch --metrics-addr :9090 --config svast.yaml design.json`,
	Args: cobra.ExactArgs(1),
	RunE: watchDocument,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.out, "out", "o", "", "output file (stdout if not specified)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health endpoints on this address")
}

// watcher reruns a pipeline over one document.
type watcher struct {
	cmd      *cobra.Command
	codec    *codec.Codec
	pipeline *pass.Pipeline
	cache    *abstract.Cache
	logger   *logging.Logger
	path     string
	out      string
}

func watchDocument(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	svc, err := newServices(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	pipeline, err := svc.pipeline(cfg, c)
	if err != nil {
		return err
	}

	fw, err := watch.NewFileWatcher(watch.Config{Path: args[0], Debounce: cfg.Watch.Debounce}, logger.Slog())
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	if svc.store != nil {
		pruner := snapshot.NewPruner(svc.store, cfg.Snapshots.Retention, svc.metrics)
		scheduler := snapshot.NewScheduler(pruner, cfg.Snapshots.Retention.PruneSchedule)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	if watchFlags.metricsAddr != "" {
		_, shutdown, err := serveTelemetry(ctx, watchFlags.metricsAddr, cfg, svc, fw)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	cache := abstract.NewCache(0)
	cache.Observe(svc.metrics)

	w := &watcher{
		cmd:      cmd,
		codec:    c,
		pipeline: pipeline,
		cache:    cache,
		logger:   logger.WithComponent("watch"),
		path:     fw.Path(),
		out:      watchFlags.out,
	}

	if err := w.run(ctx); err != nil {
		w.logger.Error("initial run failed", "error", err)
	}
	return fw.Watch(ctx, w.run)
}

// run decodes the document, runs the pipeline and writes the result.
func (w *watcher) run(ctx context.Context) error {
	tree, _, err := decodeFile(w.cmd, w.codec, w.path)
	if err != nil {
		return err
	}

	res, err := w.pipeline.Run(ctx, tree)
	if err != nil {
		return err
	}

	doc, err := w.codec.Encode(res.Last())
	if err != nil {
		return err
	}
	if err := writeOutput(w.cmd, w.out, doc); err != nil {
		return err
	}

	ranges := svast.IntegerRanges(res.Last(), w.cache)
	indeterminate := 0
	for _, r := range ranges {
		if !r.Max.IsDeterminate() {
			indeterminate++
		}
	}
	w.logger.InfoContext(ctx, "document updated",
		"run_id", res.RunID,
		"applied", len(res.Applied),
		"integer_types", len(ranges),
		"indeterminate_ranges", indeterminate,
		"duration", res.Duration,
	)
	return nil
}

// serveTelemetry starts the metrics and health listener on addr. It
// returns the bound address and a function stopping the listener.
func serveTelemetry(ctx context.Context, addr string, cfg *config.Config, svc *services, fw *watch.FileWatcher) (string, func(), error) {
	checker := health.New(health.DefaultCheckTimeout)
	checker.RegisterCheck("watcher", func(context.Context) error {
		if !fw.Running() {
			return errors.New("watcher not running")
		}
		return nil
	})
	if svc.store != nil {
		checker.RegisterCheck("snapshots", svc.store.Ping)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, svc.metrics.Handler())
	checker.Mount(mux, Version, GitCommit)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			svc.logger.Error("telemetry server failed", "error", err)
		}
	}()
	svc.logger.Info("telemetry server listening", "address", ln.Addr().String(), "metrics_path", cfg.Telemetry.Metrics.Path)

	return ln.Addr().String(), func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}
