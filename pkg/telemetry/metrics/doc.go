// Package metrics provides Prometheus metrics for svast pipelines.
//
// # Metrics
//
// With the default namespace "svast" and subsystem "pipeline":
//
//   - svast_pipeline_passes_total{pass,kind,status}
//   - svast_pipeline_pass_duration_seconds{pass,kind}
//   - svast_pipeline_runs_total{status}, svast_pipeline_run_duration_seconds
//   - svast_pipeline_runs_in_flight
//   - svast_pipeline_documents_total{operation}, svast_pipeline_document_size_bytes{operation}
//   - svast_pipeline_decode_errors_total{kind}
//   - svast_pipeline_cache_{hits,misses,evictions}_total{cache}
//   - svast_pipeline_snapshots_stored_total, svast_pipeline_snapshots_pruned_total
//   - svast_pipeline_snapshot_errors_total{operation}
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	p := pass.New(passes, pass.WithMetrics(collector))
//	cache.Observe(collector)
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Pass names beyond DefaultMaxPassLabels distinct values are reported as
// "other".
package metrics
