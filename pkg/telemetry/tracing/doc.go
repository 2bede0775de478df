// Package tracing provides OpenTelemetry tracing for svast pipelines.
//
// A pipeline run is one span (svast.pipeline.run) with a child span per
// pass (svast.pass). Spans are exported over OTLP gRPC when
// telemetry.tracing.enabled is set; otherwise a noop tracer is used.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	p := pass.New(passes, pass.WithTracer(tracer))
//
// Command passes receive TRACEPARENT/TRACESTATE in their environment
// (EnvCarrier); ExtractEnv reads them back on the other side.
//
// # Sampling
//
//	telemetry:
//	  tracing:
//	    sampler: ratio      # always | never | ratio
//	    sample_ratio: 0.1
package tracing
