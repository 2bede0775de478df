package pass

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"svdata-hq/svast/pkg/snapshot"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
	"svdata-hq/svast/pkg/telemetry/logging"
	"svdata-hq/svast/pkg/telemetry/metrics"
	"svdata-hq/svast/pkg/telemetry/tracing"
)

// Pipeline runs passes in order, handing each the output of the previous
// one. A Pipeline holds no per-run state and may run concurrently on
// distinct inputs.
type Pipeline struct {
	passes  []Pass
	codec   *codec.Codec
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	store   snapshot.Store
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCodec sets the codec external passes exchange documents with.
func WithCodec(c *codec.Codec) Option {
	return func(p *Pipeline) { p.codec = c }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l.WithComponent("pass.pipeline") }
}

// WithMetrics records pass and run metrics on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// WithTracer records a span per run and per pass.
func WithTracer(t *tracing.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// WithStore records every pipeline state in s.
func WithStore(s snapshot.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// New creates a pipeline over passes.
func New(passes []Pass, opts ...Option) *Pipeline {
	p := &Pipeline{
		passes: append([]Pass(nil), passes...),
		codec:  codec.New(),
		logger: logging.Wrap(nil).WithComponent("pass.pipeline"),
		tracer: tracing.Noop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Passes returns the passes in execution order.
func (p *Pipeline) Passes() []Pass {
	return append([]Pass(nil), p.passes...)
}

// Result holds the states of one run. Snapshots[0] is the input and
// Snapshots[i+1] the output of pass i; after a failure it ends with the
// output of the last successful pass.
type Result struct {
	RunID     string
	Snapshots []concrete.Node
	Applied   []string
	Duration  time.Duration
}

// Last returns the most recent state.
func (r *Result) Last() concrete.Node {
	return r.Snapshots[len(r.Snapshots)-1]
}

// Run applies every pass to tree in order. It stops at the first failing
// pass and returns the Result so far together with a *PassFailure. A
// pass returning a nil tree fails, as does a panicking pass. If ctx is
// done before a pass starts, that pass fails with the context error.
func (p *Pipeline) Run(ctx context.Context, tree concrete.Node) (*Result, error) {
	if concrete.IsNil(tree) {
		return nil, ErrNilTree
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Snapshots: []concrete.Node{tree},
	}
	ctx = logging.WithRunID(ctx, res.RunID)
	ctx, span := p.tracer.Start(ctx, tracing.SpanRun, tracing.RunAttributes(res.RunID, len(p.passes)))
	defer span.End()
	if id := tracing.TraceID(ctx); id != "" {
		ctx = logging.WithTraceID(ctx, id)
	}

	done := p.metrics.TrackRun()
	defer done()
	start := time.Now()

	p.logger.DebugContext(ctx, "pipeline run started", "passes", len(p.passes))
	x := &exchange{codec: p.codec, metrics: p.metrics, tracer: p.tracer}
	p.record(ctx, res.RunID, 0, "", tree)

	var failure *PassFailure
	current := tree
	for i, ps := range p.passes {
		if err := ctx.Err(); err != nil {
			failure = &PassFailure{Index: i, Pass: ps.Name(), Kind: ps.Kind(), Message: "pipeline cancelled", Err: err}
			break
		}

		next, err := p.runPass(ctx, x, i, ps, current)
		if err != nil {
			failure = newFailure(i, ps, err)
			break
		}

		current = next
		res.Snapshots = append(res.Snapshots, next)
		res.Applied = append(res.Applied, ps.Name())
		p.record(ctx, res.RunID, i+1, ps.Name(), next)
	}

	res.Duration = time.Since(start)
	if failure != nil {
		p.metrics.RecordRun(metrics.StatusFailure, res.Duration)
		tracing.SetStatus(span, failure)
		p.logger.WarnContext(ctx, "pipeline run failed",
			"failed_pass", failure.Pass,
			"failed_index", failure.Index,
			"error", failure.Message,
			"applied", len(res.Applied),
			"duration_ms", res.Duration.Milliseconds(),
		)
		return res, failure
	}

	p.metrics.RecordRun(metrics.StatusSuccess, res.Duration)
	tracing.SetStatus(span, nil)
	p.logger.InfoContext(ctx, "pipeline run completed",
		"applied", len(res.Applied),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) runPass(ctx context.Context, x *exchange, index int, ps Pass, tree concrete.Node) (out concrete.Node, err error) {
	kind := string(ps.Kind())
	ctx = logging.WithPass(ctx, index, ps.Name())
	ctx, span := p.tracer.Start(ctx, tracing.SpanPass, tracing.PassAttributes(index, ps.Name(), kind))
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "pass panicked", "panic", r, "stack", string(debug.Stack()))
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
		if err == nil && concrete.IsNil(out) {
			out = nil
			err = errors.New("pass returned no tree")
		}

		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusFailure
			var d *declined
			if errors.As(err, &d) {
				tracing.SetFailure(span, d.message)
			}
		}
		p.metrics.RecordPass(ps.Name(), kind, status, time.Since(start))
		tracing.SetStatus(span, err)
		p.logger.DebugContext(ctx, "pass finished",
			"kind", kind,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	return ps.apply(ctx, x, tree)
}

// record stores a state when a snapshot store is attached. Store errors
// are logged and counted; they do not fail the run.
func (p *Pipeline) record(ctx context.Context, runID string, index int, name string, tree concrete.Node) {
	if p.store == nil {
		return
	}
	doc, err := p.codec.Encode(tree)
	if err == nil {
		err = p.store.Put(ctx, &snapshot.Snapshot{RunID: runID, Index: index, Pass: name, Document: doc})
	}
	if err != nil {
		p.metrics.RecordSnapshotError("put")
		p.logger.WarnContext(ctx, "failed to record snapshot", "index", index, "error", err)
		return
	}
	p.metrics.RecordSnapshotStored()
}
