package pass_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"svdata-hq/svast/internal/svtest"
	"svdata-hq/svast/pkg/config"
	"svdata-hq/svast/pkg/snapshot"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
	"svdata-hq/svast/pkg/svast/pass"
	"svdata-hq/svast/pkg/telemetry/metrics"
	"svdata-hq/svast/pkg/telemetry/tracing"
)

func mustRename(t *testing.T, from, to string) pass.Pass {
	t.Helper()
	p, err := pass.RenameIdentifier(from, to)
	svtest.AssertNoError(t, err)
	return p
}

func identity(name string) pass.Pass {
	return pass.External(name, func(_ context.Context, doc codec.Document) (codec.Document, error) {
		return doc, nil
	})
}

func failing(name, msg string) pass.Pass {
	return pass.Internal(name, func(concrete.Node) (concrete.Node, error) {
		return nil, errors.New(msg)
	})
}

func countIdentifiers(tree concrete.Node, text string) int {
	n := 0
	concrete.Walk(tree, func(node concrete.Node) bool {
		if id, ok := node.(*concrete.Identifier); ok && id.Text() == text {
			n++
		}
		return true
	})
	return n
}

func TestRun_ShortCircuit(t *testing.T) {
	tree := svtest.Counter()
	p3Ran := false
	p3 := pass.Internal("p3", func(n concrete.Node) (concrete.Node, error) {
		p3Ran = true
		return n, nil
	})

	pipeline := pass.New([]pass.Pass{mustRename(t, "clk", "clk_i"), failing("p2", "cannot continue"), p3})
	res, err := pipeline.Run(context.Background(), tree)

	var failure *pass.PassFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Run() error = %v, want *PassFailure", err)
	}
	if failure.Index != 1 || failure.Pass != "p2" || failure.Kind != pass.KindInternal {
		t.Errorf("failure = %+v, want index 1 pass p2", failure)
	}
	if failure.Message != "cannot continue" || failure.Declined() {
		t.Errorf("failure message = %q declined = %v", failure.Message, failure.Declined())
	}
	if p3Ran {
		t.Error("pass after the failure ran")
	}

	if len(res.Snapshots) != 2 {
		t.Fatalf("len(Snapshots) = %d, want 2", len(res.Snapshots))
	}
	if res.Snapshots[0] != concrete.Node(tree) {
		t.Error("Snapshots[0] is not the input tree")
	}
	if countIdentifiers(res.Last(), "clk_i") != 1 {
		t.Error("output of the first pass is not retained")
	}
	if countIdentifiers(tree, "clk") != 1 {
		t.Error("input tree was modified")
	}
	if len(res.Applied) != 1 || res.RunID == "" {
		t.Errorf("Applied = %v RunID = %q", res.Applied, res.RunID)
	}
}

func TestRun_RenameThenExternal(t *testing.T) {
	tree := svtest.Counter()
	pipeline := pass.New([]pass.Pass{mustRename(t, "clk", "clk_i"), identity("roundtrip")})

	res, err := pipeline.Run(context.Background(), tree)
	svtest.AssertNoError(t, err)
	if len(res.Snapshots) != 3 {
		t.Fatalf("len(Snapshots) = %d, want 3", len(res.Snapshots))
	}

	before := codec.MustEncode(tree)
	after := codec.MustEncode(res.Last())
	var deleted, inserted []string
	for _, line := range codec.Diff(before, after) {
		switch line.Op {
		case codec.DiffDelete:
			deleted = append(deleted, line.Text)
		case codec.DiffInsert:
			inserted = append(inserted, line.Text)
		}
	}
	if len(deleted) != 1 || len(inserted) != 1 {
		t.Fatalf("diff deleted %v inserted %v, want one line each", deleted, inserted)
	}
	if !strings.Contains(deleted[0], `"clk"`) || !strings.Contains(inserted[0], `"clk_i"`) {
		t.Errorf("diff %q -> %q, want the identifier text only", deleted[0], inserted[0])
	}
	if countIdentifiers(res.Last(), "clk") != 0 {
		t.Error("old identifier still present")
	}
}

func TestRun_ExternalFailures(t *testing.T) {
	tests := []struct {
		name         string
		fn           pass.ExternalFunc
		wantDeclined bool
		wantMessage  string
	}{
		{
			name: "failure envelope",
			fn:   func(context.Context, codec.Document) (codec.Document, error) {
				return codec.EncodeFailure("width unresolved"), nil
			},
			wantDeclined: true,
			wantMessage:  "width unresolved",
		},
		{
			name: "error",
			fn:   func(context.Context, codec.Document) (codec.Document, error) {
				return codec.Document{}, errors.New("transport closed")
			},
			wantMessage: "transport closed",
		},
		{
			name: "malformed output",
			fn:   func(context.Context, codec.Document) (codec.Document, error) {
				return codec.NewDocument([]byte(`{"kind": "NoSuchProduction"}`)), nil
			},
			wantMessage: "invalid output document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := pass.New([]pass.Pass{pass.External("ext", tt.fn)}).Run(context.Background(), svtest.Int32())

			var failure *pass.PassFailure
			if !errors.As(err, &failure) {
				t.Fatalf("Run() error = %v, want *PassFailure", err)
			}
			if failure.Kind != pass.KindExternal || failure.Index != 0 {
				t.Errorf("failure = %+v", failure)
			}
			if failure.Declined() != tt.wantDeclined {
				t.Errorf("Declined() = %v, want %v", failure.Declined(), tt.wantDeclined)
			}
			svtest.AssertContains(t, failure.Message, tt.wantMessage)
			if len(res.Snapshots) != 1 {
				t.Errorf("len(Snapshots) = %d, want 1", len(res.Snapshots))
			}
		})
	}
}

func TestRun_InvalidPassResults(t *testing.T) {
	tests := []struct {
		name string
		p    pass.Pass
		want string
	}{
		{"nil tree", pass.Internal("nil", func(concrete.Node) (concrete.Node, error) { return nil, nil }), "no tree"},
		{"typed nil tree", pass.Internal("typed-nil", func(concrete.Node) (concrete.Node, error) {
			return (*concrete.SourceText)(nil), nil
		}), "no tree"},
		{"panic", pass.Internal("panics", func(concrete.Node) (concrete.Node, error) { panic("kaboom") }), "kaboom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := snapshot.NewMemoryStore()
			res, err := pass.New([]pass.Pass{tt.p}, pass.WithStore(store)).Run(context.Background(), svtest.Int32())
			svtest.AssertError(t, err)
			svtest.AssertContains(t, err.Error(), tt.want)
			if len(res.Snapshots) != 1 || len(res.Applied) != 0 {
				t.Errorf("result = %d snapshots, applied %v; want only the input", len(res.Snapshots), res.Applied)
			}
			if n, _ := store.Count(context.Background()); n != 1 {
				t.Errorf("stored %d snapshots, want 1", n)
			}
		})
	}
}

func TestRun_TypedNilInput(t *testing.T) {
	var tree *concrete.SourceText
	if _, err := pass.New(nil).Run(context.Background(), tree); !errors.Is(err, pass.ErrNilTree) {
		t.Errorf("Run(typed nil) error = %v, want ErrNilTree", err)
	}
}

func TestRun_NilInput(t *testing.T) {
	if _, err := pass.New(nil).Run(context.Background(), nil); !errors.Is(err, pass.ErrNilTree) {
		t.Errorf("Run(nil) error = %v, want ErrNilTree", err)
	}
}

func TestRun_CancelledBetweenPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := pass.Internal("first", func(n concrete.Node) (concrete.Node, error) {
		cancel()
		return n, nil
	})

	res, err := pass.New([]pass.Pass{first, identity("second")}).Run(ctx, svtest.Int32())
	var failure *pass.PassFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Run() error = %v, want *PassFailure", err)
	}
	if failure.Index != 1 || !errors.Is(err, context.Canceled) {
		t.Errorf("failure = %+v, want index 1 wrapping context.Canceled", failure)
	}
	if len(res.Snapshots) != 2 {
		t.Errorf("len(Snapshots) = %d, want 2", len(res.Snapshots))
	}
}

func TestRun_RecordsSnapshots(t *testing.T) {
	store := snapshot.NewMemoryStore()
	tree := svtest.Counter()
	pipeline := pass.New(
		[]pass.Pass{mustRename(t, "clk", "clk_i"), failing("broken", "no")},
		pass.WithStore(store),
	)

	res, err := pipeline.Run(context.Background(), tree)
	svtest.AssertError(t, err)

	list, err := store.List(context.Background(), res.RunID)
	svtest.AssertNoError(t, err)
	if len(list) != 2 {
		t.Fatalf("recorded %d snapshots, want 2", len(list))
	}
	if list[1].Pass != res.Applied[0] || list[1].Index != 1 {
		t.Errorf("snapshot 1 = %d %q", list[1].Index, list[1].Pass)
	}

	latest, err := store.Latest(context.Background(), res.RunID)
	svtest.AssertNoError(t, err)
	resumed, err := codec.Decode(latest.Document)
	svtest.AssertNoError(t, err)
	svtest.AssertEqualTrees(t, resumed, res.Last())
}

func TestRun_Telemetry(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.NewWithExporter(&config.TracingConfig{Enabled: true, Sampler: tracing.SamplerAlways}, exporter)
	svtest.AssertNoError(t, err)
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)

	pipeline := pass.New(
		[]pass.Pass{mustRename(t, "clk", "clk_i"), identity("roundtrip")},
		pass.WithTracer(tracer),
		pass.WithMetrics(collector),
	)
	_, err = pipeline.Run(context.Background(), svtest.Counter())
	svtest.AssertNoError(t, err)
	svtest.AssertNoError(t, tracer.ForceFlush(context.Background()))

	names := map[string]int{}
	for _, s := range exporter.GetSpans() {
		names[s.Name]++
	}
	want := map[string]int{tracing.SpanRun: 1, tracing.SpanPass: 2, tracing.SpanEncode: 1, tracing.SpanDecode: 1}
	for name, n := range want {
		if names[name] != n {
			t.Errorf("%d %s spans, want %d (all: %v)", names[name], name, n, names)
		}
	}

	families, err := collector.Registry().Gather()
	svtest.AssertNoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "svast_pipeline_passes_total" {
			found = true
			if got := len(f.GetMetric()); got != 2 {
				t.Errorf("passes_total has %d series, want 2", got)
			}
		}
	}
	if !found {
		t.Error("passes_total not gathered")
	}
}
