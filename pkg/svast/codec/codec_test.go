package codec_test

import (
	"strings"
	"testing"

	"svdata-hq/svast/internal/svtest"
	"svdata-hq/svast/pkg/svast/codec"
	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
)

func TestEncode_Canonical(t *testing.T) {
	doc, err := codec.Encode(svtest.Int32())
	svtest.AssertNoError(t, err)

	want := `{
  "kind": "IntegerType",
  "keyword": "int",
  "signing": null,
  "packed_dimensions": []
}
`
	if doc.String() != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", doc, want)
	}
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	expr := concrete.NewBinaryExpression(concrete.OpLogicalAnd, svtest.Ident("a"), svtest.Ident("b"))
	doc := codec.MustEncode(expr)
	svtest.AssertContains(t, doc.String(), `"operator": "&&"`)
}

func TestEncode_NilTree(t *testing.T) {
	if _, err := codec.Encode(nil); err == nil {
		t.Error("Encode(nil) should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tree concrete.Node
	}{
		{"int", svtest.Int32()},
		{"counter", svtest.Counter()},
		{"string type", concrete.NewStringType()},
		{"escaped identifier", svtest.Ident(`\a+b`)},
		{"const data", concrete.NewDataDeclaration(true, concrete.NewNonIntegerType(concrete.Real),
			concrete.NewVariableDeclAssignment(svtest.Ident("pi"),
				[]*concrete.UnpackedDimension{concrete.NewUnpackedDimension(svtest.Num("4"), nil)},
				svtest.Num("3")))},
		{"typedef ref", concrete.NewPsTypeIdentifier(svtest.Ident("defs"), svtest.Ident("state_t"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := codec.Encode(tt.tree)
			svtest.AssertNoError(t, err)

			got, err := codec.Decode(doc)
			svtest.AssertNoError(t, err)
			svtest.AssertEqualTrees(t, got, tt.tree)

			again := codec.MustEncode(got)
			if !again.Equal(doc) {
				t.Errorf("re-encoding changed the document:\n%s", codec.UnifiedDiff(doc, again, "first", "second", 2))
			}
		})
	}
}

func TestEncode_Stable(t *testing.T) {
	first := codec.MustEncode(svtest.Counter())
	for i := 0; i < 5; i++ {
		if next := codec.MustEncode(svtest.Counter()); !next.Equal(first) {
			t.Fatalf("encoding %d differs from the first", i)
		}
	}
}

func TestYAMLRendering(t *testing.T) {
	c := codec.New().WithFormat(codec.FormatYAML)
	doc, err := c.Encode(svtest.Counter())
	svtest.AssertNoError(t, err)

	svtest.AssertContains(t, doc.String(), `text: "8"`)
	svtest.AssertContains(t, doc.String(), "kind: SourceText")

	got, err := codec.Decode(doc)
	svtest.AssertNoError(t, err)
	svtest.AssertEqualTrees(t, got, svtest.Counter())
}

func TestDecode_OmittedOptionalIsAbsent(t *testing.T) {
	doc := codec.NewDocument([]byte(`{"kind": "IntegerType", "keyword": "int", "packed_dimensions": []}`))
	got, err := codec.Decode(doc)
	svtest.AssertNoError(t, err)
	svtest.AssertEqualTrees(t, got, svtest.Int32())
}

func TestDecodeAs(t *testing.T) {
	doc := codec.MustEncode(svtest.Int32())

	it, err := codec.DecodeAs[*concrete.IntegerType](codec.New(), doc)
	svtest.AssertNoError(t, err)
	if it.Keyword() != "int" {
		t.Errorf("Keyword() = %q, want int", it.Keyword())
	}

	_, err = codec.DecodeAs[*concrete.SourceText](codec.New(), doc)
	errs := sverrors.All(err)
	if len(errs) != 1 || errs[0].Kind != sverrors.KindUnexpectedRoot {
		t.Errorf("DecodeAs(wrong root) error = %v", err)
	}
}

func TestDocument(t *testing.T) {
	raw := []byte("{}\n")
	doc := codec.NewDocument(raw)
	raw[0] = 'x'
	if doc.String() != "{}\n" {
		t.Error("NewDocument should copy its input")
	}
	b := doc.Bytes()
	b[0] = 'x'
	if doc.String() != "{}\n" {
		t.Error("Bytes should return a copy")
	}
	if doc.Digest() != codec.NewDocument([]byte("{}\n")).Digest() {
		t.Error("equal content should have equal digests")
	}
	if len(doc.Digest()) != 64 {
		t.Errorf("digest length = %d, want 64", len(doc.Digest()))
	}
	if !codec.NewDocument(nil).IsEmpty() {
		t.Error("nil document should be empty")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    codec.Format
		wantErr bool
	}{
		{"json", codec.FormatJSON, false},
		{"", codec.FormatJSON, false},
		{"YAML", codec.FormatYAML, false},
		{"yml", codec.FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := codec.ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFailureEnvelope(t *testing.T) {
	doc := codec.EncodeFailure(`width <must> be "known"`)
	msg, ok := codec.IsFailure(doc)
	if !ok {
		t.Fatalf("IsFailure(%s) = false", doc)
	}
	if msg != `width <must> be "known"` {
		t.Errorf("message = %q", msg)
	}

	if _, ok := codec.IsFailure(codec.MustEncode(svtest.Int32())); ok {
		t.Error("a tree document is not a failure envelope")
	}
	if _, ok := codec.IsFailure(codec.NewDocument([]byte(`{"failure": 3}`))); ok {
		t.Error("a non-string failure is not an envelope")
	}
	if _, ok := codec.IsFailure(codec.NewDocument([]byte("failure: yaml works too\n"))); !ok {
		t.Error("YAML envelope should be recognized")
	}
}

func TestDiff(t *testing.T) {
	a := codec.MustEncode(svtest.Ident("a"))
	b := codec.MustEncode(svtest.Ident("b"))

	var inserts, deletes int
	for _, l := range codec.Diff(a, b) {
		switch l.Op {
		case codec.DiffInsert:
			inserts++
		case codec.DiffDelete:
			deletes++
		}
	}
	if inserts != 1 || deletes != 1 {
		t.Errorf("inserts=%d deletes=%d, want 1 and 1", inserts, deletes)
	}

	unified := codec.UnifiedDiff(a, b, "a.json", "b.json", 1)
	for _, want := range []string{"--- a.json", "+++ b.json", `-  "text": "a"`, `+  "text": "b"`, "@@ -2,3 +2,3 @@"} {
		if !strings.Contains(unified, want) {
			t.Errorf("UnifiedDiff() missing %q:\n%s", want, unified)
		}
	}
	if codec.UnifiedDiff(a, a, "a", "a", 3) != "" {
		t.Error("identical documents should give an empty diff")
	}
}
