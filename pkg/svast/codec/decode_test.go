package codec_test

import (
	"os"
	"strings"
	"testing"

	"svdata-hq/svast/internal/svtest"
	"svdata-hq/svast/pkg/svast/codec"
	sverrors "svdata-hq/svast/pkg/svast/errors"
)

func decodeErrors(t *testing.T, c *codec.Codec, text string) []*sverrors.DecodeError {
	t.Helper()
	tree, err := c.Decode(codec.NewDocument([]byte(text)))
	if err == nil {
		t.Fatalf("Decode() succeeded, want error")
	}
	if tree != nil {
		t.Fatalf("Decode() returned a tree alongside the error")
	}
	errs := sverrors.All(err)
	if len(errs) == 0 {
		t.Fatalf("error %T is not a decode error: %v", err, err)
	}
	return errs
}

func TestDecode_PortListScalar(t *testing.T) {
	data, err := os.ReadFile("testdata/ports_scalar.json")
	svtest.AssertNoError(t, err)

	_, err = codec.New().DecodeSource(codec.NewDocument(data), "testdata/ports_scalar.json")
	de, ok := err.(*sverrors.DecodeError)
	if !ok {
		t.Fatalf("error = %T %v, want a single *DecodeError", err, err)
	}
	if de.Kind != sverrors.KindNotASequence {
		t.Errorf("Kind = %s, want %s", de.Kind, sverrors.KindNotASequence)
	}
	if de.Location.Path != "$.descriptions[0].ports.ports" {
		t.Errorf("Path = %q, want $.descriptions[0].ports.ports", de.Location.Path)
	}
	if de.Location.Source != "testdata/ports_scalar.json" {
		t.Errorf("Source = %q", de.Location.Source)
	}
	if de.Location.Line != 14 {
		t.Errorf("Line = %d, want 14", de.Location.Line)
	}
	if !strings.Contains(de.Context, `"ports": "clk"`) {
		t.Errorf("Context does not show the offending line:\n%s", de.Context)
	}
}

func TestDecode_RootPortListScalar(t *testing.T) {
	errs := decodeErrors(t, codec.New(), `{"kind": "PortList", "ports": "a"}`)
	if errs[0].Kind != sverrors.KindNotASequence || errs[0].Location.Path != "$.ports" {
		t.Errorf("got %s at %s, want not_a_sequence at $.ports", errs[0].Kind, errs[0].Location.Path)
	}
}

func TestDecode_Errors(t *testing.T) {
	const (
		ident = `{"kind": "Identifier", "text": "b"}`
		one   = `{"kind": "IntegralNumber", "text": "1"}`
	)
	tests := []struct {
		name string
		doc  string
		kind sverrors.Kind
		path string
	}{
		{"syntax", `{"kind": `, sverrors.KindSyntax, "$"},
		{"empty", ``, sverrors.KindSyntax, "$"},
		{"trailing document", ident + "\n---\ngarbage\n", sverrors.KindSyntax, "$"},
		{"trailing malformed document", ident + "\n---\n{\"kind\": \n", sverrors.KindSyntax, "$"},
		{"root is a sequence", `[]`, sverrors.KindNotARecord, "$"},
		{"missing kind", `{"text": "a"}`, sverrors.KindMissingKind, "$"},
		{"kind not text", `{"kind": 7}`, sverrors.KindNotText, "$.kind"},
		{"unknown kind", `{"kind": "IntegerTyp"}`, sverrors.KindUnknownKind, "$"},
		{"unknown field", `{"kind": "Identifier", "text": "a", "txt": "b"}`, sverrors.KindUnknownField, "$.txt"},
		{"duplicate field", `{"kind": "Identifier", "text": "a", "text": "b"}`, sverrors.KindDuplicateField, "$.text"},
		{"missing required field", `{"kind": "NetAssignment", "lvalue": ` + ident + `}`, sverrors.KindMissingField, "$"},
		{"null required field", `{"kind": "NetAssignment", "lvalue": null, "expression": ` + ident + `}`, sverrors.KindMissingField, "$.lvalue"},
		{"missing list", `{"kind": "PortList"}`, sverrors.KindMissingField, "$"},
		{"null list", `{"kind": "PortList", "ports": null}`, sverrors.KindNotASequence, "$.ports"},
		{"scalar for record", `{"kind": "NetAssignment", "lvalue": "a", "expression": ` + ident + `}`, sverrors.KindNotARecord, "$.lvalue"},
		{"variant not allowed", `{"kind": "NetAssignment", "lvalue": ` + one + `, "expression": ` + ident + `}`, sverrors.KindVariantNotAllowed, "$.lvalue"},
		{"number for text", `{"kind": "IntegralNumber", "text": 8}`, sverrors.KindNotText, "$.text"},
		{"lexical", `{"kind": "IntegralNumber", "text": "eight"}`, sverrors.KindLexical, "$.text"},
		{"bad keyword", `{"kind": "NonIntegerType", "keyword": "double"}`, sverrors.KindLexical, "$.keyword"},
		{"empty optional text", `{"kind": "IntegerType", "keyword": "bit", "signing": "", "packed_dimensions": []}`, sverrors.KindLexical, "$.signing"},
		{
			"atom with packed dimensions",
			`{"kind": "IntegerType", "keyword": "int", "signing": null, "packed_dimensions": [` +
				`{"kind": "PackedDimension", "msb": ` + one + `, "lsb": ` + one + `}]}`,
			sverrors.KindInvalidTree, "$",
		},
		{
			"nested list element",
			`{"kind": "ContinuousAssign", "assignments": [{"kind": "NetAssignment", "lvalue": ` + ident +
				`, "expression": {"kind": "UnaryExpression", "operator": "++", "operand": ` + ident + `}}]}`,
			sverrors.KindLexical, "$.assignments[0].expression.operator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := decodeErrors(t, codec.New(), tt.doc)
			if errs[0].Kind != tt.kind {
				t.Errorf("Kind = %s, want %s (%v)", errs[0].Kind, tt.kind, errs[0].Short())
			}
			if errs[0].Location.Path != tt.path {
				t.Errorf("Path = %q, want %q", errs[0].Location.Path, tt.path)
			}
		})
	}
}

func TestDecode_Suggestions(t *testing.T) {
	errs := decodeErrors(t, codec.New(), `{"kind": "IntegerTyp", "keyword": "int"}`)
	if errs[0].Suggestion != "Did you mean 'IntegerType'?" {
		t.Errorf("Suggestion = %q", errs[0].Suggestion)
	}

	errs = decodeErrors(t, codec.New(), `{"kind": "Identifier", "text": "a", "txt": "b"}`)
	if errs[0].Suggestion != "Did you mean 'text'?" {
		t.Errorf("Suggestion = %q", errs[0].Suggestion)
	}
}

func TestDecode_CollectsSiblingErrors(t *testing.T) {
	doc := `{"kind": "PortList", "ports": [
  {"kind": "AnsiPortDeclaration", "direction": "input", "data_type": null, "unpacked_dimensions": []},
  {"kind": "AnsiPortDeclaration", "direction": "sideways", "data_type": null,
   "identifier": {"kind": "Identifier", "text": "b"}, "unpacked_dimensions": []}
]}`
	_, err := codec.Decode(codec.NewDocument([]byte(doc)))
	list, ok := err.(*sverrors.ErrorList)
	if !ok {
		t.Fatalf("error = %T, want *ErrorList", err)
	}
	if list.Count() != 2 {
		t.Fatalf("Count() = %d, want 2: %v", list.Count(), list)
	}
	if list.Errors[0].Kind != sverrors.KindMissingField || list.Errors[0].Location.Path != "$.ports[0]" {
		t.Errorf("first error = %s", list.Errors[0].Short())
	}
	if list.Errors[1].Kind != sverrors.KindLexical || list.Errors[1].Location.Path != "$.ports[1].direction" {
		t.Errorf("second error = %s", list.Errors[1].Short())
	}
	if list.Errors[1].Location.Line != 3 {
		t.Errorf("second error line = %d, want 3", list.Errors[1].Location.Line)
	}
}

func TestDecode_Limits(t *testing.T) {
	doc := codec.MustEncode(svtest.Logic("7", "0"))

	errs := decodeErrors(t, codec.New().WithMaxDepth(2), doc.String())
	if errs[0].Kind != sverrors.KindDepthExceeded {
		t.Errorf("Kind = %s, want depth_exceeded", errs[0].Kind)
	}
	if _, err := codec.New().WithMaxDepth(3).Decode(doc); err != nil {
		t.Errorf("depth 3 should be enough: %v", err)
	}

	errs = decodeErrors(t, codec.New().WithMaxDocumentSize(10), doc.String())
	if errs[0].Kind != sverrors.KindTooLarge {
		t.Errorf("Kind = %s, want too_large", errs[0].Kind)
	}
}

func TestDecode_RejectsAliases(t *testing.T) {
	doc := `kind: NetAssignment
lvalue: &name
  kind: Identifier
  text: a
expression: *name
`
	errs := decodeErrors(t, codec.New(), doc)
	if errs[0].Kind != sverrors.KindAlias || errs[0].Location.Path != "$.expression" {
		t.Errorf("got %s", errs[0].Short())
	}
}

func TestDecode_PlainYAML(t *testing.T) {
	doc := `kind: IntegerType
keyword: logic
signing: signed
packed_dimensions:
  - kind: PackedDimension
    msb: {kind: IntegralNumber, text: "3"}
    lsb: {kind: IntegralNumber, text: "0"}
`
	got, err := codec.Decode(codec.NewDocument([]byte(doc)))
	svtest.AssertNoError(t, err)
	if got.Kind() != "IntegerType" {
		t.Errorf("Kind() = %s", got.Kind())
	}

	// An unquoted YAML number is not text.
	errs := decodeErrors(t, codec.New(), strings.Replace(doc, `text: "3"`, `text: 3`, 1))
	if errs[0].Kind != sverrors.KindNotText {
		t.Errorf("Kind = %s, want not_text", errs[0].Kind)
	}
}
