// Package svtest holds tree fixtures and assertions shared by package tests.
package svtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"svdata-hq/svast/pkg/svast/concrete"
)

// Ident is shorthand for concrete.NewIdentifier.
func Ident(name string) *concrete.Identifier {
	return concrete.NewIdentifier(name)
}

// Num is shorthand for concrete.NewIntegralNumber.
func Num(text string) *concrete.IntegralNumber {
	return concrete.NewIntegralNumber(text)
}

// Int32 returns the `int` atom type (32-bit, signed).
func Int32() *concrete.IntegerType {
	return concrete.NewIntegerAtomType(concrete.Int, concrete.Unspecified)
}

// Logic returns `logic [msb:lsb]` with literal bounds.
func Logic(msb, lsb string) *concrete.IntegerType {
	return concrete.NewIntegerVectorType(concrete.Logic, concrete.Unspecified,
		concrete.NewPackedDimension(Num(msb), Num(lsb)))
}

// Counter returns a small but complete compilation unit:
//
//	package defs;
//	  typedef enum logic [1:0] {IDLE, RUN = 2, DONE} state_t;
//	endpackage
//	module counter #(parameter int WIDTH = 8) (
//	  input logic clk,
//	  output logic [WIDTH-1:0] count
//	);
//	  localparam int MAX = 255;
//	  logic [7:0] next;
//	  assign count = next;
//	endmodule : counter
func Counter() *concrete.SourceText {
	state := concrete.NewEnumType(
		concrete.NewIntegerVectorType(concrete.Logic, concrete.Unspecified,
			concrete.NewPackedDimension(Num("1"), Num("0"))),
		concrete.NewEnumNameDeclaration(Ident("IDLE"), nil),
		concrete.NewEnumNameDeclaration(Ident("RUN"), Num("2")),
		concrete.NewEnumNameDeclaration(Ident("DONE"), nil),
	)
	defs := concrete.NewPackageDeclaration(Ident("defs"), []concrete.PackageItem{
		concrete.NewTypeDeclaration(state, Ident("state_t")),
	}, nil)

	params := concrete.NewParameterPortList(
		concrete.NewParameterDeclaration(Int32(),
			concrete.NewParamAssignment(Ident("WIDTH"), nil, Num("8"))),
	)
	countWidth := concrete.NewIntegerVectorType(concrete.Logic, concrete.Unspecified,
		concrete.NewPackedDimension(
			concrete.NewBinaryExpression(concrete.OpSubtract, Ident("WIDTH"), Num("1")),
			Num("0")))
	ports := concrete.NewPortList(
		concrete.NewAnsiPortDeclaration(concrete.Input, Logic("0", "0"), Ident("clk")),
		concrete.NewAnsiPortDeclaration(concrete.Output, countWidth, Ident("count")),
	)
	items := []concrete.ModuleItem{
		concrete.NewLocalParameterDeclaration(Int32(),
			concrete.NewParamAssignment(Ident("MAX"), nil, Num("255"))),
		concrete.NewDataDeclaration(false, Logic("7", "0"),
			concrete.NewVariableDeclAssignment(Ident("next"), nil, nil)),
		concrete.NewContinuousAssign(concrete.NewNetAssignment(Ident("count"), Ident("next"))),
	}
	counter := concrete.NewModuleDeclaration(concrete.Module, Ident("counter"), params, ports, items, Ident("counter"))

	return concrete.NewSourceText(defs, counter)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqualTrees fails the test if got and want are not structurally
// equal.
func AssertEqualTrees(t *testing.T, got, want concrete.Node) {
	t.Helper()
	if !concrete.Equal(got, want) {
		t.Fatalf("trees differ:\n got: %s\nwant: %s", describe(got), describe(want))
	}
}

// AssertContains fails the test if haystack doesn't contain needle.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

// WithTimeout runs a function with a timeout context.
func WithTimeout(t *testing.T, timeout time.Duration, fn func(ctx context.Context)) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		fn(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timeout after %s", timeout)
	}
}

// describe renders a compact one-line outline of a tree.
func describe(n concrete.Node) string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	var visit func(concrete.Node)
	visit = func(n concrete.Node) {
		b.WriteString(string(n.Kind()))
		b.WriteByte('(')
		for i, f := range n.Fields() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteByte('=')
			switch {
			case !f.Present:
				b.WriteString("-")
			case f.Kind.IsText():
				b.WriteString(f.Text)
			case f.Kind == concrete.FieldList:
				b.WriteByte('[')
				for j, c := range f.List {
					if j > 0 {
						b.WriteString(" ")
					}
					visit(c)
				}
				b.WriteByte(']')
			default:
				visit(f.Node)
			}
		}
		b.WriteByte(')')
	}
	visit(n)
	return b.String()
}
