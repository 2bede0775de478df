package concrete_test

import (
	"errors"
	"testing"

	"svdata-hq/svast/internal/svtest"
	"svdata-hq/svast/pkg/svast/concrete"
)

func TestWalk_PreOrder(t *testing.T) {
	expr := concrete.NewBinaryExpression(concrete.OpAdd, svtest.Ident("a"),
		concrete.NewUnaryExpression(concrete.UnaryMinus, svtest.Num("1")))

	var got []concrete.Kind
	concrete.Walk(expr, func(n concrete.Node) bool {
		got = append(got, n.Kind())
		return true
	})

	want := []concrete.Kind{
		concrete.KindBinaryExpression,
		concrete.KindIdentifier,
		concrete.KindUnaryExpression,
		concrete.KindIntegralNumber,
	}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalk_Prune(t *testing.T) {
	count := 0
	concrete.Walk(svtest.Counter(), func(n concrete.Node) bool {
		count++
		_, isModule := n.(*concrete.ModuleDeclaration)
		_, isPackage := n.(*concrete.PackageDeclaration)
		return !isModule && !isPackage
	})
	// SourceText plus its two descriptions.
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestChildren_SkipsAbsentOptionals(t *testing.T) {
	v := concrete.NewVariableDeclAssignment(svtest.Ident("x"), nil, nil)
	children := concrete.Children(v)
	if len(children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(children))
	}
	if children[0].Kind() != concrete.KindIdentifier {
		t.Errorf("child kind = %s, want Identifier", children[0].Kind())
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b concrete.Node
		want bool
	}{
		{"same fixture", svtest.Counter(), svtest.Counter(), true},
		{"both nil", nil, nil, true},
		{"one nil", svtest.Ident("a"), nil, false},
		{"different text", svtest.Ident("a"), svtest.Ident("b"), false},
		{"different kind", svtest.Ident("a"), svtest.Num("1"), false},
		{
			"signing present vs absent",
			concrete.NewIntegerAtomType(concrete.Int, concrete.Signed),
			concrete.NewIntegerAtomType(concrete.Int, concrete.Unspecified),
			false,
		},
		{
			"empty vs non-empty list",
			concrete.NewPortList(),
			concrete.NewPortList(concrete.NewAnsiPortDeclaration(concrete.Input, nil, svtest.Ident("a"))),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := concrete.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	pl := concrete.NewPortList(concrete.NewAnsiPortDeclaration(concrete.Input, nil, svtest.Ident("a")))
	ports := pl.Ports()
	ports[0] = nil
	if pl.Ports()[0] == nil {
		t.Error("mutating the returned slice changed the node")
	}
}

func rename(from, to string) func(concrete.Node) (concrete.Node, error) {
	return func(n concrete.Node) (concrete.Node, error) {
		if id, ok := n.(*concrete.Identifier); ok && id.Text() == from {
			return concrete.NewIdentifier(to), nil
		}
		return nil, nil
	}
}

func TestTransform_SharesUnchangedSubtrees(t *testing.T) {
	tree := svtest.Counter()
	out, err := concrete.Transform(tree, rename("next", "next_q"))
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}

	src := out.(*concrete.SourceText)
	if src == tree {
		t.Fatal("root should be rebuilt when a descendant changes")
	}

	// The package declaration contains no "next" and must be reused as is.
	if src.Descriptions()[0] != tree.Descriptions()[0] {
		t.Error("unchanged package declaration was not shared")
	}

	before := tree.Descriptions()[1].(*concrete.ModuleDeclaration)
	after := src.Descriptions()[1].(*concrete.ModuleDeclaration)
	if after.Ports() != before.Ports() {
		t.Error("unchanged port list was not shared")
	}
	if after.Items()[0] != before.Items()[0] {
		t.Error("unchanged localparam was not shared")
	}
	if after.Items()[1] == before.Items()[1] {
		t.Error("changed data declaration was shared")
	}

	var names []string
	concrete.Walk(out, func(n concrete.Node) bool {
		if id, ok := n.(*concrete.Identifier); ok {
			names = append(names, id.Text())
		}
		return true
	})
	for _, name := range names {
		if name == "next" {
			t.Error("identifier next survived the rename")
		}
	}

	// Input is untouched.
	if !concrete.Equal(tree, svtest.Counter()) {
		t.Error("Transform mutated its input")
	}
}

func TestTransform_NoChangeReturnsInput(t *testing.T) {
	tree := svtest.Counter()
	out, err := concrete.Transform(tree, rename("absent", "x"))
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}
	if out != concrete.Node(tree) {
		t.Error("Transform without changes should return the input root")
	}
}

func TestTransform_InadmissibleReplacement(t *testing.T) {
	tree := svtest.Counter()
	_, err := concrete.Transform(tree, func(n concrete.Node) (concrete.Node, error) {
		if id, ok := n.(*concrete.Identifier); ok && id.Text() == "clk" {
			return svtest.Num("0"), nil
		}
		return nil, nil
	})
	var be *concrete.BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *BuildError", err)
	}
	if be.Kind != concrete.KindAnsiPortDeclaration || be.Field != "identifier" {
		t.Errorf("BuildError at %s.%s, want AnsiPortDeclaration.identifier", be.Kind, be.Field)
	}
}

func TestTransform_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := concrete.Transform(svtest.Ident("a"), func(concrete.Node) (concrete.Node, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestIsNil(t *testing.T) {
	var source *concrete.SourceText
	var void *concrete.VoidType
	tests := []struct {
		name string
		node concrete.Node
		want bool
	}{
		{"nil interface", nil, true},
		{"nil source text", source, true},
		{"nil keyword type", void, true},
		{"node", svtest.Int32(), false},
		{"keyword type", concrete.NewVoidType(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := concrete.IsNil(tt.node); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordTypes_DistinctIdentity(t *testing.T) {
	if concrete.NewStringType() == concrete.NewStringType() {
		t.Error("two string types share an address")
	}
	if concrete.NewVoidType() == concrete.NewVoidType() {
		t.Error("two void types share an address")
	}
}
