package abstract

import "svdata-hq/svast/pkg/svast/concrete"

// DeclarationKind says what introduced a typed name.
type DeclarationKind string

const (
	DeclPort       DeclarationKind = "port"
	DeclVariable   DeclarationKind = "variable"
	DeclParameter  DeclarationKind = "parameter"
	DeclLocalparam DeclarationKind = "localparam"
	DeclTypedef    DeclarationKind = "typedef"
)

// Declaration is a name declared with an explicit data type.
type Declaration struct {
	Kind  DeclarationKind
	Scope string // enclosing module or package
	Name  string
	Type  Type
}

// Declarations lists every explicitly typed declaration in the tree, in
// source order. Ports with an implicit type and parameters whose type is
// inferred from their value are skipped.
func Declarations(root concrete.Node, cache *Cache) []Declaration {
	if cache == nil {
		cache = NewCache(1)
	}
	var out []Declaration
	scope := ""
	add := func(kind DeclarationKind, name *concrete.Identifier, dt concrete.DataType) {
		if dt == nil || name == nil {
			return
		}
		out = append(out, Declaration{Kind: kind, Scope: scope, Name: name.Text(), Type: cache.Of(root, dt)})
	}

	concrete.Walk(root, func(n concrete.Node) bool {
		switch x := n.(type) {
		case *concrete.ModuleDeclaration:
			scope = x.Identifier().Text()
		case *concrete.PackageDeclaration:
			scope = x.Identifier().Text()
		case *concrete.AnsiPortDeclaration:
			add(DeclPort, x.Identifier(), x.DataType())
			return false
		case *concrete.DataDeclaration:
			for _, v := range x.Variables() {
				add(DeclVariable, v.Identifier(), x.DataType())
			}
			return false
		case *concrete.ParameterDeclaration:
			for _, a := range x.Assignments() {
				add(DeclParameter, a.Identifier(), x.DataType())
			}
			return false
		case *concrete.LocalParameterDeclaration:
			for _, a := range x.Assignments() {
				add(DeclLocalparam, a.Identifier(), x.DataType())
			}
			return false
		case *concrete.TypeDeclaration:
			add(DeclTypedef, x.Identifier(), x.DataType())
			return false
		}
		return true
	})
	return out
}

// Integrals returns the view of every IntegerType in the tree, including
// enum base types, in source order.
func Integrals(root concrete.Node, cache *Cache) []*Integral {
	if cache == nil {
		cache = NewCache(1)
	}
	var out []*Integral
	concrete.Walk(root, func(n concrete.Node) bool {
		if it, ok := n.(*concrete.IntegerType); ok {
			out = append(out, cache.Integral(root, it))
		}
		return true
	})
	return out
}
