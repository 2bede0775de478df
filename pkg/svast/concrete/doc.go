// Package concrete defines the concrete syntax tree of SystemVerilog: one
// node variant per supported IEEE 1800-2017 Annex A production.
//
// The variant family is closed. Every node implements Node through an
// unexported marker method, and the category interfaces (Description,
// ModuleItem, PackageItem, DataType, Expression) restrict which variants
// may appear at each grammar position, so most malformed trees cannot be
// written down at all.
//
// # Immutability
//
// Nodes have unexported fields and no setters. Accessors that return slices
// return copies. To change a tree, build a replacement subtree and new
// ancestors above it; Transform does this and reuses every subtree in which
// nothing changed.
//
// # Generic view
//
// Fields exposes each production as an ordered list of named fields, and
// Lookup returns the production schema (field names, arities, admissible
// variants, lexical validators). Rebuild goes the other way and is the
// checked constructor used by the codec and by Transform:
//
//	n, err := concrete.Rebuild(concrete.KindIntegerType, []concrete.Field{
//	    {Name: "keyword", Kind: concrete.FieldText, Text: "int", Present: true},
//	    {Name: "signing", Kind: concrete.FieldOptionalText},
//	    {Name: "packed_dimensions", Kind: concrete.FieldList},
//	})
//
// # Traversal
//
//	concrete.Walk(tree, func(n concrete.Node) bool {
//	    if id, ok := n.(*concrete.Identifier); ok {
//	        fmt.Println(id.Text())
//	    }
//	    return true
//	})
package concrete
