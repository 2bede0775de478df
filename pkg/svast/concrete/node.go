package concrete

import "reflect"

// Kind is the variant tag of a concrete node. Tags are stable strings that
// name the IEEE 1800-2017 Annex A production the node represents.
type Kind string

const (
	KindSourceText                Kind = "SourceText"
	KindModuleDeclaration         Kind = "ModuleDeclaration"
	KindPackageDeclaration        Kind = "PackageDeclaration"
	KindParameterPortList         Kind = "ParameterPortList"
	KindPortList                  Kind = "PortList"
	KindAnsiPortDeclaration       Kind = "AnsiPortDeclaration"
	KindDataDeclaration           Kind = "DataDeclaration"
	KindVariableDeclAssignment    Kind = "VariableDeclAssignment"
	KindParameterDeclaration      Kind = "ParameterDeclaration"
	KindLocalParameterDeclaration Kind = "LocalParameterDeclaration"
	KindParamAssignment           Kind = "ParamAssignment"
	KindTypeDeclaration           Kind = "TypeDeclaration"
	KindContinuousAssign          Kind = "ContinuousAssign"
	KindNetAssignment             Kind = "NetAssignment"
	KindIntegerType               Kind = "IntegerType"
	KindNonIntegerType            Kind = "NonIntegerType"
	KindStringType                Kind = "StringType"
	KindChandleType               Kind = "ChandleType"
	KindEventType                 Kind = "EventType"
	KindVoidType                  Kind = "VoidType"
	KindEnumType                  Kind = "EnumType"
	KindEnumNameDeclaration       Kind = "EnumNameDeclaration"
	KindPsTypeIdentifier          Kind = "PsTypeIdentifier"
	KindPackedDimension           Kind = "PackedDimension"
	KindUnpackedDimension         Kind = "UnpackedDimension"
	KindIdentifier                Kind = "Identifier"
	KindIntegralNumber            Kind = "IntegralNumber"
	KindUnaryExpression           Kind = "UnaryExpression"
	KindBinaryExpression          Kind = "BinaryExpression"
)

// Node is a concrete syntax tree node. The set of implementations is closed:
// every production lives in this package.
//
// Nodes are immutable after construction. A child belongs to exactly one
// parent position; "editing" a tree means building new ancestors around a
// replacement subtree (see Transform).
type Node interface {
	// Kind returns the production tag of the node.
	Kind() Kind

	// Fields returns the production's fields in canonical order. The
	// returned slice and its lists are fresh copies owned by the caller.
	Fields() []Field

	sealed()
}

// IsNil reports whether n is nil or a nil pointer to a production.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Description is a top-level item of a SourceText.
type Description interface {
	Node
	isDescription()
}

// ModuleItem is an item that may appear in a module body.
type ModuleItem interface {
	Node
	isModuleItem()
}

// PackageItem is an item that may appear in a package body.
type PackageItem interface {
	Node
	isPackageItem()
}

// DataType is one of the data_type alternatives.
type DataType interface {
	Node
	isDataType()
}

// Expression is a constant or general expression.
type Expression interface {
	Node
	isExpression()
}

// FieldKind describes the arity of a production field.
type FieldKind int

const (
	// FieldNode is a required child node.
	FieldNode FieldKind = iota
	// FieldOptionalNode is a child node that may be absent.
	FieldOptionalNode
	// FieldList is an ordered repetition of child nodes (possibly empty).
	FieldList
	// FieldText is a required terminal literal.
	FieldText
	// FieldOptionalText is a terminal literal that may be absent.
	FieldOptionalText
)

// String returns the name of the field kind.
func (k FieldKind) String() string {
	switch k {
	case FieldNode:
		return "node"
	case FieldOptionalNode:
		return "optional node"
	case FieldList:
		return "list"
	case FieldText:
		return "text"
	case FieldOptionalText:
		return "optional text"
	default:
		return "unknown"
	}
}

// IsText reports whether the field holds a terminal literal.
func (k FieldKind) IsText() bool {
	return k == FieldText || k == FieldOptionalText
}

// Field is a read-only view of one production field.
type Field struct {
	Name string
	Kind FieldKind

	Node Node   // FieldNode, FieldOptionalNode (nil when absent)
	List []Node // FieldList (never nil)
	Text string // FieldText, FieldOptionalText

	// Present is false only for an absent optional field.
	Present bool
}

func nodeField(name string, n Node) Field {
	return Field{Name: name, Kind: FieldNode, Node: n, Present: true}
}

func optionalNodeField(name string, n Node) Field {
	return Field{Name: name, Kind: FieldOptionalNode, Node: n, Present: n != nil}
}

func listField(name string, list []Node) Field {
	if list == nil {
		list = []Node{}
	}
	return Field{Name: name, Kind: FieldList, List: list, Present: true}
}

func textField(name, text string) Field {
	return Field{Name: name, Kind: FieldText, Text: text, Present: true}
}

func optionalTextField(name, text string) Field {
	return Field{Name: name, Kind: FieldOptionalText, Text: text, Present: text != ""}
}

// orNil converts a possibly nil typed pointer into a Node, keeping nil
// pointers as an untyped nil interface.
func orNil[P interface {
	*E
	Node
}, E any](p P) Node {
	if p == nil {
		return nil
	}
	return p
}

// nodes converts a typed slice into a fresh []Node.
func nodes[T Node](xs []T) []Node {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// cast converts a validated []Node back into a typed slice.
func cast[T Node](xs []Node) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = x.(T)
	}
	return out
}

// clone returns a copy of xs that is never nil.
func clone[T any](xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	return out
}
