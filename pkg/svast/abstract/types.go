package abstract

import (
	"fmt"
	"strings"

	"svdata-hq/svast/pkg/svast/concrete"
)

// Type is the abstract view of a data type. The set of views is closed.
type Type interface {
	// Node returns the concrete data type the view was derived from.
	Node() concrete.DataType
	String() string
	isType()
}

// Of derives the view of any data type. It is total: every DataType variant
// has a view.
func Of(dt concrete.DataType) Type {
	switch t := dt.(type) {
	case *concrete.IntegerType:
		return NewIntegral(t)
	case *concrete.NonIntegerType:
		return &Real{node: t}
	case *concrete.StringType:
		return &String{node: t}
	case *concrete.ChandleType:
		return &Chandle{node: t}
	case *concrete.EventType:
		return &Event{node: t}
	case *concrete.VoidType:
		return &Void{node: t}
	case *concrete.EnumType:
		return NewEnum(t)
	case *concrete.PsTypeIdentifier:
		return NewTypedef(t)
	}
	panic(fmt.Sprintf("abstract: unhandled data type %T", dt))
}

// Real is the view of real, shortreal and realtime.
type Real struct {
	node *concrete.NonIntegerType
}

func (r *Real) Concrete() *concrete.NonIntegerType { return r.node }
func (r *Real) Node() concrete.DataType            { return r.node }
func (r *Real) Keyword() concrete.NonIntegerKeyword {
	return r.node.Keyword()
}

// Bits returns the IEEE 754 width: 32 for shortreal, 64 otherwise.
func (r *Real) Bits() int {
	if r.node.Keyword() == concrete.Shortreal {
		return 32
	}
	return 64
}

func (r *Real) String() string { return string(r.node.Keyword()) }
func (*Real) isType()          {}

// String is the view of the string type.
type String struct{ node *concrete.StringType }

func (s *String) Node() concrete.DataType { return s.node }
func (*String) String() string            { return "string" }
func (*String) isType()                   {}

// Chandle is the view of the chandle type.
type Chandle struct{ node *concrete.ChandleType }

func (c *Chandle) Node() concrete.DataType { return c.node }
func (*Chandle) String() string            { return "chandle" }
func (*Chandle) isType()                   {}

// Event is the view of the event type.
type Event struct{ node *concrete.EventType }

func (e *Event) Node() concrete.DataType { return e.node }
func (*Event) String() string            { return "event" }
func (*Event) isType()                   {}

// Void is the view of the void type.
type Void struct{ node *concrete.VoidType }

func (v *Void) Node() concrete.DataType { return v.node }
func (*Void) String() string            { return "void" }
func (*Void) isType()                   {}

// EnumMember is one enumerator with its value.
type EnumMember struct {
	Name  string
	Value Bound
}

// Enum is the view of an enumeration. Members are numbered the SystemVerilog
// way: the first implicit value is 0, each following implicit value is the
// previous one plus one, and an explicit value restarts the sequence. Once a
// value is Indeterminate the implicit values after it are too.
type Enum struct {
	node    *concrete.EnumType
	base    *Integral
	members []EnumMember
}

// NewEnum derives the view of an enumeration.
func NewEnum(et *concrete.EnumType) *Enum {
	base := et.BaseType()
	if base == nil {
		base = concrete.NewIntegerAtomType(concrete.Int, concrete.Unspecified)
	}
	e := &Enum{node: et, base: NewIntegral(base)}

	next := BoundOf(0)
	for _, m := range et.Members() {
		value := next
		if m.Value() != nil {
			value = Eval(m.Value())
		}
		e.members = append(e.members, EnumMember{Name: m.Identifier().Text(), Value: value})
		next = evalBinary(concrete.OpAdd, value, BoundOf(1))
	}
	return e
}

func (e *Enum) Concrete() *concrete.EnumType { return e.node }
func (e *Enum) Node() concrete.DataType      { return e.node }

// Base returns the base type; `int` when the enum does not name one.
func (e *Enum) Base() *Integral { return e.base }

// Members returns the enumerators in declaration order.
func (e *Enum) Members() []EnumMember { return append([]EnumMember(nil), e.members...) }

// Member looks up an enumerator by name.
func (e *Enum) Member(name string) (EnumMember, bool) {
	for _, m := range e.members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

func (e *Enum) String() string {
	names := make([]string, len(e.members))
	for i, m := range e.members {
		names[i] = m.Name
	}
	return fmt.Sprintf("enum %s {%s}", e.base, strings.Join(names, ", "))
}

func (*Enum) isType() {}

// Typedef is an unresolved reference to a user-defined type.
type Typedef struct {
	node   *concrete.PsTypeIdentifier
	packed []Range
}

// NewTypedef derives the view of a type reference.
func NewTypedef(t *concrete.PsTypeIdentifier) *Typedef {
	td := &Typedef{node: t}
	for _, d := range t.PackedDimensions() {
		td.packed = append(td.packed, Range{MSB: Eval(d.MSB()), LSB: Eval(d.LSB())})
	}
	return td
}

func (t *Typedef) Concrete() *concrete.PsTypeIdentifier { return t.node }
func (t *Typedef) Node() concrete.DataType              { return t.node }

// Name returns the referenced type name.
func (t *Typedef) Name() string { return t.node.Identifier().Text() }

// Package returns the package qualifier, or "".
func (t *Typedef) Package() string {
	if p := t.node.Package(); p != nil {
		return p.Text()
	}
	return ""
}

// Packed returns the folded packed dimensions applied to the reference.
func (t *Typedef) Packed() []Range { return append([]Range(nil), t.packed...) }

func (t *Typedef) String() string {
	out := t.Name()
	if p := t.Package(); p != "" {
		out = p + "::" + out
	}
	for _, r := range t.packed {
		out += r.String()
	}
	return out
}

func (*Typedef) isType() {}
