package concrete

import (
	"fmt"
	"slices"
)

// Category is the set of variants admissible at a node or list field.
type Category struct {
	name   string
	kinds  []Kind
	admits func(Node) bool
}

// Name returns the grammar name of the category (e.g. "DataType").
func (c Category) Name() string { return c.name }

// Kinds lists the admissible variant tags.
func (c Category) Kinds() []Kind { return slices.Clone(c.kinds) }

// Admits reports whether n may occupy a field of this category.
func (c Category) Admits(n Node) bool { return n != nil && c.admits(n) }

// AdmitsKind reports whether a node tagged k may occupy a field of this
// category.
func (c Category) AdmitsKind(k Kind) bool { return slices.Contains(c.kinds, k) }

func only[T Node](k Kind) Category {
	return Category{
		name:   string(k),
		kinds:  []Kind{k},
		admits: func(n Node) bool { _, ok := n.(T); return ok },
	}
}

func union[T Node](name string, kinds ...Kind) Category {
	return Category{
		name:   name,
		kinds:  kinds,
		admits: func(n Node) bool { _, ok := n.(T); return ok },
	}
}

var (
	descriptionCategory = union[Description]("Description",
		KindModuleDeclaration, KindPackageDeclaration)
	moduleItemCategory = union[ModuleItem]("ModuleItem",
		KindDataDeclaration, KindParameterDeclaration, KindLocalParameterDeclaration,
		KindTypeDeclaration, KindContinuousAssign)
	packageItemCategory = union[PackageItem]("PackageItem",
		KindDataDeclaration, KindParameterDeclaration, KindLocalParameterDeclaration,
		KindTypeDeclaration)
	dataTypeCategory = union[DataType]("DataType",
		KindIntegerType, KindNonIntegerType, KindStringType, KindChandleType,
		KindEventType, KindVoidType, KindEnumType, KindPsTypeIdentifier)
	expressionCategory = union[Expression]("Expression",
		KindIdentifier, KindIntegralNumber, KindUnaryExpression, KindBinaryExpression)

	identifierCategory        = only[*Identifier](KindIdentifier)
	parameterPortListCategory = only[*ParameterPortList](KindParameterPortList)
	portListCategory          = only[*PortList](KindPortList)
	parameterDeclCategory     = only[*ParameterDeclaration](KindParameterDeclaration)
	ansiPortCategory          = only[*AnsiPortDeclaration](KindAnsiPortDeclaration)
	variableCategory          = only[*VariableDeclAssignment](KindVariableDeclAssignment)
	paramAssignmentCategory   = only[*ParamAssignment](KindParamAssignment)
	netAssignmentCategory     = only[*NetAssignment](KindNetAssignment)
	integerTypeCategory       = only[*IntegerType](KindIntegerType)
	enumNameCategory          = only[*EnumNameDeclaration](KindEnumNameDeclaration)
	packedCategory            = only[*PackedDimension](KindPackedDimension)
	unpackedCategory          = only[*UnpackedDimension](KindUnpackedDimension)
)

// FieldSpec describes one field of a production.
type FieldSpec struct {
	Name string
	Kind FieldKind

	// Accepts is the admissible variant set of node and list fields.
	Accepts Category

	// Lexical validates the text of text fields.
	Lexical func(string) error
}

// Production is the schema of one concrete variant.
type Production struct {
	Kind   Kind
	Fields []FieldSpec

	build func(f fieldValues) Node
	check func(f fieldValues) *BuildError
}

// Field returns the spec of the named field.
func (p Production) Field(name string) (FieldSpec, bool) {
	for _, fs := range p.Fields {
		if fs.Name == name {
			return fs, true
		}
	}
	return FieldSpec{}, false
}

// BuildError reports a field value that the production does not admit.
type BuildError struct {
	Kind  Kind
	Field string
	// Index is the offending list element, or -1.
	Index  int
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	loc := string(e.Kind)
	if e.Field != "" {
		loc += "." + e.Field
	}
	if e.Index >= 0 {
		loc += fmt.Sprintf("[%d]", e.Index)
	}
	return loc + ": " + e.Reason
}

func (e *BuildError) Unwrap() error { return e.Err }

func node(name string, accepts Category) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldNode, Accepts: accepts}
}

func optionalNode(name string, accepts Category) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldOptionalNode, Accepts: accepts}
}

func list(name string, accepts Category) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldList, Accepts: accepts}
}

func text(name string, lexical func(string) error) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldText, Lexical: lexical}
}

func optionalText(name string, lexical func(string) error) FieldSpec {
	return FieldSpec{Name: name, Kind: FieldOptionalText, Lexical: lexical}
}

// fieldValues holds validated field values in schema order.
type fieldValues []Field

func (f fieldValues) text(i int) string { return f[i].Text }
func (f fieldValues) list(i int) []Node { return f[i].List }
func (f fieldValues) node(i int) Node   { return f[i].Node }

// as converts a validated node to its field type, keeping absence as the
// zero value.
func as[T Node](n Node) T {
	if n == nil {
		var zero T
		return zero
	}
	return n.(T)
}

var productions = []Production{
	{
		Kind:   KindSourceText,
		Fields: []FieldSpec{list("descriptions", descriptionCategory)},
		build: func(f fieldValues) Node {
			return NewSourceText(cast[Description](f.list(0))...)
		},
	},
	{
		Kind: KindModuleDeclaration,
		Fields: []FieldSpec{
			text("keyword", oneOf("module keyword", moduleKeywords)),
			node("identifier", identifierCategory),
			optionalNode("parameters", parameterPortListCategory),
			optionalNode("ports", portListCategory),
			list("items", moduleItemCategory),
			optionalNode("end_label", identifierCategory),
		},
		build: func(f fieldValues) Node {
			return NewModuleDeclaration(ModuleKeyword(f.text(0)), as[*Identifier](f.node(1)),
				as[*ParameterPortList](f.node(2)), as[*PortList](f.node(3)),
				cast[ModuleItem](f.list(4)), as[*Identifier](f.node(5)))
		},
	},
	{
		Kind: KindPackageDeclaration,
		Fields: []FieldSpec{
			node("identifier", identifierCategory),
			list("items", packageItemCategory),
			optionalNode("end_label", identifierCategory),
		},
		build: func(f fieldValues) Node {
			return NewPackageDeclaration(as[*Identifier](f.node(0)), cast[PackageItem](f.list(1)), as[*Identifier](f.node(2)))
		},
	},
	{
		Kind:   KindParameterPortList,
		Fields: []FieldSpec{list("declarations", parameterDeclCategory)},
		build: func(f fieldValues) Node {
			return NewParameterPortList(cast[*ParameterDeclaration](f.list(0))...)
		},
	},
	{
		Kind:   KindPortList,
		Fields: []FieldSpec{list("ports", ansiPortCategory)},
		build: func(f fieldValues) Node {
			return NewPortList(cast[*AnsiPortDeclaration](f.list(0))...)
		},
	},
	{
		Kind: KindAnsiPortDeclaration,
		Fields: []FieldSpec{
			text("direction", oneOf("port direction", portDirections)),
			optionalNode("data_type", dataTypeCategory),
			node("identifier", identifierCategory),
			list("unpacked_dimensions", unpackedCategory),
		},
		build: func(f fieldValues) Node {
			return NewAnsiPortDeclaration(PortDirection(f.text(0)), as[DataType](f.node(1)),
				as[*Identifier](f.node(2)), cast[*UnpackedDimension](f.list(3))...)
		},
	},
	{
		Kind: KindDataDeclaration,
		Fields: []FieldSpec{
			optionalText("const", oneOf("const qualifier", constKeywords)),
			node("data_type", dataTypeCategory),
			list("variables", variableCategory),
		},
		build: func(f fieldValues) Node {
			return NewDataDeclaration(f.text(0) == ConstKeyword, as[DataType](f.node(1)),
				cast[*VariableDeclAssignment](f.list(2))...)
		},
	},
	{
		Kind: KindVariableDeclAssignment,
		Fields: []FieldSpec{
			node("identifier", identifierCategory),
			list("unpacked_dimensions", unpackedCategory),
			optionalNode("initializer", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewVariableDeclAssignment(as[*Identifier](f.node(0)),
				cast[*UnpackedDimension](f.list(1)), as[Expression](f.node(2)))
		},
	},
	{
		Kind: KindParameterDeclaration,
		Fields: []FieldSpec{
			optionalNode("data_type", dataTypeCategory),
			list("assignments", paramAssignmentCategory),
		},
		build: func(f fieldValues) Node {
			return NewParameterDeclaration(as[DataType](f.node(0)), cast[*ParamAssignment](f.list(1))...)
		},
	},
	{
		Kind: KindLocalParameterDeclaration,
		Fields: []FieldSpec{
			optionalNode("data_type", dataTypeCategory),
			list("assignments", paramAssignmentCategory),
		},
		build: func(f fieldValues) Node {
			return NewLocalParameterDeclaration(as[DataType](f.node(0)), cast[*ParamAssignment](f.list(1))...)
		},
	},
	{
		Kind: KindParamAssignment,
		Fields: []FieldSpec{
			node("identifier", identifierCategory),
			list("unpacked_dimensions", unpackedCategory),
			optionalNode("value", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewParamAssignment(as[*Identifier](f.node(0)),
				cast[*UnpackedDimension](f.list(1)), as[Expression](f.node(2)))
		},
	},
	{
		Kind: KindTypeDeclaration,
		Fields: []FieldSpec{
			node("data_type", dataTypeCategory),
			node("identifier", identifierCategory),
		},
		build: func(f fieldValues) Node {
			return NewTypeDeclaration(as[DataType](f.node(0)), as[*Identifier](f.node(1)))
		},
	},
	{
		Kind:   KindContinuousAssign,
		Fields: []FieldSpec{list("assignments", netAssignmentCategory)},
		build: func(f fieldValues) Node {
			return NewContinuousAssign(cast[*NetAssignment](f.list(0))...)
		},
	},
	{
		Kind: KindNetAssignment,
		Fields: []FieldSpec{
			node("lvalue", identifierCategory),
			node("expression", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewNetAssignment(as[*Identifier](f.node(0)), as[Expression](f.node(1)))
		},
	},
	{
		Kind: KindIntegerType,
		Fields: []FieldSpec{
			text("keyword", oneOf("integer type keyword", integerKeywords)),
			optionalText("signing", oneOf("signing", signings)),
			list("packed_dimensions", packedCategory),
		},
		check: func(f fieldValues) *BuildError {
			if IsAtomKeyword(IntegerKeyword(f.text(0))) && len(f.list(2)) > 0 {
				return &BuildError{
					Kind:   KindIntegerType,
					Field:  "packed_dimensions",
					Index:  -1,
					Reason: fmt.Sprintf("atom type %q does not take packed dimensions", f.text(0)),
				}
			}
			return nil
		},
		build: func(f fieldValues) Node {
			return &IntegerType{
				keyword:          IntegerKeyword(f.text(0)),
				signing:          Signing(f.text(1)),
				packedDimensions: cast[*PackedDimension](f.list(2)),
			}
		},
	},
	{
		Kind:   KindNonIntegerType,
		Fields: []FieldSpec{text("keyword", oneOf("non-integer type keyword", nonIntegerKeywords))},
		build: func(f fieldValues) Node {
			return NewNonIntegerType(NonIntegerKeyword(f.text(0)))
		},
	},
	{Kind: KindStringType, Fields: []FieldSpec{}, build: func(fieldValues) Node { return NewStringType() }},
	{Kind: KindChandleType, Fields: []FieldSpec{}, build: func(fieldValues) Node { return NewChandleType() }},
	{Kind: KindEventType, Fields: []FieldSpec{}, build: func(fieldValues) Node { return NewEventType() }},
	{Kind: KindVoidType, Fields: []FieldSpec{}, build: func(fieldValues) Node { return NewVoidType() }},
	{
		Kind: KindEnumType,
		Fields: []FieldSpec{
			optionalNode("base_type", integerTypeCategory),
			list("members", enumNameCategory),
		},
		build: func(f fieldValues) Node {
			return NewEnumType(as[*IntegerType](f.node(0)), cast[*EnumNameDeclaration](f.list(1))...)
		},
	},
	{
		Kind: KindEnumNameDeclaration,
		Fields: []FieldSpec{
			node("identifier", identifierCategory),
			optionalNode("value", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewEnumNameDeclaration(as[*Identifier](f.node(0)), as[Expression](f.node(1)))
		},
	},
	{
		Kind: KindPsTypeIdentifier,
		Fields: []FieldSpec{
			optionalNode("package", identifierCategory),
			node("identifier", identifierCategory),
			list("packed_dimensions", packedCategory),
		},
		build: func(f fieldValues) Node {
			return NewPsTypeIdentifier(as[*Identifier](f.node(0)), as[*Identifier](f.node(1)),
				cast[*PackedDimension](f.list(2))...)
		},
	},
	{
		Kind: KindPackedDimension,
		Fields: []FieldSpec{
			node("msb", expressionCategory),
			node("lsb", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewPackedDimension(as[Expression](f.node(0)), as[Expression](f.node(1)))
		},
	},
	{
		Kind: KindUnpackedDimension,
		Fields: []FieldSpec{
			node("msb", expressionCategory),
			optionalNode("lsb", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewUnpackedDimension(as[Expression](f.node(0)), as[Expression](f.node(1)))
		},
	},
	{
		Kind:   KindIdentifier,
		Fields: []FieldSpec{text("text", ValidateIdentifier)},
		build: func(f fieldValues) Node {
			return NewIdentifier(f.text(0))
		},
	},
	{
		Kind:   KindIntegralNumber,
		Fields: []FieldSpec{text("text", ValidateIntegralNumber)},
		build: func(f fieldValues) Node {
			return NewIntegralNumber(f.text(0))
		},
	},
	{
		Kind: KindUnaryExpression,
		Fields: []FieldSpec{
			text("operator", oneOf("unary operator", unaryOperators)),
			node("operand", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewUnaryExpression(UnaryOperator(f.text(0)), as[Expression](f.node(1)))
		},
	},
	{
		Kind: KindBinaryExpression,
		Fields: []FieldSpec{
			text("operator", oneOf("binary operator", binaryOperators)),
			node("left", expressionCategory),
			node("right", expressionCategory),
		},
		build: func(f fieldValues) Node {
			return NewBinaryExpression(BinaryOperator(f.text(0)), as[Expression](f.node(1)), as[Expression](f.node(2)))
		},
	},
}

var productionIndex = func() map[Kind]*Production {
	idx := make(map[Kind]*Production, len(productions))
	for i := range productions {
		idx[productions[i].Kind] = &productions[i]
	}
	return idx
}()

// Lookup returns the schema of the production tagged kind.
func Lookup(kind Kind) (Production, bool) {
	p, ok := productionIndex[kind]
	if !ok {
		return Production{}, false
	}
	out := *p
	out.Fields = slices.Clone(p.Fields)
	return out, true
}

// Kinds lists every production tag in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(productions))
	for i, p := range productions {
		out[i] = p.Kind
	}
	return out
}

// Rebuild constructs a node of the given kind from a field view, checking
// arity, admissible variants and lexical form. Fields are matched by name
// and may be given in any order; every schema field must be present, with
// absent optionals passed as zero-valued Fields (Present false).
func Rebuild(kind Kind, fields []Field) (Node, error) {
	p, ok := productionIndex[kind]
	if !ok {
		return nil, &BuildError{Kind: kind, Index: -1, Reason: "unknown production"}
	}

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, dup := byName[f.Name]; dup {
			return nil, &BuildError{Kind: kind, Field: f.Name, Index: -1, Reason: "duplicate field"}
		}
		if _, known := p.Field(f.Name); !known {
			return nil, &BuildError{Kind: kind, Field: f.Name, Index: -1, Reason: "unknown field"}
		}
		byName[f.Name] = f
	}

	values := make(fieldValues, len(p.Fields))
	for i, spec := range p.Fields {
		f, present := byName[spec.Name]
		if !present {
			return nil, &BuildError{Kind: kind, Field: spec.Name, Index: -1, Reason: "missing field"}
		}
		v, err := checkField(kind, spec, f)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	if p.check != nil {
		if err := p.check(values); err != nil {
			return nil, err
		}
	}
	return p.build(values), nil
}

func checkField(kind Kind, spec FieldSpec, f Field) (Field, error) {
	fail := func(index int, reason string, err error) (Field, error) {
		return Field{}, &BuildError{Kind: kind, Field: spec.Name, Index: index, Reason: reason, Err: err}
	}
	out := Field{Name: spec.Name, Kind: spec.Kind}

	switch spec.Kind {
	case FieldNode, FieldOptionalNode:
		if f.Node == nil {
			if spec.Kind == FieldNode {
				return fail(-1, "required node is absent", nil)
			}
			return out, nil
		}
		if !spec.Accepts.Admits(f.Node) {
			return fail(-1, fmt.Sprintf("%s is not a %s", f.Node.Kind(), spec.Accepts.Name()), nil)
		}
		out.Node, out.Present = f.Node, true

	case FieldList:
		for i, n := range f.List {
			if n == nil {
				return fail(i, "list element is absent", nil)
			}
			if !spec.Accepts.Admits(n) {
				return fail(i, fmt.Sprintf("%s is not a %s", n.Kind(), spec.Accepts.Name()), nil)
			}
		}
		out.List, out.Present = slices.Clone(f.List), true
		if out.List == nil {
			out.List = []Node{}
		}

	case FieldText, FieldOptionalText:
		if spec.Kind == FieldOptionalText && (!f.Present || f.Text == "") {
			return out, nil
		}
		if err := spec.Lexical(f.Text); err != nil {
			return fail(-1, err.Error(), err)
		}
		out.Text, out.Present = f.Text, true
	}
	return out, nil
}
