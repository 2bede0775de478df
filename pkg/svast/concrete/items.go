package concrete

// DataDeclaration is a variable data_declaration, optionally `const`.
type DataDeclaration struct {
	isConst   bool
	dataType  DataType
	variables []*VariableDeclAssignment
}

// NewDataDeclaration creates a data declaration.
func NewDataDeclaration(isConst bool, dataType DataType, variables ...*VariableDeclAssignment) *DataDeclaration {
	return &DataDeclaration{isConst: isConst, dataType: dataType, variables: clone(variables)}
}

func (d *DataDeclaration) IsConst() bool                        { return d.isConst }
func (d *DataDeclaration) DataType() DataType                   { return d.dataType }
func (d *DataDeclaration) Variables() []*VariableDeclAssignment { return clone(d.variables) }
func (d *DataDeclaration) Kind() Kind                           { return KindDataDeclaration }
func (*DataDeclaration) sealed()                                {}
func (*DataDeclaration) isModuleItem()                          {}
func (*DataDeclaration) isPackageItem()                         {}

func (d *DataDeclaration) Fields() []Field {
	constText := ""
	if d.isConst {
		constText = ConstKeyword
	}
	return []Field{
		optionalTextField("const", constText),
		nodeField("data_type", d.dataType),
		listField("variables", nodes(d.variables)),
	}
}

// VariableDeclAssignment declares one variable with optional unpacked
// dimensions and initializer.
type VariableDeclAssignment struct {
	identifier         *Identifier
	unpackedDimensions []*UnpackedDimension
	initializer        Expression
}

// NewVariableDeclAssignment creates a variable declarator; initializer may
// be nil.
func NewVariableDeclAssignment(identifier *Identifier, unpacked []*UnpackedDimension, initializer Expression) *VariableDeclAssignment {
	return &VariableDeclAssignment{
		identifier:         identifier,
		unpackedDimensions: clone(unpacked),
		initializer:        initializer,
	}
}

func (v *VariableDeclAssignment) Identifier() *Identifier { return v.identifier }
func (v *VariableDeclAssignment) UnpackedDimensions() []*UnpackedDimension {
	return clone(v.unpackedDimensions)
}
func (v *VariableDeclAssignment) Initializer() Expression { return v.initializer }
func (v *VariableDeclAssignment) Kind() Kind              { return KindVariableDeclAssignment }
func (*VariableDeclAssignment) sealed()                   {}

func (v *VariableDeclAssignment) Fields() []Field {
	return []Field{
		nodeField("identifier", orNil(v.identifier)),
		listField("unpacked_dimensions", nodes(v.unpackedDimensions)),
		optionalNodeField("initializer", v.initializer),
	}
}

// ParameterDeclaration is a `parameter` declaration. A nil data type means
// the type is inferred from the assigned value.
type ParameterDeclaration struct {
	dataType    DataType
	assignments []*ParamAssignment
}

// NewParameterDeclaration creates a parameter declaration.
func NewParameterDeclaration(dataType DataType, assignments ...*ParamAssignment) *ParameterDeclaration {
	return &ParameterDeclaration{dataType: dataType, assignments: clone(assignments)}
}

func (p *ParameterDeclaration) DataType() DataType              { return p.dataType }
func (p *ParameterDeclaration) Assignments() []*ParamAssignment { return clone(p.assignments) }
func (p *ParameterDeclaration) Kind() Kind                      { return KindParameterDeclaration }
func (*ParameterDeclaration) sealed()                           {}
func (*ParameterDeclaration) isModuleItem()                     {}
func (*ParameterDeclaration) isPackageItem()                    {}

func (p *ParameterDeclaration) Fields() []Field {
	return []Field{
		optionalNodeField("data_type", p.dataType),
		listField("assignments", nodes(p.assignments)),
	}
}

// LocalParameterDeclaration is a `localparam` declaration.
type LocalParameterDeclaration struct {
	dataType    DataType
	assignments []*ParamAssignment
}

// NewLocalParameterDeclaration creates a localparam declaration.
func NewLocalParameterDeclaration(dataType DataType, assignments ...*ParamAssignment) *LocalParameterDeclaration {
	return &LocalParameterDeclaration{dataType: dataType, assignments: clone(assignments)}
}

func (p *LocalParameterDeclaration) DataType() DataType              { return p.dataType }
func (p *LocalParameterDeclaration) Assignments() []*ParamAssignment { return clone(p.assignments) }
func (p *LocalParameterDeclaration) Kind() Kind                      { return KindLocalParameterDeclaration }
func (*LocalParameterDeclaration) sealed()                           {}
func (*LocalParameterDeclaration) isModuleItem()                     {}
func (*LocalParameterDeclaration) isPackageItem()                    {}

func (p *LocalParameterDeclaration) Fields() []Field {
	return []Field{
		optionalNodeField("data_type", p.dataType),
		listField("assignments", nodes(p.assignments)),
	}
}

// ParamAssignment binds a parameter identifier to an optional value.
type ParamAssignment struct {
	identifier         *Identifier
	unpackedDimensions []*UnpackedDimension
	value              Expression
}

// NewParamAssignment creates a param_assignment; value may be nil.
func NewParamAssignment(identifier *Identifier, unpacked []*UnpackedDimension, value Expression) *ParamAssignment {
	return &ParamAssignment{identifier: identifier, unpackedDimensions: clone(unpacked), value: value}
}

func (p *ParamAssignment) Identifier() *Identifier { return p.identifier }
func (p *ParamAssignment) UnpackedDimensions() []*UnpackedDimension {
	return clone(p.unpackedDimensions)
}
func (p *ParamAssignment) Value() Expression { return p.value }
func (p *ParamAssignment) Kind() Kind        { return KindParamAssignment }
func (*ParamAssignment) sealed()             {}

func (p *ParamAssignment) Fields() []Field {
	return []Field{
		nodeField("identifier", orNil(p.identifier)),
		listField("unpacked_dimensions", nodes(p.unpackedDimensions)),
		optionalNodeField("value", p.value),
	}
}

// TypeDeclaration is a `typedef` of a data type.
type TypeDeclaration struct {
	dataType   DataType
	identifier *Identifier
}

// NewTypeDeclaration creates a type declaration.
func NewTypeDeclaration(dataType DataType, identifier *Identifier) *TypeDeclaration {
	return &TypeDeclaration{dataType: dataType, identifier: identifier}
}

func (t *TypeDeclaration) DataType() DataType      { return t.dataType }
func (t *TypeDeclaration) Identifier() *Identifier { return t.identifier }
func (t *TypeDeclaration) Kind() Kind              { return KindTypeDeclaration }
func (*TypeDeclaration) sealed()                   {}
func (*TypeDeclaration) isModuleItem()             {}
func (*TypeDeclaration) isPackageItem()            {}

func (t *TypeDeclaration) Fields() []Field {
	return []Field{
		nodeField("data_type", t.dataType),
		nodeField("identifier", orNil(t.identifier)),
	}
}

// ContinuousAssign is an `assign` statement with one or more net
// assignments.
type ContinuousAssign struct {
	assignments []*NetAssignment
}

// NewContinuousAssign creates a continuous assignment.
func NewContinuousAssign(assignments ...*NetAssignment) *ContinuousAssign {
	return &ContinuousAssign{assignments: clone(assignments)}
}

func (c *ContinuousAssign) Assignments() []*NetAssignment { return clone(c.assignments) }
func (c *ContinuousAssign) Kind() Kind                    { return KindContinuousAssign }
func (*ContinuousAssign) sealed()                         {}
func (*ContinuousAssign) isModuleItem()                   {}

func (c *ContinuousAssign) Fields() []Field {
	return []Field{listField("assignments", nodes(c.assignments))}
}

// NetAssignment is `lvalue = expression`.
type NetAssignment struct {
	lvalue     *Identifier
	expression Expression
}

// NewNetAssignment creates a net assignment.
func NewNetAssignment(lvalue *Identifier, expression Expression) *NetAssignment {
	return &NetAssignment{lvalue: lvalue, expression: expression}
}

func (n *NetAssignment) LValue() *Identifier    { return n.lvalue }
func (n *NetAssignment) Expression() Expression { return n.expression }
func (n *NetAssignment) Kind() Kind             { return KindNetAssignment }
func (*NetAssignment) sealed()                  {}

func (n *NetAssignment) Fields() []Field {
	return []Field{
		nodeField("lvalue", orNil(n.lvalue)),
		nodeField("expression", n.expression),
	}
}
