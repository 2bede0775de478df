package concrete

// IntegerType is an integer_atom_type or integer_vector_type with its
// optional signing and, for vector types, packed dimensions.
type IntegerType struct {
	keyword          IntegerKeyword
	signing          Signing
	packedDimensions []*PackedDimension
}

// NewIntegerAtomType creates an atom type such as `int` or `byte unsigned`.
// Atom types never carry packed dimensions.
func NewIntegerAtomType(keyword AtomKeyword, signing Signing) *IntegerType {
	return &IntegerType{keyword: IntegerKeyword(keyword), signing: signing, packedDimensions: []*PackedDimension{}}
}

// NewIntegerVectorType creates a vector type such as `logic signed [7:0]`.
func NewIntegerVectorType(keyword VectorKeyword, signing Signing, packed ...*PackedDimension) *IntegerType {
	return &IntegerType{keyword: IntegerKeyword(keyword), signing: signing, packedDimensions: clone(packed)}
}

func (t *IntegerType) Keyword() IntegerKeyword { return t.keyword }
func (t *IntegerType) Signing() Signing        { return t.signing }
func (t *IntegerType) PackedDimensions() []*PackedDimension {
	return clone(t.packedDimensions)
}

// IsAtom reports whether the keyword is an integer_atom_type.
func (t *IntegerType) IsAtom() bool { return IsAtomKeyword(t.keyword) }

func (t *IntegerType) Kind() Kind { return KindIntegerType }
func (*IntegerType) sealed()      {}
func (*IntegerType) isDataType()  {}

func (t *IntegerType) Fields() []Field {
	return []Field{
		textField("keyword", string(t.keyword)),
		optionalTextField("signing", string(t.signing)),
		listField("packed_dimensions", nodes(t.packedDimensions)),
	}
}

// NonIntegerType is `real`, `shortreal` or `realtime`.
type NonIntegerType struct {
	keyword NonIntegerKeyword
}

// NewNonIntegerType creates a floating-point type.
func NewNonIntegerType(keyword NonIntegerKeyword) *NonIntegerType {
	return &NonIntegerType{keyword: keyword}
}

func (t *NonIntegerType) Keyword() NonIntegerKeyword { return t.keyword }
func (t *NonIntegerType) Kind() Kind                 { return KindNonIntegerType }
func (*NonIntegerType) sealed()                      {}
func (*NonIntegerType) isDataType()                  {}

func (t *NonIntegerType) Fields() []Field {
	return []Field{textField("keyword", string(t.keyword))}
}

// StringType is the `string` data type.
type StringType struct {
	_ byte // distinct allocations keep distinct identities
}

func NewStringType() *StringType    { return &StringType{} }
func (*StringType) Kind() Kind      { return KindStringType }
func (*StringType) Fields() []Field { return []Field{} }
func (*StringType) sealed()         {}
func (*StringType) isDataType()     {}

// ChandleType is the `chandle` data type.
type ChandleType struct {
	_ byte // distinct allocations keep distinct identities
}

func NewChandleType() *ChandleType   { return &ChandleType{} }
func (*ChandleType) Kind() Kind      { return KindChandleType }
func (*ChandleType) Fields() []Field { return []Field{} }
func (*ChandleType) sealed()         {}
func (*ChandleType) isDataType()     {}

// EventType is the `event` data type.
type EventType struct {
	_ byte // distinct allocations keep distinct identities
}

func NewEventType() *EventType     { return &EventType{} }
func (*EventType) Kind() Kind      { return KindEventType }
func (*EventType) Fields() []Field { return []Field{} }
func (*EventType) sealed()         {}
func (*EventType) isDataType()     {}

// VoidType is the `void` data type.
type VoidType struct {
	_ byte // distinct allocations keep distinct identities
}

func NewVoidType() *VoidType      { return &VoidType{} }
func (*VoidType) Kind() Kind      { return KindVoidType }
func (*VoidType) Fields() []Field { return []Field{} }
func (*VoidType) sealed()         {}
func (*VoidType) isDataType()     {}

// EnumType is an `enum` with an optional integer base type. A nil base
// means the default `int`.
type EnumType struct {
	baseType *IntegerType
	members  []*EnumNameDeclaration
}

// NewEnumType creates an enumeration; baseType may be nil.
func NewEnumType(baseType *IntegerType, members ...*EnumNameDeclaration) *EnumType {
	return &EnumType{baseType: baseType, members: clone(members)}
}

func (t *EnumType) BaseType() *IntegerType          { return t.baseType }
func (t *EnumType) Members() []*EnumNameDeclaration { return clone(t.members) }
func (t *EnumType) Kind() Kind                      { return KindEnumType }
func (*EnumType) sealed()                           {}
func (*EnumType) isDataType()                       {}

func (t *EnumType) Fields() []Field {
	return []Field{
		optionalNodeField("base_type", orNil(t.baseType)),
		listField("members", nodes(t.members)),
	}
}

// EnumNameDeclaration is one enum member with an optional explicit value.
type EnumNameDeclaration struct {
	identifier *Identifier
	value      Expression
}

// NewEnumNameDeclaration creates an enum member; value may be nil.
func NewEnumNameDeclaration(identifier *Identifier, value Expression) *EnumNameDeclaration {
	return &EnumNameDeclaration{identifier: identifier, value: value}
}

func (e *EnumNameDeclaration) Identifier() *Identifier { return e.identifier }
func (e *EnumNameDeclaration) Value() Expression       { return e.value }
func (e *EnumNameDeclaration) Kind() Kind              { return KindEnumNameDeclaration }
func (*EnumNameDeclaration) sealed()                   {}

func (e *EnumNameDeclaration) Fields() []Field {
	return []Field{
		nodeField("identifier", orNil(e.identifier)),
		optionalNodeField("value", e.value),
	}
}

// PsTypeIdentifier names a user-defined type, optionally qualified by a
// package scope (`pkg::word_t`).
type PsTypeIdentifier struct {
	pkg              *Identifier
	identifier       *Identifier
	packedDimensions []*PackedDimension
}

// NewPsTypeIdentifier creates a type reference; pkg may be nil.
func NewPsTypeIdentifier(pkg, identifier *Identifier, packed ...*PackedDimension) *PsTypeIdentifier {
	return &PsTypeIdentifier{pkg: pkg, identifier: identifier, packedDimensions: clone(packed)}
}

func (t *PsTypeIdentifier) Package() *Identifier    { return t.pkg }
func (t *PsTypeIdentifier) Identifier() *Identifier { return t.identifier }
func (t *PsTypeIdentifier) PackedDimensions() []*PackedDimension {
	return clone(t.packedDimensions)
}
func (t *PsTypeIdentifier) Kind() Kind { return KindPsTypeIdentifier }
func (*PsTypeIdentifier) sealed()      {}
func (*PsTypeIdentifier) isDataType()  {}

func (t *PsTypeIdentifier) Fields() []Field {
	return []Field{
		optionalNodeField("package", orNil(t.pkg)),
		nodeField("identifier", orNil(t.identifier)),
		listField("packed_dimensions", nodes(t.packedDimensions)),
	}
}

// PackedDimension is `[msb:lsb]` on a vector or typedef reference.
type PackedDimension struct {
	msb Expression
	lsb Expression
}

// NewPackedDimension creates a packed range.
func NewPackedDimension(msb, lsb Expression) *PackedDimension {
	return &PackedDimension{msb: msb, lsb: lsb}
}

func (d *PackedDimension) MSB() Expression { return d.msb }
func (d *PackedDimension) LSB() Expression { return d.lsb }
func (d *PackedDimension) Kind() Kind      { return KindPackedDimension }
func (*PackedDimension) sealed()           {}

func (d *PackedDimension) Fields() []Field {
	return []Field{
		nodeField("msb", d.msb),
		nodeField("lsb", d.lsb),
	}
}

// UnpackedDimension is `[msb:lsb]`, or `[size]` when lsb is nil.
type UnpackedDimension struct {
	msb Expression
	lsb Expression
}

// NewUnpackedDimension creates an unpacked range; lsb may be nil.
func NewUnpackedDimension(msb, lsb Expression) *UnpackedDimension {
	return &UnpackedDimension{msb: msb, lsb: lsb}
}

func (d *UnpackedDimension) MSB() Expression { return d.msb }
func (d *UnpackedDimension) LSB() Expression { return d.lsb }
func (d *UnpackedDimension) Kind() Kind      { return KindUnpackedDimension }
func (*UnpackedDimension) sealed()           {}

func (d *UnpackedDimension) Fields() []Field {
	return []Field{
		nodeField("msb", d.msb),
		optionalNodeField("lsb", d.lsb),
	}
}
