package concrete

// SourceText is the root of a compilation unit (source_text).
type SourceText struct {
	descriptions []Description
}

// NewSourceText creates a compilation unit from its descriptions.
func NewSourceText(descriptions ...Description) *SourceText {
	return &SourceText{descriptions: clone(descriptions)}
}

// Descriptions returns the top-level items in source order.
func (s *SourceText) Descriptions() []Description { return clone(s.descriptions) }

func (s *SourceText) Kind() Kind { return KindSourceText }

func (s *SourceText) Fields() []Field {
	return []Field{listField("descriptions", nodes(s.descriptions))}
}

func (*SourceText) sealed() {}

// ModuleDeclaration is an ANSI-style module_declaration.
type ModuleDeclaration struct {
	keyword    ModuleKeyword
	identifier *Identifier
	parameters *ParameterPortList
	ports      *PortList
	items      []ModuleItem
	endLabel   *Identifier
}

// NewModuleDeclaration creates a module declaration. parameters, ports and
// endLabel may be nil.
func NewModuleDeclaration(keyword ModuleKeyword, identifier *Identifier, parameters *ParameterPortList, ports *PortList, items []ModuleItem, endLabel *Identifier) *ModuleDeclaration {
	return &ModuleDeclaration{
		keyword:    keyword,
		identifier: identifier,
		parameters: parameters,
		ports:      ports,
		items:      clone(items),
		endLabel:   endLabel,
	}
}

func (m *ModuleDeclaration) Keyword() ModuleKeyword         { return m.keyword }
func (m *ModuleDeclaration) Identifier() *Identifier        { return m.identifier }
func (m *ModuleDeclaration) Parameters() *ParameterPortList { return m.parameters }
func (m *ModuleDeclaration) Ports() *PortList               { return m.ports }
func (m *ModuleDeclaration) Items() []ModuleItem            { return clone(m.items) }
func (m *ModuleDeclaration) EndLabel() *Identifier          { return m.endLabel }
func (m *ModuleDeclaration) Kind() Kind                     { return KindModuleDeclaration }
func (*ModuleDeclaration) sealed()                          {}
func (*ModuleDeclaration) isDescription()                   {}

func (m *ModuleDeclaration) Fields() []Field {
	return []Field{
		textField("keyword", string(m.keyword)),
		nodeField("identifier", orNil(m.identifier)),
		optionalNodeField("parameters", orNil(m.parameters)),
		optionalNodeField("ports", orNil(m.ports)),
		listField("items", nodes(m.items)),
		optionalNodeField("end_label", orNil(m.endLabel)),
	}
}

// PackageDeclaration is a package_declaration.
type PackageDeclaration struct {
	identifier *Identifier
	items      []PackageItem
	endLabel   *Identifier
}

// NewPackageDeclaration creates a package declaration; endLabel may be nil.
func NewPackageDeclaration(identifier *Identifier, items []PackageItem, endLabel *Identifier) *PackageDeclaration {
	return &PackageDeclaration{identifier: identifier, items: clone(items), endLabel: endLabel}
}

func (p *PackageDeclaration) Identifier() *Identifier { return p.identifier }
func (p *PackageDeclaration) Items() []PackageItem    { return clone(p.items) }
func (p *PackageDeclaration) EndLabel() *Identifier   { return p.endLabel }
func (p *PackageDeclaration) Kind() Kind              { return KindPackageDeclaration }
func (*PackageDeclaration) sealed()                   {}
func (*PackageDeclaration) isDescription()            {}

func (p *PackageDeclaration) Fields() []Field {
	return []Field{
		nodeField("identifier", orNil(p.identifier)),
		listField("items", nodes(p.items)),
		optionalNodeField("end_label", orNil(p.endLabel)),
	}
}

// ParameterPortList is the `#( ... )` parameter_port_list of a module.
type ParameterPortList struct {
	declarations []*ParameterDeclaration
}

// NewParameterPortList creates a parameter port list.
func NewParameterPortList(declarations ...*ParameterDeclaration) *ParameterPortList {
	return &ParameterPortList{declarations: clone(declarations)}
}

func (p *ParameterPortList) Declarations() []*ParameterDeclaration { return clone(p.declarations) }
func (p *ParameterPortList) Kind() Kind                            { return KindParameterPortList }
func (*ParameterPortList) sealed()                                 {}

func (p *ParameterPortList) Fields() []Field {
	return []Field{listField("declarations", nodes(p.declarations))}
}

// PortList is the parenthesised list of ANSI port declarations of a module
// header. An empty list represents `()`.
type PortList struct {
	ports []*AnsiPortDeclaration
}

// NewPortList creates a port list.
func NewPortList(ports ...*AnsiPortDeclaration) *PortList {
	return &PortList{ports: clone(ports)}
}

func (p *PortList) Ports() []*AnsiPortDeclaration { return clone(p.ports) }
func (p *PortList) Kind() Kind                    { return KindPortList }
func (*PortList) sealed()                         {}

func (p *PortList) Fields() []Field {
	return []Field{listField("ports", nodes(p.ports))}
}

// AnsiPortDeclaration is an ansi_port_declaration with an explicit
// direction. A nil data type means the implicit type (a 1-bit logic net).
type AnsiPortDeclaration struct {
	direction          PortDirection
	dataType           DataType
	identifier         *Identifier
	unpackedDimensions []*UnpackedDimension
}

// NewAnsiPortDeclaration creates a port declaration; dataType may be nil.
func NewAnsiPortDeclaration(direction PortDirection, dataType DataType, identifier *Identifier, unpacked ...*UnpackedDimension) *AnsiPortDeclaration {
	return &AnsiPortDeclaration{
		direction:          direction,
		dataType:           dataType,
		identifier:         identifier,
		unpackedDimensions: clone(unpacked),
	}
}

func (a *AnsiPortDeclaration) Direction() PortDirection { return a.direction }
func (a *AnsiPortDeclaration) DataType() DataType       { return a.dataType }
func (a *AnsiPortDeclaration) Identifier() *Identifier  { return a.identifier }
func (a *AnsiPortDeclaration) UnpackedDimensions() []*UnpackedDimension {
	return clone(a.unpackedDimensions)
}
func (a *AnsiPortDeclaration) Kind() Kind { return KindAnsiPortDeclaration }
func (*AnsiPortDeclaration) sealed()      {}

func (a *AnsiPortDeclaration) Fields() []Field {
	return []Field{
		textField("direction", string(a.direction)),
		optionalNodeField("data_type", a.dataType),
		nodeField("identifier", orNil(a.identifier)),
		listField("unpacked_dimensions", nodes(a.unpackedDimensions)),
	}
}
