package concrete

// Identifier is a simple or escaped identifier. It appears both as a name
// inside declarations and as an expression primary.
type Identifier struct {
	text string
}

// NewIdentifier creates an identifier. The text is not validated here;
// Rebuild and the codec reject malformed identifiers.
func NewIdentifier(text string) *Identifier { return &Identifier{text: text} }

func (i *Identifier) Text() string   { return i.text }
func (i *Identifier) String() string { return i.text }
func (i *Identifier) Kind() Kind     { return KindIdentifier }
func (*Identifier) sealed()          {}
func (*Identifier) isExpression()    {}

func (i *Identifier) Fields() []Field {
	return []Field{textField("text", i.text)}
}

// IntegralNumber is an integral_number literal kept as source text.
type IntegralNumber struct {
	text string
}

// NewIntegralNumber creates a number literal from its lexeme.
func NewIntegralNumber(text string) *IntegralNumber { return &IntegralNumber{text: text} }

func (n *IntegralNumber) Text() string   { return n.text }
func (n *IntegralNumber) String() string { return n.text }
func (n *IntegralNumber) Kind() Kind     { return KindIntegralNumber }
func (*IntegralNumber) sealed()          {}
func (*IntegralNumber) isExpression()    {}

func (n *IntegralNumber) Fields() []Field {
	return []Field{textField("text", n.text)}
}

// UnaryExpression applies a unary operator to one operand.
type UnaryExpression struct {
	operator UnaryOperator
	operand  Expression
}

// NewUnaryExpression creates a unary expression.
func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{operator: operator, operand: operand}
}

func (u *UnaryExpression) Operator() UnaryOperator { return u.operator }
func (u *UnaryExpression) Operand() Expression     { return u.operand }
func (u *UnaryExpression) Kind() Kind              { return KindUnaryExpression }
func (*UnaryExpression) sealed()                   {}
func (*UnaryExpression) isExpression()             {}

func (u *UnaryExpression) Fields() []Field {
	return []Field{
		textField("operator", string(u.operator)),
		nodeField("operand", u.operand),
	}
}

// BinaryExpression applies a binary operator to two operands.
type BinaryExpression struct {
	operator BinaryOperator
	left     Expression
	right    Expression
}

// NewBinaryExpression creates a binary expression.
func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{operator: operator, left: left, right: right}
}

func (b *BinaryExpression) Operator() BinaryOperator { return b.operator }
func (b *BinaryExpression) Left() Expression         { return b.left }
func (b *BinaryExpression) Right() Expression        { return b.right }
func (b *BinaryExpression) Kind() Kind               { return KindBinaryExpression }
func (*BinaryExpression) sealed()                    {}
func (*BinaryExpression) isExpression()              {}

func (b *BinaryExpression) Fields() []Field {
	return []Field{
		textField("operator", string(b.operator)),
		nodeField("left", b.left),
		nodeField("right", b.right),
	}
}
