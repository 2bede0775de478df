package concrete

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ModuleKeyword selects between `module` and `macromodule`.
type ModuleKeyword string

const (
	Module      ModuleKeyword = "module"
	Macromodule ModuleKeyword = "macromodule"
)

// PortDirection is the port_direction of an ANSI port declaration.
type PortDirection string

const (
	Input  PortDirection = "input"
	Output PortDirection = "output"
	Inout  PortDirection = "inout"
	Ref    PortDirection = "ref"
)

// IntegerKeyword is any integer_atom_type or integer_vector_type keyword.
type IntegerKeyword string

// AtomKeyword is an integer_atom_type keyword.
type AtomKeyword IntegerKeyword

const (
	Byte     AtomKeyword = "byte"
	Shortint AtomKeyword = "shortint"
	Int      AtomKeyword = "int"
	Longint  AtomKeyword = "longint"
	Integer  AtomKeyword = "integer"
	Time     AtomKeyword = "time"
)

// VectorKeyword is an integer_vector_type keyword.
type VectorKeyword IntegerKeyword

const (
	Bit   VectorKeyword = "bit"
	Logic VectorKeyword = "logic"
	Reg   VectorKeyword = "reg"
)

// Signing is the optional `signed`/`unsigned` qualifier. The zero value
// means the qualifier is absent.
type Signing string

const (
	Unspecified Signing = ""
	Signed      Signing = "signed"
	Unsigned    Signing = "unsigned"
)

// NonIntegerKeyword is a non_integer_type keyword.
type NonIntegerKeyword string

const (
	Real      NonIntegerKeyword = "real"
	Shortreal NonIntegerKeyword = "shortreal"
	Realtime  NonIntegerKeyword = "realtime"
)

// UnaryOperator is a unary_operator.
type UnaryOperator string

const (
	UnaryPlus   UnaryOperator = "+"
	UnaryMinus  UnaryOperator = "-"
	LogicalNot  UnaryOperator = "!"
	BitwiseNot  UnaryOperator = "~"
	ReduceAnd   UnaryOperator = "&"
	ReduceNand  UnaryOperator = "~&"
	ReduceOr    UnaryOperator = "|"
	ReduceNor   UnaryOperator = "~|"
	ReduceXor   UnaryOperator = "^"
	ReduceXnor  UnaryOperator = "~^"
	ReduceXnor2 UnaryOperator = "^~"
)

// BinaryOperator is a binary_operator.
type BinaryOperator string

const (
	OpAdd                  BinaryOperator = "+"
	OpSubtract             BinaryOperator = "-"
	OpMultiply             BinaryOperator = "*"
	OpDivide               BinaryOperator = "/"
	OpModulo               BinaryOperator = "%"
	OpPower                BinaryOperator = "**"
	OpEqual                BinaryOperator = "=="
	OpNotEqual             BinaryOperator = "!="
	OpLess                 BinaryOperator = "<"
	OpLessEqual            BinaryOperator = "<="
	OpGreater              BinaryOperator = ">"
	OpGreaterEqual         BinaryOperator = ">="
	OpLogicalAnd           BinaryOperator = "&&"
	OpLogicalOr            BinaryOperator = "||"
	OpBitwiseAnd           BinaryOperator = "&"
	OpBitwiseOr            BinaryOperator = "|"
	OpBitwiseXor           BinaryOperator = "^"
	OpBitwiseXnor          BinaryOperator = "^~"
	OpBitwiseXnor2         BinaryOperator = "~^"
	OpShiftLeft            BinaryOperator = "<<"
	OpShiftRight           BinaryOperator = ">>"
	OpArithmeticShiftLeft  BinaryOperator = "<<<"
	OpArithmeticShiftRight BinaryOperator = ">>>"
)

// ConstKeyword is the text of the optional `const` qualifier of a data
// declaration.
const ConstKeyword = "const"

var (
	moduleKeywords     = []string{string(Module), string(Macromodule)}
	portDirections     = []string{string(Input), string(Output), string(Inout), string(Ref)}
	atomKeywords       = []string{string(Byte), string(Shortint), string(Int), string(Longint), string(Integer), string(Time)}
	vectorKeywords     = []string{string(Bit), string(Logic), string(Reg)}
	integerKeywords    = append(slices.Clone(atomKeywords), vectorKeywords...)
	signings           = []string{string(Signed), string(Unsigned)}
	nonIntegerKeywords = []string{string(Real), string(Shortreal), string(Realtime)}
	constKeywords      = []string{ConstKeyword}
	unaryOperators     = []string{"+", "-", "!", "~", "&", "~&", "|", "~|", "^", "~^", "^~"}
	binaryOperators    = []string{
		"+", "-", "*", "/", "%", "**", "==", "!=", "<", "<=", ">", ">=",
		"&&", "||", "&", "|", "^", "^~", "~^", "<<", ">>", "<<<", ">>>",
	}
)

// reservedWords lists the keywords a simple identifier may not spell.
var reservedWords = map[string]bool{
	"always": true, "and": true, "assign": true, "automatic": true, "begin": true,
	"bit": true, "buf": true, "byte": true, "case": true, "chandle": true,
	"class": true, "const": true, "default": true, "else": true, "end": true,
	"endcase": true, "endclass": true, "endfunction": true, "endmodule": true,
	"endpackage": true, "enum": true, "event": true, "for": true, "function": true,
	"if": true, "initial": true, "inout": true, "input": true, "int": true,
	"integer": true, "localparam": true, "logic": true, "longint": true,
	"macromodule": true, "module": true, "output": true, "package": true,
	"parameter": true, "real": true, "realtime": true, "ref": true, "reg": true,
	"shortint": true, "shortreal": true, "signed": true, "static": true,
	"string": true, "struct": true, "time": true, "typedef": true, "union": true,
	"unsigned": true, "var": true, "void": true, "wire": true,
}

var (
	simpleIdentifierPattern  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_$]*$`)
	escapedIdentifierPattern = regexp.MustCompile(`^\\[!-~]+$`)

	integralNumberPattern = regexp.MustCompile(`^(?:` +
		`[0-9][0-9_]*` +
		`|'[01xXzZ]` +
		`|(?:[1-9][0-9_]*\s*)?'[sS]?(?:` +
		`[dD]\s*(?:[0-9][0-9_]*|[xXzZ?]_*)` +
		`|[bB]\s*[01xXzZ?][01xXzZ?_]*` +
		`|[oO]\s*[0-7xXzZ?][0-7xXzZ?_]*` +
		`|[hH]\s*[0-9a-fA-FxXzZ?][0-9a-fA-FxXzZ?_]*` +
		`))$`)
)

// LexicalError reports a terminal whose text is not a valid lexeme.
type LexicalError struct {
	Terminal string
	Text     string
	Expected []string
}

func (e *LexicalError) Error() string {
	if len(e.Expected) > 0 {
		return fmt.Sprintf("invalid %s %q (expected one of: %s)", e.Terminal, e.Text, strings.Join(e.Expected, ", "))
	}
	return fmt.Sprintf("invalid %s %q", e.Terminal, e.Text)
}

// ValidateIdentifier checks that text is a simple or escaped identifier.
func ValidateIdentifier(text string) error {
	if escapedIdentifierPattern.MatchString(text) {
		return nil
	}
	if simpleIdentifierPattern.MatchString(text) && !reservedWords[text] {
		return nil
	}
	return &LexicalError{Terminal: "identifier", Text: text}
}

// ValidateIntegralNumber checks that text is an integral_number lexeme.
func ValidateIntegralNumber(text string) error {
	if integralNumberPattern.MatchString(text) {
		return nil
	}
	return &LexicalError{Terminal: "integral number", Text: text}
}

func oneOf(terminal string, allowed []string) func(string) error {
	return func(text string) error {
		if slices.Contains(allowed, text) {
			return nil
		}
		return &LexicalError{Terminal: terminal, Text: text, Expected: allowed}
	}
}

// IsAtomKeyword reports whether kw is an integer_atom_type keyword.
func IsAtomKeyword(kw IntegerKeyword) bool {
	return slices.Contains(atomKeywords, string(kw))
}
