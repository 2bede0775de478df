package abstract

import (
	"math/big"
	"strings"

	"svdata-hq/svast/pkg/svast/concrete"
)

const (
	// maxShift bounds shift amounts and exponents during constant folding.
	maxShift = 1 << 16
	// unsizedWidth is the width of an unsized based literal.
	unsizedWidth = 32
)

// Eval folds a constant expression. Anything that depends on elaboration
// (identifiers, x/z digits, width-dependent operators) or is undefined
// (division by zero, negative shifts) is Indeterminate.
func Eval(e concrete.Expression) Bound {
	switch x := e.(type) {
	case nil:
		return Indeterminate
	case *concrete.IntegralNumber:
		if len(x.Text()) > MaxWidth {
			return Indeterminate
		}
		return capped(parseNumber(x.Text()))
	case *concrete.Identifier:
		return Indeterminate
	case *concrete.UnaryExpression:
		return evalUnary(x.Operator(), Eval(x.Operand()))
	case *concrete.BinaryExpression:
		return capped(evalBinary(x.Operator(), Eval(x.Left()), Eval(x.Right())))
	}
	return Indeterminate
}

// capped drops folded values wider than MaxWidth bits.
func capped(b Bound) Bound {
	if b.v != nil && b.v.BitLen() > MaxWidth {
		return Indeterminate
	}
	return b
}

func parseNumber(text string) Bound {
	text = strings.ReplaceAll(text, "_", "")
	tick := strings.IndexByte(text, '\'')
	if tick < 0 {
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Indeterminate
		}
		return Bound{v: v}
	}

	size := strings.TrimSpace(text[:tick])
	rest := strings.TrimSpace(text[tick+1:])
	if len(rest) == 1 {
		// Unbased unsized fill literal.
		if rest == "0" {
			return BoundOf(0)
		}
		return Indeterminate
	}

	signed := false
	if rest[0] == 's' || rest[0] == 'S' {
		signed = true
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return Indeterminate
	}
	var base int
	switch rest[0] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 'D':
		base = 10
	case 'h', 'H':
		base = 16
	default:
		return Indeterminate
	}
	digits := strings.TrimSpace(rest[1:])
	if strings.ContainsAny(digits, "xXzZ?") {
		return Indeterminate
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Indeterminate
	}

	width := unsizedWidth
	if size != "" {
		w, ok := new(big.Int).SetString(size, 10)
		if !ok || !w.IsInt64() || w.Int64() < 1 || w.Int64() > MaxWidth {
			return Indeterminate
		}
		width = int(w.Int64())
		v = truncate(v, width)
	} else if v.BitLen() > unsizedWidth {
		width = v.BitLen()
	}
	if signed && v.Bit(width-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}
	return Bound{v: v}
}

func truncate(v *big.Int, width int) *big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	return new(big.Int).And(v, mask)
}

func boolBound(b bool) Bound {
	if b {
		return BoundOf(1)
	}
	return BoundOf(0)
}

func evalUnary(op concrete.UnaryOperator, a Bound) Bound {
	if !a.IsDeterminate() {
		return Indeterminate
	}
	v := a.big()
	switch op {
	case concrete.UnaryPlus:
		return a
	case concrete.UnaryMinus:
		return Bound{v: new(big.Int).Neg(v)}
	case concrete.LogicalNot:
		return boolBound(v.Sign() == 0)
	case concrete.ReduceOr:
		return boolBound(v.Sign() != 0)
	case concrete.ReduceNor:
		return boolBound(v.Sign() == 0)
	}
	// ~, &, ~&, ^, ~^ and ^~ depend on the operand width.
	return Indeterminate
}

func evalBinary(op concrete.BinaryOperator, a, b Bound) Bound {
	if !a.IsDeterminate() || !b.IsDeterminate() {
		return Indeterminate
	}
	x, y := a.big(), b.big()
	r := new(big.Int)

	switch op {
	case concrete.OpAdd:
		return Bound{v: r.Add(x, y)}
	case concrete.OpSubtract:
		return Bound{v: r.Sub(x, y)}
	case concrete.OpMultiply:
		if x.BitLen()+y.BitLen() > MaxWidth+1 {
			return Indeterminate
		}
		return Bound{v: r.Mul(x, y)}
	case concrete.OpDivide:
		if y.Sign() == 0 {
			return Indeterminate
		}
		return Bound{v: r.Quo(x, y)}
	case concrete.OpModulo:
		if y.Sign() == 0 {
			return Indeterminate
		}
		return Bound{v: r.Rem(x, y)}
	case concrete.OpPower:
		if y.Sign() < 0 || !y.IsInt64() || y.Int64() > maxShift {
			return Indeterminate
		}
		// |x|**y needs at most (bitlen(x)-1)*y+1 bits.
		if x.BitLen() > 1 && int64(x.BitLen()-1)*y.Int64() >= MaxWidth {
			return Indeterminate
		}
		return Bound{v: r.Exp(x, y, nil)}
	case concrete.OpEqual:
		return boolBound(x.Cmp(y) == 0)
	case concrete.OpNotEqual:
		return boolBound(x.Cmp(y) != 0)
	case concrete.OpLess:
		return boolBound(x.Cmp(y) < 0)
	case concrete.OpLessEqual:
		return boolBound(x.Cmp(y) <= 0)
	case concrete.OpGreater:
		return boolBound(x.Cmp(y) > 0)
	case concrete.OpGreaterEqual:
		return boolBound(x.Cmp(y) >= 0)
	case concrete.OpLogicalAnd:
		return boolBound(x.Sign() != 0 && y.Sign() != 0)
	case concrete.OpLogicalOr:
		return boolBound(x.Sign() != 0 || y.Sign() != 0)
	case concrete.OpBitwiseAnd:
		return Bound{v: r.And(x, y)}
	case concrete.OpBitwiseOr:
		return Bound{v: r.Or(x, y)}
	case concrete.OpBitwiseXor:
		return Bound{v: r.Xor(x, y)}
	case concrete.OpShiftLeft, concrete.OpArithmeticShiftLeft:
		if y.Sign() < 0 || !y.IsInt64() || y.Int64() > maxShift {
			return Indeterminate
		}
		if int64(x.BitLen())+y.Int64() > MaxWidth {
			return Indeterminate
		}
		return Bound{v: r.Lsh(x, uint(y.Int64()))}
	case concrete.OpShiftRight:
		// A logical shift of a negative value depends on its width.
		if x.Sign() < 0 || y.Sign() < 0 || !y.IsInt64() {
			return Indeterminate
		}
		return Bound{v: r.Rsh(x, uint(min(y.Int64(), maxShift)))}
	case concrete.OpArithmeticShiftRight:
		if y.Sign() < 0 || !y.IsInt64() {
			return Indeterminate
		}
		return Bound{v: r.Rsh(x, uint(min(y.Int64(), maxShift)))}
	}
	// ^~ and ~^ depend on the operand width.
	return Indeterminate
}
