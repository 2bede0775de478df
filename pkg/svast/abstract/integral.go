package abstract

import (
	"fmt"
	"math/big"
	"strings"

	"svdata-hq/svast/pkg/svast/concrete"
)

// MaxWidth is the widest vector whose range is computed. Wider types are
// reported as Indeterminate.
const MaxWidth = 1 << 24

var atomWidths = map[concrete.IntegerKeyword]int64{
	concrete.IntegerKeyword(concrete.Byte):     8,
	concrete.IntegerKeyword(concrete.Shortint): 16,
	concrete.IntegerKeyword(concrete.Int):      32,
	concrete.IntegerKeyword(concrete.Longint):  64,
	concrete.IntegerKeyword(concrete.Integer):  32,
	concrete.IntegerKeyword(concrete.Time):     64,
}

var signedByDefault = map[concrete.IntegerKeyword]bool{
	concrete.IntegerKeyword(concrete.Byte):     true,
	concrete.IntegerKeyword(concrete.Shortint): true,
	concrete.IntegerKeyword(concrete.Int):      true,
	concrete.IntegerKeyword(concrete.Longint):  true,
	concrete.IntegerKeyword(concrete.Integer):  true,
}

var fourState = map[concrete.IntegerKeyword]bool{
	concrete.IntegerKeyword(concrete.Integer): true,
	concrete.IntegerKeyword(concrete.Time):    true,
	concrete.IntegerKeyword(concrete.Logic):   true,
	concrete.IntegerKeyword(concrete.Reg):     true,
}

// Range is one packed or unpacked dimension with folded bounds.
type Range struct {
	MSB Bound
	LSB Bound
}

// Size returns |msb-lsb|+1, or Indeterminate when either bound is.
func (r Range) Size() Bound {
	if !r.MSB.IsDeterminate() || !r.LSB.IsDeterminate() {
		return Indeterminate
	}
	d := new(big.Int).Sub(r.MSB.big(), r.LSB.big())
	d.Abs(d)
	return Bound{v: d.Add(d, big.NewInt(1))}
}

// String renders the range as [msb:lsb].
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s]", boundText(r.MSB), boundText(r.LSB))
}

func boundText(b Bound) string {
	if !b.IsDeterminate() {
		return "?"
	}
	return b.String()
}

// Integral is the abstract view of an IntegerType: signedness, state-ness,
// width and the representable value range.
type Integral struct {
	node      *concrete.IntegerType
	signed    bool
	fourState bool
	packed    []Range
	width     Bound
}

// NewIntegral derives the view of an integer type.
func NewIntegral(it *concrete.IntegerType) *Integral {
	kw := it.Keyword()
	v := &Integral{
		node:      it,
		signed:    signedByDefault[kw],
		fourState: fourState[kw],
	}
	switch it.Signing() {
	case concrete.Signed:
		v.signed = true
	case concrete.Unsigned:
		v.signed = false
	}

	if w, ok := atomWidths[kw]; ok {
		v.width = BoundOf(w)
		return v
	}

	width := big.NewInt(1)
	for _, d := range it.PackedDimensions() {
		r := Range{MSB: Eval(d.MSB()), LSB: Eval(d.LSB())}
		v.packed = append(v.packed, r)
		if width == nil {
			continue
		}
		size := r.Size()
		if !size.IsDeterminate() {
			width = nil
			continue
		}
		width.Mul(width, size.big())
		if width.Cmp(big.NewInt(MaxWidth)) > 0 {
			width = nil
		}
	}
	v.width = Determinate(width)
	return v
}

// Concrete returns the origin node.
func (v *Integral) Concrete() *concrete.IntegerType { return v.node }

// Node returns the origin node as a data type.
func (v *Integral) Node() concrete.DataType { return v.node }

// Keyword returns the integer type keyword.
func (v *Integral) Keyword() concrete.IntegerKeyword { return v.node.Keyword() }

// IsAtom reports whether the type is an integer_atom_type.
func (v *Integral) IsAtom() bool { return v.node.IsAtom() }

// Signed reports the effective signedness.
func (v *Integral) Signed() bool { return v.signed }

// FourState reports whether bits may hold x and z.
func (v *Integral) FourState() bool { return v.fourState }

// Sized is always true: integer types have a fixed width.
func (v *Integral) Sized() bool { return true }

// Packed returns the folded packed dimensions, outermost first.
func (v *Integral) Packed() []Range { return append([]Range(nil), v.packed...) }

// Width returns the bit width.
func (v *Integral) Width() Bound { return v.width }

// MinimumValue returns the smallest representable value.
func (v *Integral) MinimumValue() Bound {
	w, ok := v.widthBits()
	if !ok {
		return Indeterminate
	}
	if !v.signed {
		return BoundOf(0)
	}
	return Bound{v: new(big.Int).Neg(pow2(w - 1))}
}

// MaximumValue returns the largest representable value.
func (v *Integral) MaximumValue() Bound {
	w, ok := v.widthBits()
	if !ok {
		return Indeterminate
	}
	if v.signed {
		w--
	}
	return Bound{v: new(big.Int).Sub(pow2(w), big.NewInt(1))}
}

func (v *Integral) widthBits() (uint, bool) {
	w, ok := v.width.Int64()
	if !ok || w < 1 {
		return 0, false
	}
	return uint(w), true
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

// String renders the type, e.g. "logic signed [7:0]".
func (v *Integral) String() string {
	parts := []string{string(v.node.Keyword())}
	if s := v.node.Signing(); s != concrete.Unspecified {
		parts = append(parts, string(s))
	}
	out := strings.Join(parts, " ")
	if len(v.packed) > 0 {
		out += " "
		for _, r := range v.packed {
			out += r.String()
		}
	}
	return out
}

func (*Integral) isType() {}
