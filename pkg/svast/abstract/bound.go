package abstract

import "math/big"

// Bound is a statically known integer or Indeterminate. Indeterminate is a
// designed outcome for unelaborated trees (unresolved parameters, x/z
// digits), not an error.
type Bound struct {
	v *big.Int
}

// Indeterminate is the bound whose value cannot be known without
// elaboration.
var Indeterminate = Bound{}

// Determinate wraps a copy of v.
func Determinate(v *big.Int) Bound {
	if v == nil {
		return Indeterminate
	}
	return Bound{v: new(big.Int).Set(v)}
}

// BoundOf wraps an int64.
func BoundOf(v int64) Bound {
	return Bound{v: big.NewInt(v)}
}

// IsDeterminate reports whether the value is known.
func (b Bound) IsDeterminate() bool { return b.v != nil }

// Value returns a copy of the value, or false when indeterminate.
func (b Bound) Value() (*big.Int, bool) {
	if b.v == nil {
		return nil, false
	}
	return new(big.Int).Set(b.v), true
}

// Int64 returns the value when it is determinate and fits in an int64.
func (b Bound) Int64() (int64, bool) {
	if b.v == nil || !b.v.IsInt64() {
		return 0, false
	}
	return b.v.Int64(), true
}

// Equal reports whether both bounds are determinate with the same value,
// or both indeterminate.
func (b Bound) Equal(other Bound) bool {
	if b.v == nil || other.v == nil {
		return b.v == nil && other.v == nil
	}
	return b.v.Cmp(other.v) == 0
}

// String returns the decimal value or "indeterminate".
func (b Bound) String() string {
	if b.v == nil {
		return "indeterminate"
	}
	return b.v.String()
}

// MarshalText renders the bound for JSON/YAML output.
func (b Bound) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b Bound) big() *big.Int { return b.v }
