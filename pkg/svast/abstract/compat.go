package abstract

// Level is a type compatibility level, strongest first (IEEE 1800-2017
// 6.22).
type Level int

const (
	Matching Level = iota
	Equivalent
	AssignmentCompatible
	CastCompatible
	NonEquivalent
)

func (l Level) String() string {
	switch l {
	case Matching:
		return "matching"
	case Equivalent:
		return "equivalent"
	case AssignmentCompatible:
		return "assignment-compatible"
	case CastCompatible:
		return "cast-compatible"
	default:
		return "non-equivalent"
	}
}

// Compatibility classifies how a value of type a relates to type b. Typedef
// references are not resolved: two references match when they name the
// same type and are otherwise non-equivalent.
func Compatibility(a, b Type) Level {
	switch x := a.(type) {
	case *Integral:
		switch y := b.(type) {
		case *Integral:
			return integralLevel(x, y)
		case *Real:
			return AssignmentCompatible
		case *Enum:
			return CastCompatible
		}
	case *Real:
		switch y := b.(type) {
		case *Real:
			if x.Keyword() == y.Keyword() {
				return Matching
			}
			return AssignmentCompatible
		case *Integral:
			return AssignmentCompatible
		case *Enum:
			return CastCompatible
		}
	case *Enum:
		switch y := b.(type) {
		case *Enum:
			if sameEnum(x, y) {
				return Matching
			}
			return CastCompatible
		case *Integral, *Real:
			return CastCompatible
		}
	case *Typedef:
		if y, ok := b.(*Typedef); ok && x.Name() == y.Name() && x.Package() == y.Package() && sameRanges(x.packed, y.packed) {
			return Matching
		}
	case *String:
		if _, ok := b.(*String); ok {
			return Matching
		}
	case *Chandle:
		if _, ok := b.(*Chandle); ok {
			return Matching
		}
	case *Event:
		if _, ok := b.(*Event); ok {
			return Matching
		}
	case *Void:
		if _, ok := b.(*Void); ok {
			return Matching
		}
	}
	return NonEquivalent
}

func integralLevel(a, b *Integral) Level {
	if a.Keyword() == b.Keyword() && a.Signed() == b.Signed() && sameRanges(a.packed, b.packed) {
		return Matching
	}
	if a.Width().IsDeterminate() && a.Width().Equal(b.Width()) &&
		a.Signed() == b.Signed() && a.FourState() == b.FourState() {
		return Equivalent
	}
	return AssignmentCompatible
}

// sameRanges requires every bound to be determinate; unresolved dimensions
// never match.
func sameRanges(a, b []Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].MSB.IsDeterminate() || !a[i].LSB.IsDeterminate() {
			return false
		}
		if !a[i].MSB.Equal(b[i].MSB) || !a[i].LSB.Equal(b[i].LSB) {
			return false
		}
	}
	return true
}

func sameEnum(a, b *Enum) bool {
	if a.node == b.node {
		return true
	}
	if integralLevel(a.base, b.base) != Matching || len(a.members) != len(b.members) {
		return false
	}
	for i := range a.members {
		if a.members[i].Name != b.members[i].Name || !a.members[i].Value.Equal(b.members[i].Value) {
			return false
		}
	}
	return true
}
