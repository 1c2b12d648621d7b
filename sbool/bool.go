// Package sbool provides boolean-like singletons that carry a "flavor" and
// compose with plain integers 0 and 1 under strict (non-short-circuit) logic.
//
// For every (polarity, flavor) pair a Registry hands out exactly one *Bool
// for its whole lifetime, so pointer equality doubles as identity. The
// bitwise operators And, Or and Xor accept integers only when their value is
// 0 or 1; arithmetic operators always fail with a DomainError.
package sbool

import "fmt"

// Variant distinguishes the unflavored Truth/Lie pair from flavored values.
type Variant uint8

const (
	Unflavored Variant = iota
	Flavored
)

func (v Variant) String() string {
	switch v {
	case Unflavored:
		return "unflavored"
	case Flavored:
		return "flavored"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// unflavored is the flavor key of the Truth/Lie pair. The type is unexported
// so no caller can obtain a Bool under it.
type unflavored struct{}

// Integer is implemented by values that coerce to a plain integer. Any
// Integer may be used as an operand of the bitwise operators.
type Integer interface {
	Int() int
}

var _ Integer = new(Bool)

// Bool is an immutable boolean-like value of a single flavor. Bools are only
// created by a Registry and are always handled through pointers.
type Bool struct {
	truth   bool
	flavor  interface{}
	variant Variant
	reg     *Registry
}

func newBool(reg *Registry, truth bool, flavor interface{}) *Bool {
	variant := Flavored
	if _, ok := flavor.(unflavored); ok {
		variant = Unflavored
	}
	return &Bool{
		truth:   truth,
		flavor:  flavor,
		variant: variant,
		reg:     reg,
	}
}

// Bool returns the polarity of b.
func (b *Bool) Bool() bool {
	return b.truth
}

// Int returns 1 for a truthy Bool and 0 for a falsy one.
func (b *Bool) Int() int {
	if b.truth {
		return 1
	}
	return 0
}

// Flavor returns the flavor b was obtained with. It returns nil for the
// unflavored pair.
func (b *Bool) Flavor() interface{} {
	if b.variant == Unflavored {
		return nil
	}
	return b.flavor
}

// Flavored reports whether b belongs to a caller supplied flavor.
func (b *Bool) Flavored() bool {
	return b.variant == Flavored
}

// Variant returns the variant tag of b.
func (b *Bool) Variant() Variant {
	return b.variant
}

// Registry returns the registry that owns b.
func (b *Bool) Registry() *Registry {
	return b.reg
}

// Not returns the sibling of b: same flavor, opposite polarity.
func (b *Bool) Not() *Bool {
	return b.reg.obtain(!b.truth, b.flavor)
}

// And returns b & other.
func (b *Bool) And(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpAnd, b, other)
}

// Or returns b | other.
func (b *Bool) Or(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpOr, b, other)
}

// Xor returns b ^ other.
func (b *Bool) Xor(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpXor, b, other)
}

// Add always fails. A Bool never takes part in arithmetic, even when the
// result would be 0 or 1.
func (b *Bool) Add(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpAdd, b, other)
}

// Sub always fails, see Add.
func (b *Bool) Sub(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpSub, b, other)
}

// Mul always fails, see Add.
func (b *Bool) Mul(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpMul, b, other)
}

// Div always fails, see Add.
func (b *Bool) Div(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpDiv, b, other)
}

// Mod always fails, see Add.
func (b *Bool) Mod(other interface{}) (*Bool, error) {
	return b.reg.Apply(OpMod, b, other)
}

// Apply returns b <op> other.
func (b *Bool) Apply(op Op, other interface{}) (*Bool, error) {
	return b.reg.Apply(op, b, other)
}

// Equal compares b with another Bool by identity and with bools and
// integers by numeric value.
func (b *Bool) Equal(other interface{}) bool {
	if o, ok := other.(*Bool); ok {
		return b == o
	}
	v, ok := toInt(other)
	return ok && v == int64(b.Int())
}

// String renders the unflavored pair as TRUTH and LIE, and flavored values
// together with their flavor.
func (b *Bool) String() string {
	if b == nil {
		return "(*sbool.Bool)(nil)"
	}
	if b.variant == Unflavored {
		if b.truth {
			return "TRUTH"
		}
		return "LIE"
	}
	return fmt.Sprintf("FBool(%t, %#v)", b.truth, b.flavor)
}

// GoString is the same as String so that %#v discloses the flavor too.
func (b *Bool) GoString() string {
	return b.String()
}
