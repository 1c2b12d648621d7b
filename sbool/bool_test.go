package sbool

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myInt int

func (i myInt) Int() int { return int(i) }

// fixtures returns both polarities of a flavored pair and the unflavored pair
// of a fresh registry.
func fixtures(t *testing.T) (*Registry, []*Bool) {
	t.Helper()

	r := NewRegistry()
	yes, err := r.Truthy("flavor")
	require.NoError(t, err)
	no, err := r.Falsy("flavor")
	require.NoError(t, err)

	return r, []*Bool{yes, no, r.Truth(), r.Lie()}
}

func TestBool_Not(t *testing.T) {
	_, bools := fixtures(t)

	for _, b := range bools {
		t.Run(b.String(), func(t *testing.T) {
			n := b.Not()
			assert.NotSame(t, b, n)
			assert.Same(t, b, n.Not())
			assert.Equal(t, !b.Bool(), n.Bool())
			assert.Equal(t, b.Flavor(), n.Flavor())
			assert.Equal(t, b.Variant(), n.Variant())
			assert.Same(t, n, Not(b))
		})
	}
}

func TestBool_NotPreservesFlavor(t *testing.T) {
	r := NewRegistry()

	yes, err := r.Truthy("f")
	require.NoError(t, err)

	no := yes.Not()
	assert.Equal(t, "f", no.Flavor())
	assert.False(t, no.Bool())

	falsy, err := r.Falsy("f")
	require.NoError(t, err)
	assert.Same(t, falsy, no)
}

func TestBool_BitwiseDomain(t *testing.T) {
	_, bools := fixtures(t)

	for _, b := range bools {
		t.Run(b.String(), func(t *testing.T) {
			r, err := b.And(0)
			require.NoError(t, err)
			assert.True(t, r.Equal(0))

			r, err = b.And(1)
			require.NoError(t, err)
			assert.True(t, r.Equal(b.Int()))

			r, err = b.Or(1)
			require.NoError(t, err)
			assert.True(t, r.Equal(1))

			r, err = b.Or(0)
			require.NoError(t, err)
			assert.True(t, r.Equal(b.Int()))

			r, err = b.Xor(b)
			require.NoError(t, err)
			assert.True(t, r.Equal(0))

			r, err = b.Xor(1)
			require.NoError(t, err)
			assert.Equal(t, !b.Bool(), r.Bool())
		})
	}
}

func TestBool_ReflectedOperands(t *testing.T) {
	r, bools := fixtures(t)
	operands := []interface{}{0, 1, true, false, uint8(1), int64(0), myInt(1)}
	for _, b := range bools {
		operands = append(operands, b)
	}

	for _, op := range []Op{OpAnd, OpOr, OpXor} {
		for _, b := range bools {
			for _, o := range operands {
				t.Run(fmt.Sprintf("%s_%s_%v", b, op, o), func(t *testing.T) {
					left, err := r.Apply(op, b, o)
					require.NoError(t, err)
					right, err := r.Apply(op, o, b)
					require.NoError(t, err)
					assert.Same(t, left, right)
				})
			}
		}
	}
}

func TestBool_SameFlavorStaysFlavored(t *testing.T) {
	r := NewRegistry()

	yes, err := r.Truthy("f")
	require.NoError(t, err)
	no, err := r.Falsy("f")
	require.NoError(t, err)

	cases := []struct {
		name string
		op   Op
		x, y *Bool
		e    *Bool
	}{
		{"and_tt", OpAnd, yes, yes, yes},
		{"and_tf", OpAnd, yes, no, no},
		{"or_tf", OpOr, yes, no, yes},
		{"or_ff", OpOr, no, no, no},
		{"xor_tt", OpXor, yes, yes, no},
		{"xor_tf", OpXor, yes, no, yes},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			res, err := tc.x.Apply(tc.op, tc.y)
			require.NoError(t, err)
			assert.Same(t, tc.e, res)
		})
	}
}

func TestBool_CrossFlavorCollapses(t *testing.T) {
	r := NewRegistry()

	a, err := r.Truthy("a")
	require.NoError(t, err)
	b, err := r.Truthy("b")
	require.NoError(t, err)

	res, err := a.And(b)
	require.NoError(t, err)
	assert.Same(t, r.Truth(), res)

	res, err = a.Xor(b)
	require.NoError(t, err)
	assert.Same(t, r.Lie(), res)

	// plain integers always collapse
	res, err = a.And(1)
	require.NoError(t, err)
	assert.Same(t, r.Truth(), res)
	assert.Equal(t, Unflavored, res.Variant())

	// flavored with unflavored collapses too
	res, err = a.Or(r.Lie())
	require.NoError(t, err)
	assert.Same(t, r.Truth(), res)

	// across registries the receiver's pair is used
	other := NewRegistry()
	c, err := other.Truthy("a")
	require.NoError(t, err)
	res, err = r.And(a, c)
	require.NoError(t, err)
	assert.Same(t, r.Truth(), res)
}

func TestBool_DomainRejection(t *testing.T) {
	_, bools := fixtures(t)
	b := bools[0]

	cases := []struct {
		name string
		fn   func() (*Bool, error)
	}{
		{"and_2", func() (*Bool, error) { return b.And(2) }},
		{"or_negative", func() (*Bool, error) { return b.Or(-1) }},
		{"xor_uint_max", func() (*Bool, error) { return b.Xor(^uint64(0)) }},
		{"and_custom", func() (*Bool, error) { return b.And(myInt(3)) }},
		{"and_string", func() (*Bool, error) { return b.And("1") }},
		{"and_float", func() (*Bool, error) { return b.And(1.0) }},
		{"and_nil_bool", func() (*Bool, error) { return b.And((*Bool)(nil)) }},
		{"add_1", func() (*Bool, error) { return b.Add(1) }},
		{"add_0", func() (*Bool, error) { return b.Add(0) }},
		{"sub_0", func() (*Bool, error) { return b.Sub(0) }},
		{"mul_1", func() (*Bool, error) { return b.Mul(1) }},
		{"div_1", func() (*Bool, error) { return b.Div(1) }},
		{"mod_1", func() (*Bool, error) { return b.Mod(1) }},
		{"shl_0", func() (*Bool, error) { return b.Apply(OpShl, 0) }},
		{"shr_0", func() (*Bool, error) { return b.Apply(OpShr, 0) }},
		{"reflected_2", func() (*Bool, error) { return And(2, b) }},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			res, err := tc.fn()
			require.Error(t, err)
			require.Nil(t, res)

			var derr *DomainError
			require.True(t, errors.As(err, &derr))
			assert.True(t, errors.Is(err, ErrDomain))
			assert.NotEmpty(t, derr.Reason)
		})
	}
}

func TestDomainError_Error(t *testing.T) {
	b := MustTruthy("db-flag-A")

	_, err := b.Add(1)
	require.Error(t, err)
	assert.Equal(t,
		`sbool: FBool(true, "db-flag-A") + 1: arithmetic is not defined for sbool.Bool`,
		err.Error())

	_, err = b.And(2)
	require.Error(t, err)
	assert.Equal(t,
		`sbool: FBool(true, "db-flag-A") & 2: operand 2 is not 0 or 1`,
		err.Error())
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 1, Truth.Int())
	assert.Equal(t, 0, Lie.Int())
	assert.True(t, Truth.Bool())
	assert.False(t, Lie.Bool())
	assert.NotSame(t, Truth, Lie)
	assert.False(t, Truth.Equal(Lie))
	assert.Same(t, Lie, Truth.Not())
	assert.Same(t, Truth, Not(Lie))
}

func TestBool_Equal(t *testing.T) {
	a := MustTruthy("equal-a")

	cases := []struct {
		name  string
		b     *Bool
		other interface{}
		e     bool
	}{
		{"identity", a, a, true},
		{"other_flavor", a, Truth, false},
		{"int_match", a, 1, true},
		{"int_mismatch", a, 0, false},
		{"bool_match", Lie, false, true},
		{"uint_match", Truth, uint(1), true},
		{"integer_match", Lie, myInt(0), true},
		{"string", Truth, "1", false},
		{"nil", Truth, nil, false},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			assert.Equal(t, tc.e, tc.b.Equal(tc.other))
		})
	}
}

func TestBool_String(t *testing.T) {
	r := NewRegistry()
	f, err := r.Falsy(tag{"x"})
	require.NoError(t, err)
	n, err := r.Truthy(nil)
	require.NoError(t, err)

	cases := []struct {
		name string
		b    *Bool
		e    string
	}{
		{"truth", r.Truth(), "TRUTH"},
		{"lie", r.Lie(), "LIE"},
		{"flavored", MustTruthy("db-flag-A"), `FBool(true, "db-flag-A")`},
		{"struct", f, `FBool(false, sbool.tag{name:"x"})`},
		{"nil_flavor", n, "FBool(true, <nil>)"},
		{"nil", nil, "(*sbool.Bool)(nil)"},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			assert.Equal(t, tc.e, tc.b.String())
			assert.Equal(t, tc.e, fmt.Sprintf("%#v", tc.b))
		})
	}
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "unflavored", Unflavored.String())
	assert.Equal(t, "flavored", Flavored.String())
	assert.Equal(t, "Variant(7)", Variant(7).String())
}
