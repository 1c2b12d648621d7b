package sbool

import (
	"fmt"
	"math"
)

// Op is a binary operator that may be applied to a Bool.
type Op uint8

const (
	OpAnd Op = iota
	OpOr
	OpXor
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
)

var opSymbols = [...]string{
	OpAnd: "&",
	OpOr:  "|",
	OpXor: "^",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpShl: "<<",
	OpShr: ">>",
}

func (o Op) String() string {
	if int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Logical reports whether o is one of the bitwise logic operators a Bool
// supports.
func (o Op) Logical() bool {
	return o == OpAnd || o == OpOr || o == OpXor
}

// ParseOp returns the operator spelled s.
func ParseOp(s string) (Op, bool) {
	for op, sym := range opSymbols {
		if sym == s {
			return Op(op), true
		}
	}
	return 0, false
}

// toInt returns the numeric value of v. The second return is false when v
// has no numeric value.
func toInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case *Bool:
		if t == nil {
			return 0, false
		}
		return int64(t.Int()), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return clampUint(uint64(t)), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return clampUint(t), true
	case Integer:
		return int64(t.Int()), true
	}
	return 0, false
}

func clampUint(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

// operand checks that v is 0 or 1.
func operand(op Op, left, right, v interface{}) (int64, error) {
	n, ok := toInt(v)
	if !ok {
		return 0, newDomainError(op, left, right,
			fmt.Sprintf("unsupported operand type %T", v))
	}
	if n != 0 && n != 1 {
		return 0, newDomainError(op, left, right,
			fmt.Sprintf("operand %d is not 0 or 1", n))
	}
	return n, nil
}

func logic(op Op, x, y int64) int64 {
	switch op {
	case OpAnd:
		return x & y
	case OpOr:
		return x | y
	case OpXor:
		return x ^ y
	}
	panic(fmt.Sprintf("sbool: %s is not a logical operator", op))
}
