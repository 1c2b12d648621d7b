package expr

import (
	"fmt"
	"strconv"
)

// Node is a parsed expression. String renders the node fully parenthesized.
type Node interface {
	Pos() int
	String() string
}

// IntLit is an integer literal.
type IntLit struct {
	At    int
	Value int64
}

// BoolLit is one of the plain literals true and false.
type BoolLit struct {
	At    int
	Value bool
}

// Const is TRUTH or LIE.
type Const struct {
	At    int
	Truth bool
}

// Ident is a name looked up through the Resolver.
type Ident struct {
	At   int
	Name string
}

// Obtain is a truthy(flavor) or falsy(flavor) call.
type Obtain struct {
	At     int
	Truth  bool
	Flavor interface{}
}

// Unary is ~x, -x or not_(x).
type Unary struct {
	At int
	Op string
	X  Node
}

// Binary is a strict bitwise or arithmetic operation.
type Binary struct {
	At   int
	Op   string
	X, Y Node
}

// Logical is a short-circuit and/or.
type Logical struct {
	At   int
	Op   string
	X, Y Node
}

// Not is the short-circuit negation, it always yields a plain bool.
type Not struct {
	At int
	X  Node
}

// Compare is ==, !=, is or is not.
type Compare struct {
	At   int
	Op   string
	X, Y Node
}

func (n *IntLit) Pos() int  { return n.At }
func (n *BoolLit) Pos() int { return n.At }
func (n *Const) Pos() int   { return n.At }
func (n *Ident) Pos() int   { return n.At }
func (n *Obtain) Pos() int  { return n.At }
func (n *Unary) Pos() int   { return n.At }
func (n *Binary) Pos() int  { return n.At }
func (n *Logical) Pos() int { return n.At }
func (n *Not) Pos() int     { return n.At }
func (n *Compare) Pos() int { return n.At }

func (n *IntLit) String() string { return strconv.FormatInt(n.Value, 10) }

func (n *BoolLit) String() string { return strconv.FormatBool(n.Value) }

func (n *Const) String() string {
	if n.Truth {
		return "TRUTH"
	}
	return "LIE"
}

func (n *Ident) String() string { return n.Name }

func (n *Obtain) String() string {
	name := "falsy"
	if n.Truth {
		name = "truthy"
	}
	if s, ok := n.Flavor.(string); ok {
		return fmt.Sprintf("%s(%q)", name, s)
	}
	return fmt.Sprintf("%s(%v)", name, n.Flavor)
}

func (n *Unary) String() string {
	if n.Op == "not_" {
		return fmt.Sprintf("not_(%s)", n.X)
	}
	return fmt.Sprintf("(%s%s)", n.Op, n.X)
}

func (n *Binary) String() string { return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y) }

func (n *Logical) String() string { return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y) }

func (n *Not) String() string { return fmt.Sprintf("(not %s)", n.X) }

func (n *Compare) String() string { return fmt.Sprintf("(%s %s %s)", n.X, n.Op, n.Y) }
