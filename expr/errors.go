package expr

import "fmt"

// SyntaxError is returned when an expression cannot be parsed. Pos is the
// byte offset of the offending token.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// UndefinedError is returned when an identifier is not known to the
// Resolver.
type UndefinedError struct {
	Pos  int
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined name %q at offset %d", e.Name, e.Pos)
}

// EvalError is returned for runtime failures of plain integer math, such as
// division by zero, and for operands of the wrong type.
type EvalError struct {
	Pos int
	Msg string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error at offset %d: %s", e.Pos, e.Msg)
}
