package sbool

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is wrapped by every DomainError.
	ErrDomain = errors.New("arithmetic domain error")

	// ErrKeyType is wrapped by every KeyTypeError.
	ErrKeyType = errors.New("flavor is not a valid key")
)

var _ error = new(DomainError)
var _ error = new(KeyTypeError)

// DomainError is returned when an operator is applied to a Bool with an
// operand whose numeric value lies outside {0,1}, with an operand that has no
// numeric value at all, or when the operator is arithmetic.
type DomainError struct {
	Op          Op
	Left, Right interface{}
	Reason      string
}

func newDomainError(op Op, left, right interface{}, reason string) *DomainError {
	return &DomainError{Op: op, Left: left, Right: right, Reason: reason}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("sbool: %#v %s %#v: %s", e.Left, e.Op, e.Right, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// KeyTypeError is returned when a flavor cannot be used as a map key.
type KeyTypeError struct {
	Flavor interface{}
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("sbool: flavor of type %T cannot be used as a key", e.Flavor)
}

func (e *KeyTypeError) Unwrap() error {
	return ErrKeyType
}
