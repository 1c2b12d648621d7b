package main

import "fmt"

// ErrExitable is an error that knows the exit status the CLI should return
// for it.
type ErrExitable interface {
	ExitStatus() int
}

var _ error = new(ErrExit)
var _ ErrExitable = new(ErrExit)

// ErrExit ties an error to one of the ExitCode values.
type ErrExit struct {
	code int
	err  error
}

// NewErrExit wraps err with the given exit code.
func NewErrExit(code int, err error) *ErrExit {
	return &ErrExit{code: code, err: err}
}

// NewErrExitf formats a new error with the given exit code.
func NewErrExitf(code int, format string, args ...interface{}) *ErrExit {
	return &ErrExit{code: code, err: fmt.Errorf(format, args...)}
}

func (e *ErrExit) Error() string {
	return e.err.Error()
}

func (e *ErrExit) Unwrap() error {
	return e.err
}

func (e *ErrExit) ExitStatus() int {
	return e.code
}
