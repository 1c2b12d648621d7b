package main

import (
	"fmt"
	"strings"
)

// Error is the combined error returned from an ErrorList.
type Error struct {
	title  string
	errors []error
}

// Error implements the error interface. Nested lists are flattened, each
// nested entry prefixed with the titles leading to it.
func (e *Error) Error() string {
	buff := flatten(nil, e.errors, "")
	return fmt.Sprintf("%d error(s) %s:\n%s", len(buff), e.title, strings.Join(buff, "\n"))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return e.errors
}

func flatten(buff []string, errs []error, prefix string) []string {
	for _, err := range errs {
		var title string
		var nested []error

		switch typed := err.(type) {
		case *Error:
			title, nested = typed.title, typed.errors
		case *ErrorList:
			title, nested = typed.title, typed.errors
		default:
			buff = append(buff, fmt.Sprintf("* %s%s", prefix, err))
			continue
		}

		buff = flatten(buff, nested, fmt.Sprintf("%s%s: ", prefix, title))
	}

	return buff
}

// ErrorList is an accumulator of error objects with some handy helpers.
type ErrorList Error

// NewErrorList creates a new ErrorList.
func NewErrorList(title string) *ErrorList {
	return &ErrorList{
		title:  title,
		errors: []error{},
	}
}

// Append adds a new error or errors onto the ErrorList. Nil errors are
// skipped.
func (e *ErrorList) Append(errs ...error) {
	for _, err := range errs {
		if err != nil {
			e.errors = append(e.errors, err)
		}
	}
}

// Appendf adds a new error to the list, converting the given string to a
// proper error object.
func (e *ErrorList) Appendf(text string, args ...interface{}) {
	e.errors = append(e.errors, fmt.Errorf(text, args...))
}

// Len returns the number of errors appended so far.
func (e *ErrorList) Len() int {
	return len(e.errors)
}

// Error implements the error interface.
func (e *ErrorList) Error() string {
	return (*Error)(e).Error()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.errors
}

// GetError returns a formatted error with the title and each error as a
// bullet. If there are no errors in the list, GetError returns nil.
func (e *ErrorList) GetError() error {
	if len(e.errors) == 0 {
		return nil
	}

	return &Error{
		title:  e.title,
		errors: e.errors,
	}
}
