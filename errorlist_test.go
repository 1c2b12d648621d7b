package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbool-dev/sbool/expr"
	"github.com/sbool-dev/sbool/sbool"
)

func TestNewErrorList(t *testing.T) {
	list := NewErrorList("the title")

	assert.Equal(t, "the title", list.title)
	assert.Empty(t, list.errors)
	assert.Equal(t, 0, list.Len())
}

func TestErrorList_Append(t *testing.T) {
	list := NewErrorList("title")
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	list.Append(err1, nil, err2)

	require.Equal(t, 2, list.Len())
	assert.Equal(t, err1, list.errors[0])
	assert.Equal(t, err2, list.errors[1])
}

func TestErrorList_Appendf(t *testing.T) {
	list := NewErrorList("title")
	list.Appendf("expression %d failed", 3)

	require.Equal(t, 1, list.Len())
	assert.EqualError(t, list.errors[0], "expression 3 failed")
}

// Appending a list after it was itself appended must still show up.
func TestErrorList_nested(t *testing.T) {
	parent := NewErrorList("evaluating")
	parent.Append(errors.New("undefined name a"))
	parent.Append(errors.New("undefined name b"))

	child := NewErrorList("yes & 2")
	child.Append(errors.New("operand 2 is not 0 or 1"))
	parent.Append(child)

	infant := NewErrorList("binding")
	infant.Append(errors.New("keyword reserved"))
	child.Append(infant)

	expected := strings.TrimSpace(`
4 error(s) evaluating:
* undefined name a
* undefined name b
* yes & 2: operand 2 is not 0 or 1
* yes & 2: binding: keyword reserved
`)

	assert.Equal(t, expected, strings.TrimSpace(parent.Error()))
}

func TestErrorList_GetError(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		list := NewErrorList("title")
		assert.Nil(t, list.GetError())
	})

	t.Run("errors", func(t *testing.T) {
		list := NewErrorList("parsing config")
		list.Append(errors.New("something bad"))
		list.Append(errors.New("something worse"))

		err, ok := list.GetError().(*Error)
		require.True(t, ok)
		assert.Equal(t, "parsing config", err.title)
		assert.Len(t, err.errors, 2)
		assert.Equal(t, "2 error(s) parsing config:\n* something bad\n* something worse", err.Error())
	})
}

func TestErrorList_unwrap(t *testing.T) {
	list := NewErrorList("evaluating")
	list.Append(&expr.UndefinedError{Name: "x"})

	_, err := sbool.Apply(sbool.OpAdd, sbool.Truth, 1)
	require.Error(t, err)
	list.Append(err)

	got := list.GetError()

	var uerr *expr.UndefinedError
	require.True(t, errors.As(got, &uerr))
	assert.Equal(t, "x", uerr.Name)
	assert.True(t, errors.Is(got, sbool.ErrDomain))
}
