package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("src/app.js", "javascript", underlying)

	assert.Contains(t, err.Error(), "src/app.js")
	assert.Contains(t, err.Error(), "javascript")
	assert.ErrorIs(t, err, underlying)

	var parseErr *ParseError
	assert.True(t, errors.As(error(err), &parseErr))
	assert.Equal(t, ErrorTypeParse, parseErr.Type)
}

func TestSupplierErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := NewSupplierError("walk", "/project", underlying)

	assert.Contains(t, err.Error(), "walk")
	assert.Contains(t, err.Error(), "/project")
	assert.ErrorIs(t, err, underlying)
}

func TestMultiErrorFiltersNil(t *testing.T) {
	e1 := fmt.Errorf("one")
	e2 := fmt.Errorf("two")
	multi := NewMultiError([]error{e1, nil, e2, nil})

	assert.Len(t, multi.Errors, 2)
	assert.ErrorIs(t, multi, e1)
	assert.ErrorIs(t, multi, e2)
	assert.Contains(t, multi.Error(), "2 errors")
}

func TestMultiErrorSingle(t *testing.T) {
	only := fmt.Errorf("just this")
	multi := NewMultiError([]error{only})

	assert.Equal(t, "just this", multi.Error())
}
