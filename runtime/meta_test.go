package runtime

import (
	"errors"
	"testing"

	"signa/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, Success.ExitCode())
	assert.Equal(t, 1, ParseError.ExitCode())
	assert.Equal(t, 2, StaticCheckError.ExitCode())
	assert.Equal(t, 3, UninitializedVariable.ExitCode())
	assert.Equal(t, 4, DivisionByZero.ExitCode())
	assert.Equal(t, 5, FailedInputRead.ExitCode())
}

func TestMeta(t *testing.T) {
	ok := Ok(42)
	assert.False(t, ok.Failed())
	assert.Equal(t, 42, ok.Get())
	assert.NoError(t, ok.Err())

	done := Done[int]()
	assert.False(t, done.Failed())
	assert.False(t, done.Value.IsPresent())
	assert.Panics(t, func() { done.Get() })

	span := ast.Span{Start: ast.Point{Row: 2, Column: 4}}
	failed := Fail[int](DivisionByZero, span)
	require.True(t, failed.Failed())

	var rerr *Error
	require.True(t, errors.As(failed.Err(), &rerr))
	assert.Equal(t, DivisionByZero, rerr.Kind)
	assert.Equal(t, "3:5: division by zero error", rerr.Error())
}
