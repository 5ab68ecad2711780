package diag

import (
	"errors"
	"testing"

	"signa/ast"
	"signa/runtime"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	src := []byte("int x = 1;\n\tprint x / 0;\n")
	err := runtime.Errorf(runtime.DivisionByZero, ast.Span{Start: ast.Point{Row: 1, Column: 7}}, "")

	assert.Equal(t, "prog.sg:2:8: division by zero error\n\tprint x / 0;\n\t      ^", Format("prog.sg", src, err))
}

func TestFormatCountsGraphemes(t *testing.T) {
	src := []byte("int é = 1; $")
	err := runtime.Errorf(runtime.ParseError, ast.Span{Start: ast.Point{Row: 0, Column: 12}}, "unexpected character '$'")

	assert.Equal(t, "a.sg:1:12: parsing error: unexpected character '$'\nint é = 1; $\n           ^", Format("a.sg", src, err))
	assert.Equal(t, 5, Column("int é", 4))
	assert.Equal(t, 6, Column("int é", 6))
}

func TestFormatPlainError(t *testing.T) {
	assert.Equal(t, "boom", Format("a.sg", nil, errors.New("boom")))
}

func TestFormatOutOfRange(t *testing.T) {
	err := &runtime.Error{Kind: runtime.StaticCheckError, Span: ast.Span{Start: ast.Point{Row: 9, Column: 2}}}
	assert.Equal(t, "a.sg:10:3: static checking error", Format("a.sg", []byte("int x;"), err))
}
