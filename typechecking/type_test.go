package typechecking

import (
	"testing"

	"signa/ast"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, Int, TypeOf(ast.IntType))
	assert.Equal(t, Float, TypeOf(ast.FloatType))
	assert.Equal(t, "float", TypeOf(ast.FloatType).ObjectName())

	_, found := World.Search("bool")
	assert.False(t, found)
}
