package abstract

import (
	"testing"

	"signa/sign"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareBindLookup(t *testing.T) {
	env := NewEnvironment()
	require.True(t, env.Declare("x", sign.Int))
	assert.False(t, env.Declare("x", sign.Float))
	assert.True(t, env.Lookup("x").IsAbsent())

	env.Bind("x", sign.PosInt)
	assert.Equal(t, sign.PosInt, env.Lookup("x").MustGet())

	env.NewScope()
	require.True(t, env.Declare("x", sign.Float))
	// a declared but unbound inner x does not hide the outer binding
	assert.Equal(t, sign.PosInt, env.Lookup("x").MustGet())

	env.Bind("x", sign.NegFloat)
	assert.Equal(t, sign.NegFloat, env.Lookup("x").MustGet())

	require.True(t, env.ExitScope())
	assert.Equal(t, sign.PosInt, env.Lookup("x").MustGet())
	assert.False(t, env.ExitScope())
	assert.Equal(t, 1, env.Depth())
}

func TestBindPanics(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	assert.Panics(t, func() { env.Bind("x", sign.PosFloat) })
	assert.Panics(t, func() { env.Bind("y", sign.PosInt) })
}

func TestForkIsolation(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	env.Bind("x", sign.ZeroInt)

	env.Fork()
	env.Bind("x", sign.PosInt)
	env.NewScope()
	env.Declare("y", sign.Int)
	env.ExitScope()
	branch := env.Restore()

	assert.Equal(t, sign.ZeroInt, env.Lookup("x").MustGet())
	assert.Equal(t, sign.PosInt, branch.Lookup("x").MustGet())

	branch.Bind("x", sign.NegInt)
	assert.Equal(t, sign.ZeroInt, env.Lookup("x").MustGet())
	assert.Panics(t, func() { env.Restore() })
}

func TestNestedForks(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	env.Bind("x", sign.ZeroInt)

	env.Fork()
	env.Bind("x", sign.PosInt)
	env.Fork()
	env.Bind("x", sign.NegInt)
	assert.Equal(t, 2, env.Forks())

	inner := env.Restore()
	assert.Equal(t, sign.NegInt, inner.Lookup("x").MustGet())
	assert.Equal(t, sign.PosInt, env.Lookup("x").MustGet())

	outer := env.Restore()
	assert.Equal(t, sign.PosInt, outer.Lookup("x").MustGet())
	assert.Equal(t, sign.ZeroInt, env.Lookup("x").MustGet())
	assert.Equal(t, 0, env.Forks())
}

func TestJoin(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	env.Declare("y", sign.Float)
	env.Declare("z", sign.Int)
	env.Bind("x", sign.PosInt)
	env.Bind("y", sign.ZeroFloat)

	env.Fork()
	env.Bind("x", sign.NegInt)
	env.Bind("z", sign.PosInt)
	branch := env.Restore()

	env.Join(branch)
	assert.Equal(t, sign.AnyInt, env.Lookup("x").MustGet())
	assert.Equal(t, sign.ZeroFloat, env.Lookup("y").MustGet())
	// unbound on our side stays unbound
	assert.True(t, env.Lookup("z").IsAbsent())
}

func TestJoinLeavesVariablesUnboundInOther(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	env.Bind("x", sign.PosInt)

	other := NewEnvironment()
	other.Declare("x", sign.Int)

	env.Join(other)
	assert.Equal(t, sign.PosInt, env.Lookup("x").MustGet())
}

func TestIdentical(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	env.Declare("pending", sign.Int)
	env.Bind("x", sign.AnyInt)

	env.Fork()
	same := env.Restore()
	assert.True(t, env.Identical(same))

	env.Fork()
	env.Bind("x", sign.PosInt)
	changed := env.Restore()
	assert.False(t, env.Identical(changed))

	env.Fork()
	env.Bind("pending", sign.PosInt)
	extra := env.Restore()
	// only bindings on the receiving side are compared
	assert.True(t, env.Identical(extra))
	assert.False(t, extra.Identical(env))
}

func TestSnapshot(t *testing.T) {
	env := NewEnvironment()
	env.Declare("b", sign.Int)
	env.Declare("a", sign.Float)
	env.Bind("a", sign.NegFloat)
	env.NewScope()
	env.Declare("c", sign.Int)
	env.Bind("c", sign.ZeroInt)

	snap := env.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "b: unbound Int", snap[0].String())
	assert.Equal(t, "a: NegFloat", snap[1].String())
	assert.Equal(t, 1, snap[2].Depth)

	assert.Equal(t, map[string]sign.Value{"a": sign.NegFloat, "c": sign.ZeroInt}, env.Bound())
}

func TestJoinReportsChange(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", sign.Int)
	env.Bind("x", sign.AnyInt)

	env.Fork()
	env.Bind("x", sign.PosInt)
	covered := env.Restore()
	assert.False(t, env.Identical(covered))
	assert.False(t, env.Join(covered))

	env.Bind("x", sign.ZeroInt)
	env.Fork()
	env.Bind("x", sign.NegInt)
	widened := env.Restore()
	assert.True(t, env.Join(widened))
	assert.Equal(t, sign.AnyInt, env.Lookup("x").MustGet())
}
