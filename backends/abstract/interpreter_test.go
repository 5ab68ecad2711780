package abstract

import (
	"bytes"
	"testing"

	"signa/ast"
	"signa/parser"
	"signa/runtime"
	"signa/sign"
	"signa/typechecking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type round struct {
	n       int
	verdict sign.Value
	stable  bool
}

type recorder struct {
	branches []sign.Value
	rounds   []round
	prints   []sign.Value
}

func (r *recorder) Branch(s *ast.IfStmt, verdict sign.Value) {
	r.branches = append(r.branches, verdict)
}

func (r *recorder) Round(s *ast.WhileStmt, n int, verdict sign.Value, stable bool) {
	r.rounds = append(r.rounds, round{n, verdict, stable})
}

func (r *recorder) Print(s *ast.PrintStmt, v sign.Value) {
	r.prints = append(r.prints, v)
}

type result struct {
	meta   Meta
	out    string
	env    *Environment
	traced *recorder
}

func analyze(t *testing.T, src string) result {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	_, err = typechecking.Check(prog)
	require.NoError(t, err)

	var out bytes.Buffer
	rec := &recorder{}
	interp := NewInterpreter(&out, Config{MaxIterations: 100, MemoizeReads: true})
	interp.Tracer = rec
	m := interp.RunProgram(prog)
	require.Equal(t, 0, interp.Env.Forks())
	return result{m, out.String(), interp.Env, rec}
}

func (r result) value(t *testing.T, name string) sign.Value {
	t.Helper()
	v, ok := r.env.Lookup(name).Get()
	require.True(t, ok, "%s is unbound", name)
	return v
}

func TestStraightLine(t *testing.T) {
	r := analyze(t, `
int x = 5;
float f = 0.0;
int y = x * -2;
print x;
print f;
print y - x;
print readfloat;
print 0 / 3;
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, "PosInt\nZeroFloat\nNegInt\nAnyFloat\nZeroInt\n", r.out)
	assert.Equal(t, sign.NegInt, r.value(t, "y"))
}

func TestIfWithoutElse(t *testing.T) {
	r := analyze(t, `
int x = 5;
int c = readint;
if (c > 0) x = -x;
print x;
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
	assert.Equal(t, []sign.Value{sign.AnyBool}, r.traced.branches)
}

func TestIfWithElse(t *testing.T) {
	r := analyze(t, `
int x = 0;
int y = 0;
int c = readint;
if (c > 0) { x = 1; y = 2; } else { x = -1; y = 3; }
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
	assert.Equal(t, sign.PosInt, r.value(t, "y"))
}

func TestIfExploresBothBranchesRegardlessOfVerdict(t *testing.T) {
	r := analyze(t, `
int x = 5;
if (x > 0) x = 1; else x = -1;
`)
	assert.Equal(t, []sign.Value{sign.TrueBool}, r.traced.branches)
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
}

func TestElseStartsFromPreIfState(t *testing.T) {
	r := analyze(t, `
int x = 1;
int y = 1;
int c = readint;
if (c > 0) x = -1; else y = x;
`)
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
	assert.Equal(t, sign.PosInt, r.value(t, "y"))
}

func TestNestedIf(t *testing.T) {
	r := analyze(t, `
int x = 0;
int c = readint;
if (c > 0) {
  if (c > 1) x = 1; else x = 2;
  print x;
}
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, "PosInt\n", r.out)
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
}

func TestWhileFixpoint(t *testing.T) {
	r := analyze(t, `
int x = 0;
int c = readint;
while (c > 0) x = x + 1;
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
	assert.Equal(t, []round{
		{1, sign.AnyBool, false},
		{2, sign.AnyBool, true},
	}, r.traced.rounds)
}

func TestWhileAssigningConstantTerminates(t *testing.T) {
	r := analyze(t, `
int x = 0;
int n = readint;
while (n > 0) x = 1;
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, sign.AnyInt, r.value(t, "x"))
	assert.Equal(t, []round{
		{1, sign.AnyBool, false},
		{2, sign.AnyBool, true},
	}, r.traced.rounds)
}

func TestWhileKeepsInvariantSign(t *testing.T) {
	r := analyze(t, `
int x = 1;
int n = readint;
while (n > 0) { x = x * 2; n = n - 1; }
print x;
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, "PosInt\n", r.out)
	assert.Equal(t, sign.AnyInt, r.value(t, "n"))
}

func TestWhileRoundsBoundedByVariables(t *testing.T) {
	src := `
int a = 0;
int b = 0;
int c = 0;
int n = readint;
while (n > 0) { c = b; b = a; a = 1; }
`
	r := analyze(t, src)
	require.False(t, r.meta.Failed())
	assert.LessOrEqual(t, len(r.traced.rounds), 4+1)
	assert.Equal(t, sign.AnyInt, r.value(t, "c"))
}

func TestWhileBodyScopesVanish(t *testing.T) {
	r := analyze(t, `
int x = 1;
int n = readint;
while (n > 0) { int tmp = -x; x = tmp * tmp; }
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, sign.PosInt, r.value(t, "x"))
	assert.Len(t, r.env.Snapshot(), 2)
}

func TestDivisionByZero(t *testing.T) {
	cases := []struct {
		name string
		src  string
		out  string
	}{
		{"literal zero", "print 1; print 4 / 0; print 2;", "PosInt\n"},
		{"unknown divisor", "int d = readint; print 10 / d;", ""},
		{"float divisor", "float d = 0.0; print 1.5 / d;", ""},
		{"inside branch", "int d = readint; if (d > 0) d = 1 / d;", ""},
		{"inside loop", "int d = 3; while (d > 0) d = 6 / (d - 1);", ""},
		{"inside condition", "int d = readint; if (1 / d > 0) print d;", ""},
		{"underflowing product", "float f = 1.0e-200; print 1.0 / (f * f);", ""},
		{"inside block", "{ int z = 0; print 1 / z; } print 1;", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := analyze(t, c.src)
			require.True(t, r.meta.Failed())
			assert.Equal(t, runtime.DivisionByZero, r.meta.Kind)
			assert.Equal(t, c.out, r.out)
			assert.Equal(t, 1, r.env.Depth())
		})
	}
}

func TestSafeDivision(t *testing.T) {
	r := analyze(t, `
int n = readint;
int d = 7;
print n / d;
print n / -3;
`)
	require.False(t, r.meta.Failed())
	assert.Equal(t, "AnyInt\nAnyInt\n", r.out)
}

func TestReadsAreMemoizedPerOccurrence(t *testing.T) {
	prog, err := parser.Parse([]byte("int a = readint; int b = readint;"))
	require.NoError(t, err)

	interp := NewInterpreter(&bytes.Buffer{}, Config{MemoizeReads: true})
	first := prog.Units[0].(*ast.Decl).Init
	second := prog.Units[1].(*ast.Decl).Init

	assert.Equal(t, sign.AnyInt, interp.RunExpr(first).Get())
	assert.Equal(t, sign.AnyInt, interp.RunExpr(first).Get())
	assert.Len(t, interp.reads, 1)
	interp.RunExpr(second)
	assert.Len(t, interp.reads, 2)

	fresh := NewInterpreter(&bytes.Buffer{}, Config{})
	fresh.RunExpr(first)
	assert.Empty(t, fresh.reads)
}

func TestConditionVerdicts(t *testing.T) {
	r := analyze(t, `
int x = 5;
int z = 0;
if (x == 0) print x;
if (!(x < 0) && z == 0) print z;
if (x < 0 || z != 0) print z;
`)
	assert.Equal(t, []sign.Value{sign.FalseBool, sign.TrueBool, sign.FalseBool}, r.traced.branches)
	assert.Equal(t, []sign.Value{sign.PosInt, sign.ZeroInt, sign.ZeroInt}, r.traced.prints)
}

func TestIterationCap(t *testing.T) {
	prog, err := parser.Parse([]byte("int x = 0; int n = readint; while (n > 0) x = x + 1;"))
	require.NoError(t, err)

	interp := NewInterpreter(&bytes.Buffer{}, Config{MaxIterations: 1})
	assert.Panics(t, func() { interp.RunProgram(prog) })
}
