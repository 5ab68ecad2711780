package concrete

import (
	"bytes"
	"strings"
	"testing"

	"signa/parser"
	"signa/runtime"
	"signa/typechecking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src, stdin string) (Meta, string) {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	_, err = typechecking.Check(prog)
	require.NoError(t, err)

	var out bytes.Buffer
	m := NewInterpreter(strings.NewReader(stdin), &out).RunProgram(prog)
	return m, out.String()
}

func TestRun(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		stdin string
		out   string
		kind  runtime.ErrorKind
	}{
		{"arithmetic", "int x = 7; print x / 2; print -x * 3 - 1; print x - 10;", "", "3\n-22\n-3\n", runtime.Success},
		{"floats", "float f = 2.5; print f * 2.0; print 1.0 / 3.0; print 10000000.0; print 0.0001;", "", "5.0\n0.3333333333333333\n1.0E7\n1.0E-4\n", runtime.Success},
		{"reads", "int a = readint; float b = readfloat; print a + 1; print b;", "41 2", "42\n2.0\n", runtime.Success},
		{"reads are fresh", "int i = 0; int s = 0; while (i < 3) { s = s + readint; i = i + 1; } print s;", "1 2 3", "6\n", runtime.Success},
		{"if else", "int x = readint; if (x > 0) print 1; else print 2;", "-5", "2\n", runtime.Success},
		{"countdown", "int n = 3; while (n > 0) { print n; n = n - 1; }", "", "3\n2\n1\n", runtime.Success},
		{"short circuit", "int x = 0; if (x != 0 && 10 / x > 1) print 1; else print 0;", "", "0\n", runtime.Success},
		{"not", "int x = 0; if (!(x == 0) || x > 5) print 1; else print 0;", "", "0\n", runtime.Success},
		{"shadowing", "int x = 1; { int x = 2; print x; } print x;", "", "2\n1\n", runtime.Success},
		{"integer division by zero", "int x = 0; print 1; print 5 / x; print 2;", "", "1\n", runtime.DivisionByZero},
		{"float division by zero", "float x = 0.0; print 5.0 / x;", "", "", runtime.DivisionByZero},
		{"missing input", "int a = readint; print a;", "", "", runtime.FailedInputRead},
		{"malformed int", "int a = readint;", "1.5", "", runtime.FailedInputRead},
		{"float accepts int token", "float a = readfloat; print a;", "3", "3.0\n", runtime.Success},
		{"malformed float", "float a = readfloat;", "abc", "", runtime.FailedInputRead},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, out := run(t, c.src, c.stdin)
			assert.Equal(t, c.kind, m.Kind)
			assert.Equal(t, c.out, out)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		0:          "0.0",
		1:          "1.0",
		-2.5:       "-2.5",
		0.001:      "0.001",
		1234567.0:  "1234567.0",
		1e7:        "1.0E7",
		1.5e-7:     "1.5E-7",
		-3.25e12:   "-3.25E12",
		123456789:  "1.23456789E8",
		0.00012345: "1.2345E-4",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatFloat(in), "%g", in)
	}
}

func TestUninitializedAtRuntime(t *testing.T) {
	prog, err := parser.Parse([]byte("int x; print x;"))
	require.NoError(t, err)

	m := NewInterpreter(strings.NewReader(""), &bytes.Buffer{}).RunProgram(prog)
	assert.Equal(t, runtime.UninitializedVariable, m.Kind)
}
