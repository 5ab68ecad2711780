// Package concrete runs programs over real integers and floats.
package concrete

import (
	"fmt"
	"io"

	"signa/ast"
	"signa/runtime"

	"go.uber.org/zap"
)

type Meta = runtime.Meta[Value]

type Interpreter struct {
	Env *Environment
	Out io.Writer
	In  *Input

	log *zap.Logger
}

var _ runtime.Runtime[Value] = &Interpreter{}

func NewInterpreter(in io.Reader, out io.Writer) *Interpreter {
	return NewInterpreterWithInput(NewInput(in), out)
}

// NewInterpreterWithInput reads from in, which may be shared by several
// interpreters run one after another.
func NewInterpreterWithInput(in *Input, out io.Writer) *Interpreter {
	return &Interpreter{
		Env: NewEnvironment(nil),
		Out: out,
		In:  in,
		log: zap.L().Named("concrete"),
	}
}

func (i *Interpreter) RunProgram(p *ast.Program) Meta {
	return runtime.RunUnits[Value](i, p.Units)
}

func (i *Interpreter) RunUnit(u ast.Unit) Meta {
	return runtime.Dispatch[Value](i, u)
}

func (i *Interpreter) RunDecl(d *ast.Decl) Meta {
	var init Meta
	if d.Init != nil {
		if init = i.RunExpr(d.Init); init.Failed() {
			return init
		}
	}
	if !i.Env.Declare(d.Name) {
		panic(fmt.Sprintf("concrete: %s redeclared at %s", d.Name, d.Span))
	}
	if d.Init != nil {
		i.Env.Bind(d.Name, init.Get())
	}
	return runtime.Done[Value]()
}

func (i *Interpreter) RunStmt(s ast.Stmt) Meta {
	switch s := s.(type) {
	case *ast.AssignStmt:
		m := i.RunExpr(s.Value)
		if m.Failed() {
			return m
		}
		if !i.Env.Bind(s.Name, m.Get()) {
			return runtime.Fail[Value](runtime.UninitializedVariable, s.Span)
		}
		return runtime.Done[Value]()

	case *ast.PrintStmt:
		m := i.RunExpr(s.Value)
		if m.Failed() {
			return m
		}
		if _, err := fmt.Fprintln(i.Out, m.Get()); err != nil {
			i.log.Warn("print failed", zap.Error(err))
		}
		return runtime.Done[Value]()

	case *ast.BlockStmt:
		i.Env = NewEnvironment(i.Env)
		defer func() { i.Env = i.Env.Parent }()
		return runtime.RunUnits[Value](i, s.Units)

	case *ast.IfStmt:
		cond := i.RunCond(s.Cond)
		if cond.Failed() {
			return cond
		}
		if cond.Get().Bool {
			return i.RunStmt(s.Then)
		}
		if s.Else != nil {
			return i.RunStmt(s.Else)
		}
		return runtime.Done[Value]()

	case *ast.WhileStmt:
		for {
			cond := i.RunCond(s.Cond)
			if cond.Failed() {
				return cond
			}
			if !cond.Get().Bool {
				return runtime.Done[Value]()
			}
			if m := i.RunStmt(s.Body); m.Failed() {
				return m
			}
		}
	}

	panic("Unhandled statement at " + s.GetSpan().String())
}

func (i *Interpreter) RunExpr(e ast.Expr) Meta {
	switch e := e.(type) {
	case *ast.IntLit:
		return runtime.Ok(IntValue(e.Value))
	case *ast.FloatLit:
		return runtime.Ok(FloatValue(e.Value))

	case *ast.ReadIntExpr:
		v, ok := i.In.ReadInt()
		if !ok {
			return runtime.Fail[Value](runtime.FailedInputRead, e.Span)
		}
		return runtime.Ok(IntValue(v))

	case *ast.ReadFloatExpr:
		v, ok := i.In.ReadFloat()
		if !ok {
			return runtime.Fail[Value](runtime.FailedInputRead, e.Span)
		}
		return runtime.Ok(FloatValue(v))

	case *ast.Ident:
		v, ok := i.Env.Lookup(e.Name).Get()
		if !ok {
			return runtime.Fail[Value](runtime.UninitializedVariable, e.Span)
		}
		return runtime.Ok(v)

	case *ast.NegExpr:
		m := i.RunExpr(e.Operand)
		if m.Failed() {
			return m
		}
		v := m.Get()
		v.Int, v.Float = -v.Int, -v.Float
		return runtime.Ok(v)

	case *ast.BinaryExpr:
		left := i.RunExpr(e.Left)
		if left.Failed() {
			return left
		}
		right := i.RunExpr(e.Right)
		if right.Failed() {
			return right
		}
		return arith(e, left.Get(), right.Get())
	}

	panic("Unhandled expression at " + e.GetSpan().String())
}

type number interface {
	int64 | float64
}

func apply[T number](op ast.BinaryOp, a, b T) (T, bool) {
	switch op {
	case ast.Add:
		return a + b, true
	case ast.Sub:
		return a - b, true
	case ast.Mul:
		return a * b, true
	default:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
}

func arith(e *ast.BinaryExpr, a, b Value) Meta {
	if a.Kind != b.Kind {
		panic(fmt.Sprintf("concrete: mismatched operands at %s", e.Span))
	}

	var v Value
	var ok bool
	if a.Kind == FloatKind {
		var f float64
		f, ok = apply(e.Op, a.Float, b.Float)
		v = FloatValue(f)
	} else {
		var n int64
		n, ok = apply(e.Op, a.Int, b.Int)
		v = IntValue(n)
	}
	if !ok {
		return runtime.Fail[Value](runtime.DivisionByZero, e.Span)
	}
	return runtime.Ok(v)
}

func ordered[T number](op ast.CompareOp, a, b T) bool {
	switch op {
	case ast.Eq:
		return a == b
	case ast.Ne:
		return a != b
	case ast.Lt:
		return a < b
	case ast.Gt:
		return a > b
	case ast.Le:
		return a <= b
	default:
		return a >= b
	}
}

func compare(op ast.CompareOp, a, b Value) bool {
	if a.Kind == FloatKind {
		return ordered(op, a.Float, b.Float)
	}
	return ordered(op, a.Int, b.Int)
}

func (i *Interpreter) RunCond(c ast.Cond) Meta {
	switch c := c.(type) {
	case *ast.CompareExpr:
		left := i.RunExpr(c.Left)
		if left.Failed() {
			return left
		}
		right := i.RunExpr(c.Right)
		if right.Failed() {
			return right
		}
		return runtime.Ok(BoolValue(compare(c.Op, left.Get(), right.Get())))

	case *ast.LogicalExpr:
		left := i.RunCond(c.Left)
		if left.Failed() {
			return left
		}
		if c.Op == ast.And && !left.Get().Bool || c.Op == ast.Or && left.Get().Bool {
			return left
		}
		return i.RunCond(c.Right)

	case *ast.NotCond:
		m := i.RunCond(c.Operand)
		if m.Failed() {
			return m
		}
		return runtime.Ok(BoolValue(!m.Get().Bool))
	}

	panic("Unhandled condition at " + c.GetSpan().String())
}
