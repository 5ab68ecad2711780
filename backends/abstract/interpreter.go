// Package abstract runs programs over the sign domain, covering every
// concrete execution at once.
package abstract

import (
	"fmt"
	"io"

	"signa/ast"
	"signa/runtime"
	"signa/sign"

	"go.uber.org/zap"
)

type Meta = runtime.Meta[sign.Value]

type Config struct {
	// MaxIterations caps the rounds of any one while loop. Zero means no
	// cap; the lattice height bounds the rounds anyway.
	MaxIterations int

	// MemoizeReads makes each read expression yield one value for the
	// lifetime of the interpreter.
	MemoizeReads bool
}

// Tracer observes the analysis. Verdicts are the sign of a condition on
// the state reaching it; they never prune a branch.
type Tracer interface {
	Branch(s *ast.IfStmt, verdict sign.Value)
	Round(s *ast.WhileStmt, round int, verdict sign.Value, stable bool)
	Print(s *ast.PrintStmt, value sign.Value)
}

type Interpreter struct {
	Env    *Environment
	Out    io.Writer
	Tracer Tracer

	config Config
	reads  map[ast.Expr]sign.Value
	log    *zap.Logger
}

var _ runtime.Runtime[sign.Value] = &Interpreter{}

func NewInterpreter(out io.Writer, config Config) *Interpreter {
	return &Interpreter{
		Env:    NewEnvironment(),
		Out:    out,
		config: config,
		reads:  map[ast.Expr]sign.Value{},
		log:    zap.L().Named("abstract"),
	}
}

func (i *Interpreter) RunProgram(p *ast.Program) Meta {
	return runtime.RunUnits[sign.Value](i, p.Units)
}

func (i *Interpreter) RunUnit(u ast.Unit) Meta {
	return runtime.Dispatch[sign.Value](i, u)
}

func domainOf(t ast.Type) sign.Domain {
	if t == ast.FloatType {
		return sign.Float
	}
	return sign.Int
}

func (i *Interpreter) RunDecl(d *ast.Decl) Meta {
	if !i.Env.Declare(d.Name, domainOf(d.Type)) {
		panic(fmt.Sprintf("abstract: %s redeclared at %s", d.Name, d.Span))
	}
	if d.Init == nil {
		return runtime.Done[sign.Value]()
	}
	m := i.RunExpr(d.Init)
	if m.Failed() {
		return m
	}
	i.Env.Bind(d.Name, m.Get())
	return runtime.Done[sign.Value]()
}

func (i *Interpreter) RunStmt(s ast.Stmt) Meta {
	switch s := s.(type) {
	case *ast.AssignStmt:
		m := i.RunExpr(s.Value)
		if m.Failed() {
			return m
		}
		i.Env.Bind(s.Name, m.Get())
		return runtime.Done[sign.Value]()

	case *ast.PrintStmt:
		m := i.RunExpr(s.Value)
		if m.Failed() {
			return m
		}
		if i.Tracer != nil {
			i.Tracer.Print(s, m.Get())
		}
		if _, err := fmt.Fprintln(i.Out, m.Get()); err != nil {
			i.log.Warn("print failed", zap.Error(err))
		}
		return runtime.Done[sign.Value]()

	case *ast.BlockStmt:
		i.Env.NewScope()
		defer i.Env.ExitScope()
		return runtime.RunUnits[sign.Value](i, s.Units)

	case *ast.IfStmt:
		return i.runIf(s)

	case *ast.WhileStmt:
		return i.runWhile(s)
	}

	panic("Unhandled statement at " + s.GetSpan().String())
}

// branch runs s on a fork of the environment and hands back the fork.
func (i *Interpreter) branch(s ast.Stmt) (*Environment, Meta) {
	i.Env.Fork()
	m := i.RunStmt(s)
	return i.Env.Restore(), m
}

func (i *Interpreter) runIf(s *ast.IfStmt) Meta {
	verdict := i.RunCond(s.Cond)
	if verdict.Failed() {
		return verdict
	}
	if i.Tracer != nil {
		i.Tracer.Branch(s, verdict.Get())
	}

	thenEnv, m := i.branch(s.Then)
	if m.Failed() {
		return m
	}

	if s.Else == nil {
		i.Env.Join(thenEnv)
		i.log.Debug("joined if", zap.Stringer("at", s.Span), zap.Stringer("verdict", verdict.Get()))
		return runtime.Done[sign.Value]()
	}

	elseEnv, m := i.branch(s.Else)
	if m.Failed() {
		return m
	}
	thenEnv.Join(elseEnv)
	i.Env = adopt(i.Env, thenEnv)
	i.log.Debug("joined if/else", zap.Stringer("at", s.Span), zap.Stringer("verdict", verdict.Get()))
	return runtime.Done[sign.Value]()
}

// adopt makes branch the live state of env, keeping env's identity so
// callers holding it see the update.
func adopt(env, branch *Environment) *Environment {
	env.scopes = branch.scopes
	return env
}

func (i *Interpreter) runWhile(s *ast.WhileStmt) Meta {
	for round := 1; ; round++ {
		if i.config.MaxIterations > 0 && round > i.config.MaxIterations {
			panic(fmt.Sprintf("abstract: loop at %s did not stabilize in %d rounds", s.Span, i.config.MaxIterations))
		}

		verdict := i.RunCond(s.Cond)
		if verdict.Failed() {
			return verdict
		}

		bodyEnv, m := i.branch(s.Body)
		if m.Failed() {
			return m
		}

		// A body whose result is already covered by the loop head state
		// changes nothing on join, so it is as good as identical.
		stable := i.Env.Identical(bodyEnv)
		if !stable {
			stable = !i.Env.Join(bodyEnv)
		}
		if i.Tracer != nil {
			i.Tracer.Round(s, round, verdict.Get(), stable)
		}
		i.log.Debug("loop round",
			zap.Stringer("at", s.Span),
			zap.Int("round", round),
			zap.Stringer("verdict", verdict.Get()),
			zap.Bool("stable", stable),
		)
		if stable {
			return runtime.Done[sign.Value]()
		}
	}
}

func (i *Interpreter) read(e ast.Expr, d sign.Domain) Meta {
	if !i.config.MemoizeReads {
		return runtime.Ok(sign.Top(d))
	}
	if v, ok := i.reads[e]; ok {
		return runtime.Ok(v)
	}
	v := sign.Top(d)
	i.reads[e] = v
	return runtime.Ok(v)
}

func (i *Interpreter) RunExpr(e ast.Expr) Meta {
	switch e := e.(type) {
	case *ast.IntLit:
		return runtime.Ok(sign.FromInt(e.Value))
	case *ast.FloatLit:
		return runtime.Ok(sign.FromFloat(e.Value))
	case *ast.ReadIntExpr:
		return i.read(e, sign.Int)
	case *ast.ReadFloatExpr:
		return i.read(e, sign.Float)

	case *ast.Ident:
		v, ok := i.Env.Lookup(e.Name).Get()
		if !ok {
			return runtime.Fail[sign.Value](runtime.UninitializedVariable, e.Span)
		}
		return runtime.Ok(v)

	case *ast.NegExpr:
		m := i.RunExpr(e.Operand)
		if m.Failed() {
			return m
		}
		return runtime.Ok(sign.Neg(m.Get()))

	case *ast.BinaryExpr:
		left := i.RunExpr(e.Left)
		if left.Failed() {
			return left
		}
		right := i.RunExpr(e.Right)
		if right.Failed() {
			return right
		}
		var v sign.Value
		switch e.Op {
		case ast.Add:
			v = sign.Add(left.Get(), right.Get())
		case ast.Sub:
			v = sign.Sub(left.Get(), right.Get())
		case ast.Mul:
			v = sign.Mul(left.Get(), right.Get())
		case ast.Div:
			v = sign.Div(left.Get(), right.Get())
		}
		if v == sign.Illegal {
			i.log.Debug("divisor may be zero", zap.Stringer("at", e.Span), zap.Stringer("divisor", right.Get()))
			return runtime.Fail[sign.Value](runtime.DivisionByZero, e.Span)
		}
		return runtime.Ok(v)
	}

	panic("Unhandled expression at " + e.GetSpan().String())
}

var comparisons = map[ast.CompareOp]func(a, b sign.Value) sign.Value{
	ast.Eq: sign.Eq,
	ast.Ne: sign.Ne,
	ast.Lt: sign.Lt,
	ast.Gt: sign.Gt,
	ast.Le: sign.Le,
	ast.Ge: sign.Ge,
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
		return runtime.Ok(comparisons[c.Op](left.Get(), right.Get()))

	case *ast.LogicalExpr:
		left := i.RunCond(c.Left)
		if left.Failed() {
			return left
		}
		right := i.RunCond(c.Right)
		if right.Failed() {
			return right
		}
		if c.Op == ast.Or {
			return runtime.Ok(sign.Or(left.Get(), right.Get()))
		}
		return runtime.Ok(sign.And(left.Get(), right.Get()))

	case *ast.NotCond:
		m := i.RunCond(c.Operand)
		if m.Failed() {
			return m
		}
		return runtime.Ok(sign.Not(m.Get()))
	}

	panic("Unhandled condition at " + c.GetSpan().String())
}
