package runtime

import (
	"signa/ast"

	"github.com/samber/mo"
)

// Meta is the outcome of evaluating one node: either success with an
// optional value, or a failure of some kind. Statements succeed without a
// value; expressions and conditions succeed with one.
type Meta[V any] struct {
	Value mo.Option[V]
	Kind  ErrorKind
	Span  ast.Span
}

func Ok[V any](v V) Meta[V] {
	return Meta[V]{Value: mo.Some(v)}
}

func Done[V any]() Meta[V] {
	return Meta[V]{Value: mo.None[V]()}
}

func Fail[V any](kind ErrorKind, span ast.Span) Meta[V] {
	return Meta[V]{Value: mo.None[V](), Kind: kind, Span: span}
}

func (m Meta[V]) Failed() bool {
	return m.Kind != Success
}

// Get returns the value of a successful expression. It panics when there
// is none, which means a statement result was used as an expression.
func (m Meta[V]) Get() V {
	return m.Value.MustGet()
}

// Err converts a failure into an *Error, or returns nil.
func (m Meta[V]) Err() error {
	if !m.Failed() {
		return nil
	}
	return &Error{Kind: m.Kind, Span: m.Span}
}

// Runtime is the per-node dispatch surface shared by every interpreter.
type Runtime[V any] interface {
	RunProgram(p *ast.Program) Meta[V]
	RunUnit(u ast.Unit) Meta[V]
	RunDecl(d *ast.Decl) Meta[V]
	RunStmt(s ast.Stmt) Meta[V]
	RunExpr(e ast.Expr) Meta[V]
	RunCond(c ast.Cond) Meta[V]
}

// RunUnits runs units in order through r, stopping at the first failure.
func RunUnits[V any](r Runtime[V], units []ast.Unit) Meta[V] {
	for _, u := range units {
		if m := r.RunUnit(u); m.Failed() {
			return m
		}
	}
	return Done[V]()
}

// Dispatch routes a unit to RunDecl or RunStmt.
func Dispatch[V any](r Runtime[V], u ast.Unit) Meta[V] {
	switch u := u.(type) {
	case *ast.Decl:
		return r.RunDecl(u)
	case ast.Stmt:
		return r.RunStmt(u)
	}
	panic("Unhandled unit " + u.GetSpan().String())
}
