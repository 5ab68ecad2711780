// Package typechecking validates a program before it runs: declarations
// are unique per scope, types agree, and every variable is definitely
// assigned before it is read.
package typechecking

import (
	"signa/ast"
	"signa/runtime"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Context struct {
	Environment *Environment

	// Variables lists every declaration seen, in source order.
	Variables []*Variable

	// Types records the type of every checked expression.
	Types map[ast.Expr]Type

	assigned map[*Variable]bool
}

func NewContext() *Context {
	return &Context{
		Environment: World,
		Types:       map[ast.Expr]Type{},
		assigned:    map[*Variable]bool{},
	}
}

func (c *Context) PushEnvironment() *Environment {
	c.Environment = &Environment{map[string]Object{}, c.Environment}
	return c.Environment
}

func (c *Context) PopEnvironment() *Environment {
	a := c.Environment
	c.Environment = c.Environment.Parent
	return a
}

// Check validates a program, returning the first problem in program order
// as a *runtime.Error.
func Check(p *ast.Program) (*Context, error) {
	ctx := NewContext()
	if err := ctx.Program(p); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (c *Context) Program(p *ast.Program) error {
	c.PushEnvironment()
	defer c.PopEnvironment()

	return c.units(p.Units)
}

func (c *Context) units(units []ast.Unit) error {
	for _, u := range units {
		var err error
		switch u := u.(type) {
		case *ast.Decl:
			err = c.decl(u)
		case ast.Stmt:
			err = c.stmt(u)
		default:
			panic("Unhandled unit kind")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) decl(d *ast.Decl) error {
	if _, exists := c.Environment.Items[d.Name]; exists {
		return runtime.Errorf(runtime.StaticCheckError, d.Span, "%s is already declared in this scope", d.Name)
	}

	v := &Variable{Name: d.Name, Type: TypeOf(d.Type), Decl: d, Depth: c.Environment.Depth()}

	// The initializer cannot see the variable it initializes.
	if d.Init != nil {
		typ, err := c.expr(d.Init)
		if err != nil {
			return err
		}
		if typ != v.Type {
			return runtime.Errorf(runtime.StaticCheckError, d.Init.GetSpan(), "cannot initialize %s %s with %s", v.Type, d.Name, typ)
		}
	}

	c.Environment.Items[d.Name] = v
	c.Variables = append(c.Variables, v)
	if d.Init != nil {
		c.assigned[v] = true
	}
	return nil
}

func (c *Context) lookup(name string, span ast.Span) (*Variable, error) {
	if object, found := c.Environment.Search(name); found {
		if v, ok := object.(*Variable); ok {
			return v, nil
		}
	}
	return nil, runtime.Errorf(runtime.UninitializedVariable, span, "%s is not declared", name)
}

// branch checks s against a copy of the assignment state and returns the
// variables it definitely assigns.
func (c *Context) branch(s ast.Stmt) (map[*Variable]bool, error) {
	saved := c.assigned
	c.assigned = make(map[*Variable]bool, len(saved))
	for v := range saved {
		c.assigned[v] = true
	}
	defer func() { c.assigned = saved }()

	if err := c.stmt(s); err != nil {
		return nil, err
	}
	return c.assigned, nil
}

func (c *Context) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.AssignStmt:
		v, err := c.lookup(s.Name, s.Span)
		if err != nil {
			return err
		}
		typ, err := c.expr(s.Value)
		if err != nil {
			return err
		}
		if typ != v.Type {
			return runtime.Errorf(runtime.StaticCheckError, s.Value.GetSpan(), "cannot assign %s to %s %s", typ, v.Type, s.Name)
		}
		c.assigned[v] = true
		return nil

	case *ast.PrintStmt:
		_, err := c.expr(s.Value)
		return err

	case *ast.BlockStmt:
		c.PushEnvironment()
		defer c.PopEnvironment()
		return c.units(s.Units)

	case *ast.IfStmt:
		if err := c.cond(s.Cond); err != nil {
			return err
		}
		thenAssigned, err := c.branch(s.Then)
		if err != nil {
			return err
		}
		if s.Else == nil {
			return nil
		}
		elseAssigned, err := c.branch(s.Else)
		if err != nil {
			return err
		}
		both := lo.Filter(lo.Keys(thenAssigned), func(v *Variable, _ int) bool {
			return elseAssigned[v]
		})
		for _, v := range both {
			c.assigned[v] = true
		}
		return nil

	case *ast.WhileStmt:
		if err := c.cond(s.Cond); err != nil {
			return err
		}
		_, err := c.branch(s.Body)
		return err
	}

	panic("Unhandled statement kind")
}

func (c *Context) expr(e ast.Expr) (Type, error) {
	typ, err := c.exprType(e)
	if err != nil {
		return nil, err
	}
	c.Types[e] = typ
	return typ, nil
}

func (c *Context) exprType(e ast.Expr) (Type, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return Int, nil
	case *ast.FloatLit:
		return Float, nil
	case *ast.ReadIntExpr:
		return Int, nil
	case *ast.ReadFloatExpr:
		return Float, nil

	case *ast.Ident:
		v, err := c.lookup(e.Name, e.Span)
		if err != nil {
			return nil, err
		}
		if !c.assigned[v] {
			zap.L().Debug("read before assignment", zap.String("name", e.Name), zap.Stringer("at", e.Span))
			return nil, runtime.Errorf(runtime.UninitializedVariable, e.Span, "%s may be read before it is assigned", e.Name)
		}
		return v.Type, nil

	case *ast.NegExpr:
		return c.expr(e.Operand)

	case *ast.BinaryExpr:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(e.Right)
		if err != nil {
			return nil, err
		}
		if left != right {
			return nil, runtime.Errorf(runtime.StaticCheckError, e.Span, "mismatched operands %s %s %s", left, e.Op, right)
		}
		return left, nil
	}

	panic("Unhandled expression kind")
}

func (c *Context) cond(cond ast.Cond) error {
	switch cond := cond.(type) {
	case *ast.CompareExpr:
		left, err := c.expr(cond.Left)
		if err != nil {
			return err
		}
		right, err := c.expr(cond.Right)
		if err != nil {
			return err
		}
		if left != right {
			return runtime.Errorf(runtime.StaticCheckError, cond.Span, "mismatched operands %s %s %s", left, cond.Op, right)
		}
		return nil

	case *ast.LogicalExpr:
		if err := c.cond(cond.Left); err != nil {
			return err
		}
		return c.cond(cond.Right)

	case *ast.NotCond:
		return c.cond(cond.Operand)
	}

	panic("Unhandled condition kind")
}
