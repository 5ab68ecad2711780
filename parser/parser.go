// Package parser turns source text into an *ast.Program.
package parser

import (
	"strconv"

	"signa/ast"
	"signa/runtime"
)

type parser struct {
	toks []token
	pos  int
}

// Parse parses a whole program. Failures are *runtime.Error values of kind
// runtime.ParseError.
func Parse(src []byte) (*ast.Program, error) {
	toks, header, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	prog := &ast.Program{Documentation: ast.CommentText(header)}
	for p.peek().kind != tokEOF {
		u, err := p.unit()
		if err != nil {
			return nil, err
		}
		prog.Units = append(prog.Units, u)
	}
	prog.Span = ast.Span{End: p.peek().span.End}
	return prog, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) bump() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind tokenKind) (token, bool) {
	if p.peek().kind == kind {
		return p.bump(), true
	}
	return token{}, false
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if t, ok := p.accept(kind); ok {
		return t, nil
	}
	return token{}, p.errorf("expected %s %s, found %s", kind, what, p.peek().describe())
}

func (p *parser) errorf(format string, a ...interface{}) error {
	return runtime.Errorf(runtime.ParseError, p.peek().span, format, a...)
}

func (p *parser) unit() (ast.Unit, error) {
	switch p.peek().kind {
	case tokIntKw, tokFloatKw:
		return p.decl()
	default:
		return p.stmt()
	}
}

func (p *parser) decl() (*ast.Decl, error) {
	kw := p.bump()
	d := &ast.Decl{Type: ast.IntType}
	if kw.kind == tokFloatKw {
		d.Type = ast.FloatType
	}

	name, err := p.expect(tokIdent, "after type")
	if err != nil {
		return nil, err
	}
	d.Name = name.text

	if _, ok := p.accept(tokAssign); ok {
		d.Init, err = p.expr()
		if err != nil {
			return nil, err
		}
	}

	semi, err := p.expect(tokSemi, "after declaration")
	if err != nil {
		return nil, err
	}
	d.Span = kw.span.To(semi.span)
	return d, nil
}

func (p *parser) stmt() (ast.Stmt, error) {
	start := p.peek()
	switch start.kind {
	case tokIdent:
		p.bump()
		if _, err := p.expect(tokAssign, "in assignment"); err != nil {
			return nil, err
		}
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		semi, err := p.expect(tokSemi, "after assignment")
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: start.text, Value: value, Span: start.span.To(semi.span)}, nil

	case tokPrint:
		p.bump()
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		semi, err := p.expect(tokSemi, "after print")
		if err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Value: value, Span: start.span.To(semi.span)}, nil

	case tokLBrace:
		p.bump()
		b := &ast.BlockStmt{}
		for p.peek().kind != tokRBrace {
			if p.peek().kind == tokEOF {
				return nil, p.errorf("unterminated block")
			}
			u, err := p.unit()
			if err != nil {
				return nil, err
			}
			b.Units = append(b.Units, u)
		}
		b.Span = start.span.To(p.bump().span)
		return b, nil

	case tokIf:
		p.bump()
		cond, err := p.header("if")
		if err != nil {
			return nil, err
		}
		then, err := p.stmt()
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Cond: cond, Then: then, Span: start.span.To(then.GetSpan())}
		if _, ok := p.accept(tokElse); ok {
			s.Else, err = p.stmt()
			if err != nil {
				return nil, err
			}
			s.Span = start.span.To(s.Else.GetSpan())
		}
		return s, nil

	case tokWhile:
		p.bump()
		cond, err := p.header("while")
		if err != nil {
			return nil, err
		}
		body, err := p.stmt()
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: body, Span: start.span.To(body.GetSpan())}, nil
	}

	return nil, p.errorf("expected statement, found %s", start.describe())
}

func (p *parser) header(what string) (ast.Cond, error) {
	if _, err := p.expect(tokLParen, "after "+what); err != nil {
		return nil, err
	}
	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "after "+what+" condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *parser) cond() (ast.Cond, error) {
	left, err := p.conj()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(tokOr); !ok {
			return left, nil
		}
		right, err := p.conj()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Op: ast.Or, Left: left, Right: right, Span: left.GetSpan().To(right.GetSpan())}
	}
}

func (p *parser) conj() (ast.Cond, error) {
	left, err := p.negation()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(tokAnd); !ok {
			return left, nil
		}
		right, err := p.negation()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Op: ast.And, Left: left, Right: right, Span: left.GetSpan().To(right.GetSpan())}
	}
}

var comparisons = map[tokenKind]ast.CompareOp{
	tokEq: ast.Eq,
	tokNe: ast.Ne,
	tokLt: ast.Lt,
	tokGt: ast.Gt,
	tokLe: ast.Le,
	tokGe: ast.Ge,
}

func (p *parser) negation() (ast.Cond, error) {
	start := p.peek()
	if _, ok := p.accept(tokNot); ok {
		operand, err := p.negation()
		if err != nil {
			return nil, err
		}
		return &ast.NotCond{Operand: operand, Span: start.span.To(operand.GetSpan())}, nil
	}

	// A parenthesis opens either an arithmetic operand or a nested
	// condition; try the comparison first and fall back.
	mark := p.pos
	cmp, cmpErr := p.comparison()
	if cmpErr == nil || start.kind != tokLParen {
		return cmp, cmpErr
	}
	cmpReached := p.pos

	p.pos = mark
	p.bump()
	inner, err := p.cond()
	if err == nil {
		var closing token
		closing, err = p.expect(tokRParen, "after condition")
		if err == nil {
			return withSpan(inner, start.span.To(closing.span)), nil
		}
	}
	if p.pos < cmpReached {
		return nil, cmpErr
	}
	return nil, err
}

// withSpan widens a parenthesized condition's span to cover the parentheses.
func withSpan(c ast.Cond, span ast.Span) ast.Cond {
	switch c := c.(type) {
	case *ast.CompareExpr:
		c.Span = span
	case *ast.LogicalExpr:
		c.Span = span
	case *ast.NotCond:
		c.Span = span
	}
	return c
}

func (p *parser) comparison() (ast.Cond, error) {
	left, err := p.expr()
	if err != nil {
		return nil, err
	}
	op, ok := comparisons[p.peek().kind]
	if !ok {
		return nil, p.errorf("expected comparison operator, found %s", p.peek().describe())
	}
	p.bump()
	right, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.CompareExpr{Op: op, Left: left, Right: right, Span: left.GetSpan().To(right.GetSpan())}, nil
}

func (p *parser) expr() (ast.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().kind {
		case tokPlus:
			op = ast.Add
		case tokMinus:
			op = ast.Sub
		default:
			return left, nil
		}
		p.bump()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: left.GetSpan().To(right.GetSpan())}
	}
}

func (p *parser) term() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().kind {
		case tokStar:
			op = ast.Mul
		case tokSlash:
			op = ast.Div
		default:
			return left, nil
		}
		p.bump()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: left.GetSpan().To(right.GetSpan())}
	}
}

func (p *parser) unary() (ast.Expr, error) {
	start := p.peek()
	if _, ok := p.accept(tokMinus); ok {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.NegExpr{Operand: operand, Span: start.span.To(operand.GetSpan())}, nil
	}
	return p.primary()
}

func (p *parser) primary() (ast.Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokInt:
		p.bump()
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, runtime.Errorf(runtime.ParseError, t.span, "integer literal %s out of range", t.text)
		}
		return &ast.IntLit{Value: v, Span: t.span}, nil
	case tokFloat:
		p.bump()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, runtime.Errorf(runtime.ParseError, t.span, "float literal %s out of range", t.text)
		}
		return &ast.FloatLit{Value: v, Text: t.text, Span: t.span}, nil
	case tokIdent:
		p.bump()
		return &ast.Ident{Name: t.text, Span: t.span}, nil
	case tokReadInt:
		p.bump()
		return &ast.ReadIntExpr{Span: t.span}, nil
	case tokReadFloat:
		p.bump()
		return &ast.ReadFloatExpr{Span: t.span}, nil
	case tokLParen:
		p.bump()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "after expression"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.errorf("expected expression, found %s", t.describe())
}
