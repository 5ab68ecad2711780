// Package format prints programs back as canonical source.
package format

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"signa/ast"
	"signa/backends"

	"github.com/urfave/cli/v2"
)

type FormatBackend struct{}

func init() {
	backends.RegisterBackend(FormatBackend{})
}

func (FormatBackend) GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Print programs in canonical form",
		ArgsUsage: "[file...]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "in-place",
				Usage:   "Rewrite the files instead of printing them",
				Aliases: []string{"i"},
			},
		}, backends.StandardFlags...),
		Action: func(cCtx *cli.Context) error {
			_, progs, err := backends.Load(cCtx)
			if err != nil {
				return err
			}
			for _, prog := range progs {
				out := Program(prog.AST)
				if cCtx.Bool("in-place") {
					if err := os.WriteFile(prog.Path, []byte(out), 0o644); err != nil {
						return fmt.Errorf("failed to write %s: %w", prog.Path, err)
					}
					continue
				}
				fmt.Fprint(cCtx.App.Writer, out)
			}
			return nil
		},
	}
}

type printer struct {
	backends.Filebuilder
}

// Program renders p, including its documentation comment.
func Program(p *ast.Program) string {
	var pr printer
	if doc := strings.TrimRight(p.Documentation, "\n"); doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			if line == "" {
				pr.Add("//")
			} else {
				pr.Add("// %s", line)
			}
		}
		pr.AddNL()
	}
	for _, u := range p.Units {
		pr.AddE("")
		pr.unit(u)
		pr.AddNL()
	}
	return pr.String()
}

func (p *printer) unit(u ast.Unit) {
	switch u := u.(type) {
	case *ast.Decl:
		if u.Init == nil {
			p.AddK("%s %s;", u.Type, u.Name)
		} else {
			p.AddK("%s %s = %s;", u.Type, u.Name, Expr(u.Init))
		}
	case ast.Stmt:
		p.stmt(u)
	}
}

// stmt writes s starting mid-line and leaves the cursor at the end of its
// last line.
func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.AssignStmt:
		p.AddK("%s = %s;", s.Name, Expr(s.Value))
	case *ast.PrintStmt:
		p.AddK("print %s;", Expr(s.Value))
	case *ast.BlockStmt:
		p.AddK("{")
		p.AddNL()
		p.Einzug++
		for _, u := range s.Units {
			p.AddE("")
			p.unit(u)
			p.AddNL()
		}
		p.Einzug--
		p.AddE("}")
	case *ast.IfStmt:
		p.AddK("if (%s) ", Cond(s.Cond))
		p.stmt(s.Then)
		if s.Else == nil {
			return
		}
		if _, ok := s.Then.(*ast.BlockStmt); ok {
			p.AddK(" else ")
		} else {
			p.AddNL()
			p.AddE("else ")
		}
		p.stmt(s.Else)
	case *ast.WhileStmt:
		p.AddK("while (%s) ", Cond(s.Cond))
		p.stmt(s.Body)
	default:
		panic("Unhandled statement " + s.GetSpan().String())
	}
}

func precedence(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		if e.Op == ast.Add || e.Op == ast.Sub {
			return 1
		}
		return 2
	case *ast.NegExpr:
		return 3
	default:
		return 4
	}
}

func wrap(s string, paren bool) string {
	if paren {
		return "(" + s + ")"
	}
	return s
}

func floatText(f *ast.FloatLit) string {
	if f.Text != "" {
		return f.Text
	}
	s := strconv.FormatFloat(f.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Expr renders e with only the parentheses its structure needs.
func Expr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *ast.FloatLit:
		return floatText(e)
	case *ast.Ident:
		return e.Name
	case *ast.ReadIntExpr:
		return "readint"
	case *ast.ReadFloatExpr:
		return "readfloat"
	case *ast.NegExpr:
		return "-" + wrap(Expr(e.Operand), precedence(e.Operand) < 3)
	case *ast.BinaryExpr:
		prec := precedence(e)
		left := wrap(Expr(e.Left), precedence(e.Left) < prec)
		right := wrap(Expr(e.Right), precedence(e.Right) <= prec)
		return fmt.Sprintf("%s %s %s", left, e.Op, right)
	}
	panic("Unhandled expression " + e.GetSpan().String())
}

func condPrecedence(c ast.Cond) int {
	switch c := c.(type) {
	case *ast.LogicalExpr:
		if c.Op == ast.Or {
			return 1
		}
		return 2
	case *ast.NotCond:
		return 3
	default:
		return 4
	}
}

// Cond renders c with only the parentheses its structure needs, except
// that a negated comparison is always parenthesized.
func Cond(c ast.Cond) string {
	switch c := c.(type) {
	case *ast.CompareExpr:
		return fmt.Sprintf("%s %s %s", Expr(c.Left), c.Op, Expr(c.Right))
	case *ast.NotCond:
		_, nested := c.Operand.(*ast.NotCond)
		return "!" + wrap(Cond(c.Operand), !nested)
	case *ast.LogicalExpr:
		prec := condPrecedence(c)
		left := wrap(Cond(c.Left), condPrecedence(c.Left) < prec)
		right := wrap(Cond(c.Right), condPrecedence(c.Right) <= prec)
		return fmt.Sprintf("%s %s %s", left, c.Op, right)
	}
	panic("Unhandled condition " + c.GetSpan().String())
}
