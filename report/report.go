// Package report runs the sign analysis over a program and writes up what
// it found as markdown and HTML.
package report

import (
	"bytes"
	"strings"

	"signa/ast"
	"signa/backends"
	"signa/backends/abstract"
	"signa/backends/format"
	"signa/modules"
	"signa/runtime"
	"signa/sign"
	"signa/typechecking"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Variable pairs a declaration with its sign once the program is done.
// Variables declared inside blocks have no final value.
type Variable struct {
	*typechecking.Variable
	Final mo.Option[sign.Value]
}

type Report struct {
	Program *modules.Program
	Doc     *ast.ProgramDocumentation

	Trace     *Recorder
	Output    string
	Variables []Variable

	// Failure is set when the analysis stopped early.
	Failure *runtime.Error
}

// Build analyzes prog with config and collects the results.
func Build(prog *modules.Program, config abstract.Config) *Report {
	r := &Report{
		Program: prog,
		Doc:     ast.FromDocumentationComment(prog.AST.Documentation),
		Trace:   &Recorder{},
	}

	var out bytes.Buffer
	interp := abstract.NewInterpreter(&out, config)
	interp.Tracer = r.Trace

	m := interp.RunProgram(prog.AST)
	if m.Failed() {
		r.Failure = &runtime.Error{Kind: m.Kind, Span: m.Span}
	}
	r.Output = out.String()

	final := interp.Env.Bound()
	r.Variables = lo.Map(prog.Context.Variables, func(v *typechecking.Variable, _ int) Variable {
		if val, ok := final[v.Name]; ok && v.Depth == 0 {
			return Variable{v, mo.Some(val)}
		}
		return Variable{v, mo.None[sign.Value]()}
	})

	return r
}

func (v Variable) FinalText() string {
	if val, ok := v.Final.Get(); ok {
		return val.String()
	}
	if v.Depth > 0 {
		return "out of scope"
	}
	return "unbound"
}

func code(s string) string {
	return "`" + s + "`"
}

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	f := backends.Filebuilder{Indent: "  "}

	f.Add("# %s", r.Program.Name)
	f.AddNL()
	if doc := strings.TrimSpace(r.Program.AST.Documentation); doc != "" {
		f.Add("%s", doc)
		f.AddNL()
	}

	if r.Failure != nil {
		f.Add("**Analysis stopped:** %s at %s", r.Failure.Kind, r.Failure.Span)
		f.AddNL()
	}

	if len(r.Trace.Prints) > 0 {
		f.Add("## Output")
		f.AddNL()
		for _, p := range r.Trace.Prints {
			f.Add("- %s %s: %s", p.Stmt.Span, code("print "+format.Expr(p.Stmt.Value)), p.Value)
		}
		f.AddNL()
	}

	if len(r.Trace.Branches) > 0 {
		f.Add("## Branches")
		f.AddNL()
		for _, b := range r.Trace.Branches {
			f.Add("- %s %s: %s", b.Stmt.Span, code("if ("+format.Cond(b.Stmt.Cond)+")"), Describe(b.Verdict))
		}
		f.AddNL()
	}

	if len(r.Trace.Loops) > 0 {
		f.Add("## Loops")
		f.AddNL()
		for _, l := range r.Trace.Loops {
			f.AddI("- %s %s", l.Stmt.Span, code("while ("+format.Cond(l.Stmt.Cond)+")"))
			for _, round := range l.Rounds {
				if round.Stable {
					f.Add("- round %d: %s, stable", round.Round, Describe(round.Verdict))
				} else {
					f.Add("- round %d: %s", round.Round, Describe(round.Verdict))
				}
			}
			f.Einzug--
		}
		f.AddNL()
	}

	f.Add("## Variables")
	f.AddNL()
	f.Add("| Name | Type | Declared | Sign |")
	f.Add("| --- | --- | --- | --- |")
	for _, v := range r.Variables {
		f.Add("| %s | %s | %s | %s |", v.Name, v.Type, v.Decl.Span, v.FinalText())
	}

	return f.String()
}
