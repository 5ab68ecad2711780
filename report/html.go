package report

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"signa/ast/extension"
	"signa/backends/format"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
)

type resolver struct {
	report *Report
}

// ResolveVar implements extension.VarResolver
func (r *resolver) ResolveVar(n *extension.VarLinkNode) (destination []byte, err error) {
	for _, v := range r.report.Variables {
		if v.Name == string(n.Name) {
			return []byte("#" + anchor(v.Name)), nil
		}
	}
	return nil, nil
}

var _ extension.VarResolver = &resolver{}

func anchor(name string) string {
	return "var-" + name
}

// HTML renders the report as a standalone page.
func (r *Report) HTML() ([]byte, error) {
	var gm = goldmark.New(
		goldmark.WithExtensions(
			&extension.VarLinkExtender{Resolver: &resolver{r}},
		),
		goldmark.WithParser(
			goldmark.DefaultParser(),
		),
	)

	var sb strings.Builder

	rend := func(n gmast.Node) error {
		if n == nil {
			return nil
		}
		return gm.Renderer().Render(&sb, r.Doc.Source, n)
	}

	sb.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(r.Program.Name)))

	if err := rend(r.Doc.Summary); err != nil {
		return nil, err
	}

	if r.Failure != nil {
		sb.WriteString(fmt.Sprintf(`<p class="failure">Analysis stopped: %s at %s</p>`, r.Failure.Kind, r.Failure.Span))
	}

	if len(r.Doc.Discussion) > 0 {
		sb.WriteString("<h2>Discussion</h2>")
	}
	for _, disc := range r.Doc.Discussion {
		if err := rend(disc); err != nil {
			return nil, err
		}
	}

	if r.Doc.Expects != nil {
		sb.WriteString("<h2>Expected</h2>")
		if err := rend(r.Doc.Expects); err != nil {
			return nil, err
		}
	}

	if len(r.Trace.Prints) > 0 {
		sb.WriteString("<h2>Output</h2><dl>")
		for _, p := range r.Trace.Prints {
			sb.WriteString(fmt.Sprintf(`<dt><code>%s</code> at %s</dt><dd>%s</dd>`,
				html.EscapeString("print "+format.Expr(p.Stmt.Value)), p.Stmt.Span, p.Value))
		}
		sb.WriteString("</dl>")
	}

	if len(r.Trace.Branches) > 0 {
		sb.WriteString("<h2>Branches</h2><dl>")
		for _, b := range r.Trace.Branches {
			sb.WriteString(fmt.Sprintf(`<dt><code>%s</code> at %s</dt><dd>%s</dd>`,
				html.EscapeString("if ("+format.Cond(b.Stmt.Cond)+")"), b.Stmt.Span, Describe(b.Verdict)))
		}
		sb.WriteString("</dl>")
	}

	if len(r.Trace.Loops) > 0 {
		sb.WriteString("<h2>Loops</h2>")
		for _, l := range r.Trace.Loops {
			sb.WriteString(fmt.Sprintf(`<h4><code>%s</code> at %s</h4><ol>`,
				html.EscapeString("while ("+format.Cond(l.Stmt.Cond)+")"), l.Stmt.Span))
			for _, round := range l.Rounds {
				cls := ""
				if round.Stable {
					cls = ` class="stable"`
				}
				sb.WriteString(fmt.Sprintf(`<li%s>%s</li>`, cls, Describe(round.Verdict)))
			}
			sb.WriteString("</ol>")
		}
	}

	sb.WriteString(`<h2>Variables</h2><table><tr><th>Name</th><th>Type</th><th>Declared</th><th>Sign</th><th></th></tr>`)
	for _, v := range r.Variables {
		sb.WriteString(fmt.Sprintf(`<tr id="%s"><td><code>%s</code></td><td>%s</td><td>%s</td><td>%s</td><td>`,
			anchor(v.Name), v.Name, v.Type, v.Decl.Span, v.FinalText()))
		if doc, ok := r.Doc.Variables[v.Name]; ok {
			if err := rend(doc); err != nil {
				return nil, err
			}
		}
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</table>")

	var out bytes.Buffer
	err := Template.Execute(&out, TemplateArguments{
		Title: r.Program.Name,
		Main:  template.HTML(sb.String()),
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
