package extension

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// VarLinkExtender turns @name mentions in markdown into links to the
// variable called name.
type VarLinkExtender struct {
	Resolver VarResolver
}

func (e *VarLinkExtender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(varLinkParser{}, 999)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&VarLinkRenderer{e.Resolver}, 999)))
}

var _ goldmark.Extender = &VarLinkExtender{}

func isIdentCluster(cluster []byte, first bool) bool {
	r, _ := utf8.DecodeRune(cluster)
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

// identLength returns the byte length of the identifier at the start of b,
// stepping by grapheme cluster so combining marks stay with their letter.
func identLength(b []byte) int {
	end := 0
	gr := uniseg.NewGraphemes(string(b))
	for gr.Next() && isIdentCluster(gr.Bytes(), end == 0) {
		_, end = gr.Positions()
	}
	return end
}

type varLinkParser struct{}

func (varLinkParser) Trigger() []byte {
	return []byte{'@'}
}

func (varLinkParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if len(line) == 0 || line[0] != '@' {
		return nil
	}
	n := identLength(line[1:])
	if n == 0 {
		return nil
	}

	name := text.NewSegment(seg.Start+1, seg.Start+1+n)
	link := &VarLinkNode{Name: block.Value(name)}
	link.AppendChild(link, ast.NewTextSegment(name))
	block.Advance(n + 1)
	return link
}

// VarLinkNode is an @name mention. Destination is filled in while
// rendering; it stays empty when the name resolves to nothing.
type VarLinkNode struct {
	ast.BaseInline

	Name        []byte
	Destination []byte
}

var VarLinkKind = ast.NewNodeKind("VarLink")

func (*VarLinkNode) Kind() ast.NodeKind {
	return VarLinkKind
}

func (n *VarLinkNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": string(n.Name)}, nil)
}

type VarResolver interface {
	ResolveVar(*VarLinkNode) (destination []byte, err error)
}

// VarLinkRenderer writes resolved mentions as links and the rest as
// marked spans.
type VarLinkRenderer struct {
	Resolver VarResolver
}

func (r *VarLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(VarLinkKind, r.Render)
}

func (r *VarLinkRenderer) Render(w util.BufWriter, src []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*VarLinkNode)

	if !entering {
		if len(n.Destination) > 0 {
			w.WriteString("</a>")
		} else {
			w.WriteString("</span>")
		}
		return ast.WalkContinue, nil
	}

	if r.Resolver != nil {
		dest, err := r.Resolver.ResolveVar(n)
		if err != nil {
			return ast.WalkStop, fmt.Errorf("resolve variable %q: %w", n.Name, err)
		}
		n.Destination = dest
	}

	if len(n.Destination) == 0 {
		w.WriteString(`<span class="unknown-var">`)
		return ast.WalkContinue, nil
	}
	w.WriteString(`<a class="var-link" href="`)
	w.Write(util.URLEscape(n.Destination, true))
	w.WriteString(`">`)
	return ast.WalkContinue, nil
}
