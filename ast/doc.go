package ast

import (
	"strings"

	"signa/ast/extension"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var gm = goldmark.New(
	goldmark.WithExtensions(
		&extension.VarLinkExtender{},
	),
	goldmark.WithParser(
		goldmark.DefaultParser(),
	),
)

// ProgramDocumentation is the markdown held in the comment block at the top
// of a source file.
//
// A trailing list item starting with "Variables:" documents variables by
// name, and one starting with "Expects:" describes the analysis result the
// author expects.
type ProgramDocumentation struct {
	Summary    ast.Node
	Discussion []ast.Node
	Variables  map[string]ast.Node
	Expects    ast.Node

	Source []byte
}

func transmute(from ast.Node, into ast.Node) ast.Node {
	for i := from.FirstChild(); i != nil; {
		next := i.NextSibling()
		into.AppendChild(into, i)
		i = next
	}
	return into
}

// stripPrefix drops prefix from the first line of item's paragraph.
func stripPrefix(item ast.Node, prefix string, source []byte) {
	para := item.FirstChild()
	txt, ok := para.FirstChild().(*ast.Text)
	if !ok {
		return
	}
	if strings.TrimSpace(string(txt.Segment.Value(source))) == prefix {
		para.RemoveChild(para, txt)
		return
	}
	seg := txt.Segment.WithStart(txt.Segment.Start + len(prefix))
	txt.Segment = seg.TrimLeftSpace(source)
}

// CommentText joins // comment lines into markdown, dropping the markers.
func CommentText(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, " ")
		sb.WriteString(line)
		sb.WriteRune('\n')
	}
	return sb.String()
}

func FromDocumentationComment(comment string) *ProgramDocumentation {
	source := []byte(comment)

	document := gm.Parser().Parse(text.NewReader(source))

	doc := ProgramDocumentation{}
	doc.Variables = map[string]ast.Node{}
	doc.Source = source

	summaryGot := false

	for i := document.FirstChild(); i != nil; {
		next := i.NextSibling()

		if !summaryGot && i.Kind() == ast.KindParagraph {
			doc.Summary = i
			summaryGot = true
		} else if i.Kind() == ast.KindList && next == nil {
			for ii := i.FirstChild(); ii != nil; ii = ii.NextSibling() {
				if ii.FirstChild() == nil || ii.FirstChild().Kind() != ast.KindParagraph && ii.FirstChild().Kind() != ast.KindTextBlock {
					continue
				}
				head := string(ii.FirstChild().Text(source))
				if head == "Variables:" && ii.FirstChild().NextSibling() != nil {
					theList := ii.FirstChild().NextSibling()

					for iii := theList.FirstChild(); iii != nil; iii = iii.NextSibling() {
						txt := string(iii.Text(source))
						splitted := strings.SplitN(txt, ":", 2)
						if len(splitted) != 2 {
							continue
						}

						name := strings.TrimSpace(splitted[0])
						stripPrefix(iii, splitted[0]+":", source)
						doc.Variables[name] = transmute(iii, ast.NewTextBlock())
					}
				} else if strings.HasPrefix(head, "Expects:") {
					stripPrefix(ii, "Expects:", source)
					doc.Expects = transmute(ii, ast.NewTextBlock())
				}
			}
		} else {
			if i.Kind() == ast.KindHeading {
				i.(*ast.Heading).Level += 1
			}
			doc.Discussion = append(doc.Discussion, i)
		}

		i = next
	}

	return &doc
}
