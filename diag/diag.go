// Package diag renders errors against the source they point into.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"signa/runtime"

	"github.com/rivo/uniseg"
)

// Column converts a byte column in line into a one-based column counted
// in grapheme clusters, which is what an editor shows.
func Column(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return uniseg.GraphemeClusterCount(line[:byteCol]) + 1
}

func sourceLine(src []byte, row int) (string, bool) {
	lines := strings.Split(string(src), "\n")
	if row < 0 || row >= len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[row], "\r"), true
}

// caret lines up a marker under the grapheme at byteCol, keeping tabs so
// the marker stays aligned however tabs are displayed.
func caret(line string, byteCol int) string {
	var sb strings.Builder
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if start, _ := gr.Positions(); start >= byteCol {
			break
		}
		if gr.Str() == "\t" {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('^')
	return sb.String()
}

// Format renders err. Errors carrying a source position get the offending
// line and a caret under the position.
func Format(filename string, src []byte, err error) string {
	var rerr *runtime.Error
	if !errors.As(err, &rerr) {
		return err.Error()
	}

	start := rerr.Span.Start
	line, ok := sourceLine(src, start.Row)

	var sb strings.Builder
	col := start.Column + 1
	if ok {
		col = Column(line, start.Column)
	}
	fmt.Fprintf(&sb, "%s:%d:%d: %s", filename, start.Row+1, col, rerr.Kind)
	if rerr.Message != "" {
		fmt.Fprintf(&sb, ": %s", rerr.Message)
	}
	if ok {
		fmt.Fprintf(&sb, "\n%s\n%s", line, caret(line, start.Column))
	}
	return sb.String()
}
