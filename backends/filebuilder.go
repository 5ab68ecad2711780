package backends

import (
	"fmt"
	"strings"
)

// Filebuilder accumulates text line by line at a current indentation
// depth. Indent is the text written per level and defaults to a tab.
type Filebuilder struct {
	Einzug int
	Indent string

	strings.Builder
}

func (f *Filebuilder) indent() {
	unit := f.Indent
	if unit == "" {
		unit = "\t"
	}
	f.WriteString(strings.Repeat(unit, f.Einzug))
}

// Add writes an indented line.
func (f *Filebuilder) Add(format string, a ...interface{}) {
	f.indent()
	f.WriteString(fmt.Sprintf(format, a...))
	f.WriteRune('\n')
}

// AddE starts an indented line without ending it.
func (f *Filebuilder) AddE(format string, a ...interface{}) {
	f.indent()
	f.WriteString(fmt.Sprintf(format, a...))
}

// AddK continues the current line.
func (f *Filebuilder) AddK(format string, a ...interface{}) {
	f.WriteString(fmt.Sprintf(format, a...))
}

func (f *Filebuilder) AddNL() {
	f.WriteRune('\n')
}

// AddI writes an indented line and indents what follows.
func (f *Filebuilder) AddI(format string, a ...interface{}) {
	f.Add(format, a...)
	f.Einzug++
}

// AddD dedents and writes an indented line.
func (f *Filebuilder) AddD(format string, a ...interface{}) {
	f.Einzug--
	f.Add(format, a...)
}
