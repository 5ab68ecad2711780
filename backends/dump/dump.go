// Package dump prints the syntax tree of programs and what the checker
// learned about them.
package dump

import (
	"fmt"
	"sort"

	"signa/ast"
	"signa/backends"
	"signa/modules"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
)

type DumpBackend struct{}

func init() {
	backends.RegisterBackend(DumpBackend{})
}

func (DumpBackend) GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Print the syntax tree of programs",
		ArgsUsage: "[file...]",
		Flags:     backends.StandardFlags,
		Action: func(cCtx *cli.Context) error {
			_, progs, err := backends.Load(cCtx)
			if err != nil {
				return err
			}
			for _, prog := range progs {
				fmt.Fprint(cCtx.App.Writer, Program(prog))
			}
			return nil
		},
	}
}

// Variable is the checker's view of one declaration.
type Variable struct {
	Name  string
	Type  string
	Depth int
	At    string
}

// Program renders the tree of prog followed by its variables.
func Program(prog *modules.Program) string {
	out := repr.String(prog.AST, repr.Indent("  "), repr.OmitEmpty(true)) + "\n"

	var vars []Variable
	for _, v := range prog.Context.Variables {
		vars = append(vars, Variable{v.Name, v.Type.String(), v.Depth, v.Decl.Span.String()})
	}
	sort.SliceStable(vars, func(i, j int) bool { return vars[i].Depth < vars[j].Depth })
	out += repr.String(vars, repr.Indent("  ")) + "\n"

	reads := 0
	ast.Inspect(prog.AST, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.ReadIntExpr, *ast.ReadFloatExpr:
			reads++
		}
		return true
	})
	out += fmt.Sprintf("reads: %d\n", reads)
	return out
}
