package concrete

import (
	"signa/backends"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type ConcreteBackend struct{}

func init() {
	backends.RegisterBackend(ConcreteBackend{})
}

func (ConcreteBackend) GenerateCommand() *cli.Command {
	return Command
}

var Command = &cli.Command{
	Name:      "run",
	Usage:     "Run programs on real numbers, reading input from stdin",
	ArgsUsage: "[file...]",
	Flags:     backends.StandardFlags,
	Action: func(cCtx *cli.Context) error {
		_, progs, err := backends.Load(cCtx)
		if err != nil {
			return err
		}

		// One input for all programs, so later programs read where the
		// earlier ones stopped.
		in := NewInput(cCtx.App.Reader)
		for _, prog := range progs {
			interp := NewInterpreterWithInput(in, cCtx.App.Writer)
			m := interp.RunProgram(prog.AST)
			zap.L().Debug("ran", zap.String("program", prog.Name), zap.Stringer("result", m.Kind))
			if m.Failed() {
				return backends.Exit(prog, m.Err())
			}
		}
		return nil
	},
}
