package abstract

import (
	"fmt"

	"signa/backends"
	"signa/modules"
	"signa/runtime"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type AbstractBackend struct{}

func init() {
	backends.RegisterBackend(AbstractBackend{})
}

// ConfigFrom maps the manifest's analysis section onto interpreter
// settings.
func ConfigFrom(a modules.AnalysisConfig) Config {
	return Config{
		MaxIterations: a.MaxIterations,
		MemoizeReads:  !a.FreshReads,
	}
}

var Command = &cli.Command{
	Name:      "analyze",
	Usage:     "Run programs over the sign domain and print the abstract trace",
	ArgsUsage: "[file...]",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "max-iterations",
			Usage: "Give up on a loop after this many rounds (0 means no limit)",
		},
	}, backends.StandardFlags...),
	Action: Analyze,
}

func (AbstractBackend) GenerateCommand() *cli.Command {
	return Command
}

// Analyze is the action behind the analyze command, and the default action
// when signa is given only files.
func Analyze(cCtx *cli.Context) error {
	w, progs, err := backends.Load(cCtx)
	if err != nil {
		return err
	}

	config := ConfigFrom(w.Manifest.Analysis)
	if cCtx.IsSet("max-iterations") {
		config.MaxIterations = cCtx.Int("max-iterations")
	}

	for _, prog := range progs {
		if len(progs) > 1 {
			fmt.Fprintf(cCtx.App.Writer, "# %s\n", prog.Name)
		}

		interp := NewInterpreter(cCtx.App.Writer, config)
		m := interp.RunProgram(prog.AST)
		zap.L().Debug("analyzed", zap.String("program", prog.Name), zap.Stringer("result", m.Kind))
		if m.Failed() {
			return backends.Exit(prog, describe(m))
		}
	}
	return nil
}

func describe(m Meta) error {
	err := &runtime.Error{Kind: m.Kind, Span: m.Span}
	if m.Kind == runtime.DivisionByZero {
		err.Message = "divisor may be zero"
	}
	return err
}
