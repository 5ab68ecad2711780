// Package check validates programs without running them.
package check

import (
	"fmt"

	"signa/backends"

	"github.com/urfave/cli/v2"
)

type CheckBackend struct{}

func init() {
	backends.RegisterBackend(CheckBackend{})
}

func (CheckBackend) GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse and type check programs",
		ArgsUsage: "[file...]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Usage:   "Only report failures",
				Aliases: []string{"q"},
			},
		}, backends.StandardFlags...),
		Action: func(cCtx *cli.Context) error {
			_, progs, err := backends.Load(cCtx)
			if err != nil {
				return err
			}
			if cCtx.Bool("quiet") {
				return nil
			}
			for _, prog := range progs {
				fmt.Fprintf(cCtx.App.Writer, "%s: ok, %d variables\n", prog.Path, len(prog.Context.Variables))
			}
			return nil
		},
	}
}
