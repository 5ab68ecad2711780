package main

import (
	"fmt"
	"os"

	"signa/backends"
	"signa/backends/abstract"
	_ "signa/backends/check"
	_ "signa/backends/concrete"
	_ "signa/backends/dump"
	_ "signa/backends/format"
	"signa/modules"
	_ "signa/report"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// setupLogging runs once the command's own flags are parsed, so a
// --workspace given after the subcommand still picks the manifest.
func setupLogging(cCtx *cli.Context) error {
	m, err := modules.LoadManifestFrom(backends.WorkspaceDir(cCtx))
	if err != nil {
		return err
	}

	config := m.Log
	if cCtx.IsSet("log-level") {
		config.Level = cCtx.String("log-level")
	}
	if cCtx.IsSet("dev-log") {
		config.Development = cCtx.Bool("dev-log")
	}

	logger, err := config.Logger()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "signa",
		Usage:     "Sign analysis for a small imperative language",
		ArgsUsage: "[file...]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log at this level and above (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "dev-log",
				Usage: "Log in the human readable development format",
			},
		}, backends.StandardFlags...),
		After: func(cCtx *cli.Context) error {
			_ = zap.L().Sync()
			return nil
		},
		Action: func(cCtx *cli.Context) error {
			if err := setupLogging(cCtx); err != nil {
				return err
			}
			return abstract.Analyze(cCtx)
		},
		Commands: lo.Map(backends.Backends, func(b backends.Backend, _ int) *cli.Command {
			cmd := b.GenerateCommand()
			cmd.Before = setupLogging
			return cmd
		}),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
