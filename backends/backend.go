// Package backends holds the pieces shared by every subcommand that
// consumes programs: registration, flags, loading and error reporting.
package backends

import (
	"errors"

	"signa/diag"
	"signa/modules"
	"signa/runtime"

	"github.com/urfave/cli/v2"
)

type Backend interface {
	GenerateCommand() *cli.Command
}

var StandardFlags = []cli.Flag{
	&cli.StringFlag{
		Name:        "workspace",
		Usage:       "The directory to load a signa.yaml workspace from",
		DefaultText: ".",
		Aliases:     []string{"w"},
	},
}

var Backends = []Backend{}

func RegisterBackend(b Backend) {
	Backends = append(Backends, b)
}

// WorkspaceDir returns the innermost --workspace given, so the flag works
// both before and after the subcommand name.
func WorkspaceDir(cCtx *cli.Context) string {
	for _, c := range cCtx.Lineage() {
		if c.IsSet("workspace") {
			return c.String("workspace")
		}
	}
	return ""
}

// Load returns the programs named on the command line, or every program in
// the workspace manifest when none are named.
func Load(cCtx *cli.Context) (*modules.Workspace, []*modules.Program, error) {
	w, err := modules.LoadWorkspaceFrom(WorkspaceDir(cCtx))
	if err != nil {
		return nil, nil, err
	}

	if cCtx.Args().Len() == 0 {
		progs, err := w.Programs()
		if err != nil {
			return w, nil, Exit(progs[len(progs)-1], err)
		}
		if len(progs) == 0 {
			return w, nil, cli.Exit("no program given and none listed in "+modules.ManifestName, 1)
		}
		return w, progs, nil
	}

	var progs []*modules.Program
	for _, path := range cCtx.Args().Slice() {
		prog, err := modules.LoadProgram(path, path)
		if err != nil {
			return w, nil, Exit(prog, err)
		}
		progs = append(progs, prog)
	}
	return w, progs, nil
}

// Exit turns a program failure into an error carrying the process exit
// code of its kind. Failures without a kind are returned as they are.
func Exit(prog *modules.Program, err error) error {
	var rerr *runtime.Error
	if prog == nil || !errors.As(err, &rerr) {
		return err
	}
	return cli.Exit(diag.Format(prog.Path, prog.Source, err), rerr.Kind.ExitCode())
}
