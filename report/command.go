package report

import (
	"fmt"
	"os"
	"path"
	"strings"

	"signa/backends"
	"signa/backends/abstract"
	"signa/modules"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ReportBackend struct{}

func init() {
	backends.RegisterBackend(ReportBackend{})
}

func (ReportBackend) GenerateCommand() *cli.Command {
	return Command
}

// baseName turns a program name, which may be a path, into a file name.
func baseName(name string) string {
	return strings.TrimSuffix(path.Base(name), path.Ext(name))
}

// write renders r into outdir in both formats.
func write(outdir string, r *Report) error {
	prog := r.Program
	base := path.Join(outdir, baseName(prog.Name))

	err := os.WriteFile(base+".md", []byte(r.Markdown()), 0660)
	if err != nil {
		return err
	}

	page, err := r.HTML()
	if err != nil {
		return fmt.Errorf("failed to render report for %s: %w", prog.Name, err)
	}
	err = os.WriteFile(base+".html", page, 0660)
	if err != nil {
		return err
	}

	zap.L().Named("report").Info("wrote report", zap.String("program", prog.Name), zap.String("outdir", outdir))
	return nil
}

var Command = &cli.Command{
	Name:      "report",
	Usage:     "Write markdown and HTML reports of the sign analysis",
	ArgsUsage: "[file...]",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "outdir",
			Usage:   "The directory to write reports to",
			Value:   "report",
			Aliases: []string{"o"},
		},
	}, backends.StandardFlags...),
	Action: func(cCtx *cli.Context) error {
		w, progs, err := backends.Load(cCtx)
		if err != nil {
			return err
		}

		outdir := cCtx.String("outdir")
		err = os.MkdirAll(outdir, 0750)
		if err != nil {
			return err
		}
		err = os.WriteFile(path.Join(outdir, "main.css"), []byte(css), 0660)
		if err != nil {
			return err
		}

		config := abstract.ConfigFrom(w.Manifest.Analysis)
		// Documentation comments share one markdown parser, so reports are
		// built in order and only rendered concurrently.
		reports := lo.Map(progs, func(prog *modules.Program, _ int) *Report {
			return Build(prog, config)
		})

		g, _ := errgroup.WithContext(cCtx.Context)
		for _, r := range reports {
			r := r
			g.Go(func() error {
				return write(outdir, r)
			})
		}
		return g.Wait()
	},
}
