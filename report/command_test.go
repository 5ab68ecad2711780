package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCommandWritesReports(t *testing.T) {
	dir := t.TempDir()
	outdir := filepath.Join(dir, "out")

	one := filepath.Join(dir, "one.sg")
	two := filepath.Join(dir, "two.sg")
	require.NoError(t, os.WriteFile(one, []byte("int x = 1;\nprint x;\n"), 0o600))
	require.NoError(t, os.WriteFile(two, []byte("float y = readfloat;\nprint y * y;\n"), 0o600))

	app := &cli.App{
		Commands:       []*cli.Command{Command},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	require.NoError(t, app.Run([]string{"signa", "report", "-w", dir, "-o", outdir, one, two}))

	for _, name := range []string{"main.css", "one.md", "one.html", "two.md", "two.html"} {
		assert.FileExists(t, filepath.Join(outdir, name))
	}

	md, err := os.ReadFile(filepath.Join(outdir, "two.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "`print y * y`: AnyFloat")
}
