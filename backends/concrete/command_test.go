package concrete

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestRunCommandSharesInput(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sg")
	b := filepath.Join(dir, "b.sg")
	require.NoError(t, os.WriteFile(a, []byte("int v = readint; print v;\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("int v = readint; print v * 10;\n"), 0o600))

	var out bytes.Buffer
	app := &cli.App{
		Reader:         strings.NewReader("1 2\n"),
		Writer:         &out,
		Commands:       []*cli.Command{Command},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	require.NoError(t, app.Run([]string{"signa", "run", "-w", dir, a, b}))
	assert.Equal(t, "1\n20\n", out.String())
}
