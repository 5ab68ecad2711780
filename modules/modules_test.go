package modules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"signa/runtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestMissingManifestUsesDefaults(t *testing.T) {
	w, err := LoadWorkspaceFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Manifest{}, w.Manifest)

	progs, err := w.Programs()
	require.NoError(t, err)
	assert.Empty(t, progs)
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ManifestName, `
name: demo
analysis:
  max_iterations: 50
  fresh_reads: true
log:
  level: debug
  development: true
programs:
  - name: main
    source: main.sg
  - source: other.sg
`)
	write(t, dir, "main.sg", "int x = 1; print x;")
	write(t, dir, "other.sg", "float y = readfloat; print y;")

	w, err := LoadWorkspaceFrom(dir)
	require.NoError(t, err)

	m := w.Manifest
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, 50, m.Analysis.MaxIterations)
	assert.True(t, m.Analysis.FreshReads)
	assert.Equal(t, LogConfig{Level: "debug", Development: true}, m.Log)
	assert.Equal(t, "other.sg", m.Programs[1].Name)

	progs, err := w.Programs()
	require.NoError(t, err)
	require.Len(t, progs, 2)
	assert.Equal(t, "main", progs[0].Name)
	assert.Len(t, progs[0].AST.Units, 2)
	assert.Len(t, progs[1].Context.Variables, 1)
}

func TestManifestErrors(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ManifestName, "programs: [")
	_, err := LoadWorkspaceFrom(dir)
	assert.ErrorContains(t, err, "failed to parse signa.yaml")

	write(t, dir, ManifestName, "programs:\n  - name: nothing\n")
	_, err = LoadWorkspaceFrom(dir)
	assert.ErrorContains(t, err, "program 0 has no source")
}

func TestLoadProgramErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadProgram("missing", filepath.Join(dir, "missing.sg"))
	assert.ErrorContains(t, err, "failed to load program")

	cases := map[string]runtime.ErrorKind{
		"int x = ;":       runtime.ParseError,
		"int x; int x;":   runtime.StaticCheckError,
		"int x; print x;": runtime.UninitializedVariable,
	}
	for src, kind := range cases {
		p := write(t, dir, "prog.sg", src)
		prog, err := LoadProgram("prog", p)

		var rerr *runtime.Error
		require.True(t, errors.As(err, &rerr), src)
		assert.Equal(t, kind, rerr.Kind, src)
		assert.Equal(t, src, string(prog.Source))
	}
}

func TestWorkspaceStopsAtFirstBadProgram(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ManifestName, "programs:\n  - source: bad.sg\n  - source: good.sg\n")
	write(t, dir, "bad.sg", "print 1 / ;")
	write(t, dir, "good.sg", "print 1;")

	w, err := LoadWorkspaceFrom(dir)
	require.NoError(t, err)
	progs, err := w.Programs()
	assert.Error(t, err)
	assert.Len(t, progs, 1)

	again, err2 := w.Programs()
	assert.Equal(t, err, err2)
	assert.Equal(t, progs, again)
}

func TestLogger(t *testing.T) {
	logger, err := LogConfig{Level: "debug"}.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = LogConfig{Development: true}.Logger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = LogConfig{Level: "loud"}.Logger()
	assert.Error(t, err)
}
