package extension

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

type names map[string]string

func (n names) ResolveVar(link *VarLinkNode) ([]byte, error) {
	return []byte(n[string(link.Name)]), nil
}

func TestVarLinks(t *testing.T) {
	gm := goldmark.New(goldmark.WithExtensions(&VarLinkExtender{Resolver: names{"x1": "#var-x1"}}))

	var out bytes.Buffer
	require.NoError(t, gm.Convert([]byte("see @x1, @y and @ alone"), &out))
	assert.Equal(t, `<p>see <a class="var-link" href="#var-x1">x1</a>, <span class="unknown-var">y</span> and @ alone</p>`+"\n", out.String())
}

func TestIdentLength(t *testing.T) {
	assert.Equal(t, 2, identLength([]byte("x1 rest")))
	assert.Equal(t, 0, identLength([]byte("1x")))
	assert.Equal(t, len("é"), identLength([]byte("é.")))
	assert.Equal(t, 4, identLength([]byte("e\u0301x!")))
}
