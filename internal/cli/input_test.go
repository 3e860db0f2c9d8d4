package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, input string, out *bytes.Buffer) *InputHandler {
	t.Helper()
	set, err := suggest.NewSet([]suggest.Kind{suggest.KindTrie, suggest.KindTST}, 0)
	require.NoError(t, err)
	for _, idx := range set.Indices() {
		idx.Insert("program", 50)
		idx.Insert("project", 45)
		idx.Insert("apple", 9)
	}
	return NewInputHandler(set, 1, 10, 5, false).WithIO(strings.NewReader(input), out)
}

func TestInputHandlerPrintsEveryIndex(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestHandler(t, "pro\n", &out).Start())

	text := out.String()
	assert.Contains(t, text, "trie, tst")
	assert.Contains(t, text, "Suggestions for 'pro'")
	assert.Contains(t, text, "program")
	assert.Contains(t, text, "project")
	assert.NotContains(t, text, "apple")
}

func TestInputHandlerRejectsPrefixes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestHandler(t, "averyveryverylongprefix\n1234\nxyz\n", &out).Start())

	text := out.String()
	assert.Contains(t, text, "Prefix too long")
	assert.Contains(t, text, "filtered out")
	assert.Contains(t, text, "No suggestions found for prefix: 'xyz'")
}

func TestInputHandlerCommands(t *testing.T) {
	var out bytes.Buffer
	h := newTestHandler(t, ":limit 1\n:limit x\n:stats\n:q\npro\n", &out)
	require.NoError(t, h.Start())

	text := out.String()
	assert.Equal(t, 1, h.suggestLimit)
	assert.Contains(t, text, "limit set to 1")
	assert.Contains(t, text, "Invalid limit")
	assert.Contains(t, text, "totalWords=3")
	assert.NotContains(t, text, "Suggestions for", "input after :q must be ignored")
}

func TestInputHandlerLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestHandler(t, "app", &out).Start())
	assert.Contains(t, out.String(), "apple")
}
