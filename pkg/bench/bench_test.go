package bench

import (
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/wordbench/pkg/dictionary"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var entries = []dictionary.Entry{
	{Word: "pro", Frequency: 2},
	{Word: "program", Frequency: 50},
	{Word: "programming", Frequency: 40},
	{Word: "progress", Frequency: 30},
	{Word: "project", Frequency: 45},
}

func TestBuildAndQuery(t *testing.T) {
	set, builds, err := BuildSet([]suggest.Kind{suggest.KindTrie, suggest.KindTST}, entries, 0)
	require.NoError(t, err)
	require.Len(t, builds, 2)

	for _, b := range builds {
		assert.Equal(t, len(entries), b.Words)
		assert.Equal(t, len(entries), b.Stats["totalWords"])
		assert.GreaterOrEqual(t, int64(b.Duration), int64(0))
	}

	queries := QuerySet(set, "pro", 2)
	require.Len(t, queries, 2)
	assert.Equal(t, suggest.KindTrie, queries[0].Kind)
	assert.Equal(t, []suggest.Suggestion{{Word: "program", Frequency: 50}, {Word: "project", Frequency: 45}}, queries[0].Suggestions)
	assert.Equal(t, suggest.KindTST, queries[1].Kind)
	assert.Equal(t, "pro", queries[1].Suggestions[0].Word)
	assert.Equal(t, "pro", queries[1].Prefix)
	assert.Equal(t, 2, queries[1].Limit)
}

func TestBuildUnknownKind(t *testing.T) {
	_, _, err := Build("radix", entries)
	assert.True(t, errors.Is(err, suggest.ErrUnknownIndex))

	_, _, err = BuildSet([]suggest.Kind{suggest.KindTrie, "radix"}, entries, 0)
	assert.Error(t, err)
}

func TestBuildSetWithCache(t *testing.T) {
	set, builds, err := BuildSet([]suggest.Kind{suggest.KindTrie, suggest.KindTST}, entries, 8)
	require.NoError(t, err)
	require.Len(t, builds, 2)

	for _, kind := range set.Kinds() {
		idx, ok := set.Get(kind)
		require.True(t, ok)
		cached, ok := idx.(*suggest.HotCache)
		require.True(t, ok, "%s index is %T", kind, idx)
		assert.Equal(t, 8, cached.Stats()["maxCachedPrefixes"])
	}

	plain, _, err := BuildSet([]suggest.Kind{suggest.KindTrie}, entries, 0)
	require.NoError(t, err)
	idx, _ := plain.Get(suggest.KindTrie)
	assert.IsType(t, &suggest.TrieIndex{}, idx)
}

func TestCompare(t *testing.T) {
	reports := []BuildReport{
		{Kind: suggest.KindTrie, HeapBytes: 1234},
		{Kind: suggest.KindTST, HeapBytes: 1000},
		{Kind: suggest.KindPatricia, HeapBytes: 1000},
	}
	assert.Equal(t, []string{
		"trie uses more memory by 23.40%",
		"trie uses more memory by 23.40%",
		"tst and patricia use the same amount of memory",
	}, Compare(reports))

	assert.Equal(t, []string{"tst uses more memory by 2.00 KB"},
		Compare([]BuildReport{{Kind: suggest.KindTrie, HeapBytes: 0}, {Kind: suggest.KindTST, HeapBytes: 2048}}))

	assert.Empty(t, Compare(reports[:1]))
}

func TestTables(t *testing.T) {
	builds := []BuildReport{{Kind: suggest.KindTrie, Words: 1500, HeapBytes: 2048, Stats: map[string]int{"nodes": 4200}}}
	out := BuildTable(builds)
	for _, want := range []string{"index", "trie", "1,500", "4,200", "2.00 KB"} {
		assert.True(t, strings.Contains(out, want), "BuildTable missing %q:\n%s", want, out)
	}

	queries := []QueryReport{{Kind: suggest.KindTST, Suggestions: []suggest.Suggestion{{Word: "program"}, {Word: "project"}}}}
	out = QueryTable(queries)
	assert.Contains(t, out, "tst")
	assert.Contains(t, out, "program")
	assert.Contains(t, out, "project")
}
