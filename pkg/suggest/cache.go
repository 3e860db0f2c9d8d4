package suggest

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultHotCacheSize is the number of prefixes kept when no size is given.
const DefaultHotCacheSize = 20000

type cacheEntry struct {
	results  map[int][]Suggestion
	lastUsed int64
}

// HotCache memoizes completions of a wrapped index per (prefix, limit).
// Cached prefixes live in a patricia trie so an insert can drop exactly
// the prefixes of the inserted word.
type HotCache struct {
	index       PrefixIndex
	prefixes    *patricia.Trie
	entries     map[string]*cacheEntry
	maxEntries  int
	accessCount int64
	hits        int
	misses      int
	mu          sync.Mutex
}

// NewHotCache wraps index with a cache holding up to maxEntries prefixes.
func NewHotCache(index PrefixIndex, maxEntries int) *HotCache {
	if maxEntries <= 0 {
		maxEntries = DefaultHotCacheSize
	}
	return &HotCache{
		index:      index,
		prefixes:   patricia.NewTrie(),
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
	}
}

// Unwrap returns the cached index.
func (hc *HotCache) Unwrap() PrefixIndex {
	return hc.index
}

// Insert invalidates every cached prefix of word, then inserts it.
func (hc *HotCache) Insert(word string, frequency int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if word == "" || !utf8.ValidString(word) {
		return
	}

	stale := []string{"", word}
	err := hc.prefixes.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting cached prefixes: %v", err)
	}
	for _, prefix := range stale {
		hc.drop(prefix)
	}

	hc.index.Insert(word, frequency)
}

// Suggest returns cached or freshly computed words for prefix.
func (hc *HotCache) Suggest(prefix string, limit int) []string {
	return words(hc.Complete(prefix, limit))
}

// Complete returns cached or freshly computed suggestions for prefix.
func (hc *HotCache) Complete(prefix string, limit int) []Suggestion {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if entry, ok := hc.entries[prefix]; ok {
		if cached, ok := entry.results[limit]; ok {
			hc.hits++
			entry.lastUsed = hc.nextAccessTime()
			return cloneSuggestions(cached)
		}
	}
	hc.misses++

	results := hc.index.Complete(prefix, limit)

	entry, ok := hc.entries[prefix]
	if !ok {
		if len(hc.entries) >= hc.maxEntries {
			hc.evictLRU()
		}
		entry = &cacheEntry{results: make(map[int][]Suggestion, 1)}
		hc.entries[prefix] = entry
		if prefix != "" {
			hc.prefixes.Set(patricia.Prefix(prefix), struct{}{})
		}
	}
	entry.results[limit] = cloneSuggestions(results)
	entry.lastUsed = hc.nextAccessTime()

	return results
}

// Stats merges the index statistics with cache counters.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	stats := hc.index.Stats()
	stats["cachedPrefixes"] = len(hc.entries)
	stats["maxCachedPrefixes"] = hc.maxEntries
	stats["cacheHits"] = hc.hits
	stats["cacheMisses"] = hc.misses
	return stats
}

func (hc *HotCache) drop(prefix string) {
	if _, ok := hc.entries[prefix]; !ok {
		return
	}
	delete(hc.entries, prefix)
	if prefix != "" {
		hc.prefixes.Delete(patricia.Prefix(prefix))
	}
}

func (hc *HotCache) nextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestPrefix string
	var oldestTime int64 = math.MaxInt64
	found := false

	for prefix, entry := range hc.entries {
		if entry.lastUsed < oldestTime {
			oldestTime = entry.lastUsed
			oldestPrefix = prefix
			found = true
		}
	}

	if found {
		hc.drop(oldestPrefix)
		log.Debugf("Evicted prefix '%s' from hot cache", oldestPrefix)
	}
}

// cloneSuggestions copies s, keeping an empty result non-nil.
func cloneSuggestions(s []Suggestion) []Suggestion {
	return append(make([]Suggestion, 0, len(s)), s...)
}
