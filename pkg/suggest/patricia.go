package suggest

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// PatriciaIndex ranks completions stored in a compressed patricia trie.
// Ranking matches TrieIndex, so it doubles as a reference for it.
type PatriciaIndex struct {
	trie         *patricia.Trie
	totalWords   int
	maxFrequency int
}

// NewPatriciaIndex creates an empty patricia backed index.
func NewPatriciaIndex() *PatriciaIndex {
	return &PatriciaIndex{trie: patricia.NewTrie()}
}

// Insert stores word, overwriting a previous frequency. Empty words and
// invalid UTF-8 are ignored.
func (p *PatriciaIndex) Insert(word string, frequency int) {
	if word == "" || !utf8.ValidString(word) {
		return
	}
	frequency = max(frequency, 0)

	key := patricia.Prefix(word)
	if p.trie.Get(key) == nil {
		p.totalWords++
	}
	p.trie.Set(key, frequency)
	if frequency > p.maxFrequency {
		p.maxFrequency = frequency
	}
}

// Suggest returns the highest frequency words under prefix.
func (p *PatriciaIndex) Suggest(prefix string, limit int) []string {
	return words(p.Complete(prefix, limit))
}

// Complete visits the whole subtree under prefix and ranks it.
func (p *PatriciaIndex) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 || !utf8.ValidString(prefix) {
		return []Suggestion{}
	}

	var queue rankQueue
	visit := func(key patricia.Prefix, item patricia.Item) error {
		freq, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, key)
			return nil
		}
		queue.offer(Suggestion{Word: string(key), Frequency: freq})
		return nil
	}

	var err error
	if prefix == "" {
		err = p.trie.Visit(visit)
	} else {
		err = p.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		log.Errorf("Error visiting patricia subtree: %v", err)
		return []Suggestion{}
	}
	return queue.take(limit)
}

// Stats returns statistics about the indexed words.
func (p *PatriciaIndex) Stats() map[string]int {
	return map[string]int{
		"totalWords":   p.totalWords,
		"maxFrequency": p.maxFrequency,
	}
}
