package suggest

import "unicode/utf8"

// trieNode is one character edge target. frequency is only meaningful
// when terminal is set.
type trieNode struct {
	children  map[rune]*trieNode
	terminal  bool
	frequency int
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// TrieIndex is a multi-way trie keyed by one rune per edge.
// It is not safe for concurrent mutation.
type TrieIndex struct {
	root         *trieNode
	totalWords   int
	nodes        int
	maxFrequency int
}

// NewTrieIndex creates an empty trie.
func NewTrieIndex() *TrieIndex {
	return &TrieIndex{
		root:  newTrieNode(),
		nodes: 1,
	}
}

// Insert walks or extends the path for word and marks its last node
// terminal. Empty words and invalid UTF-8 are ignored, negative
// frequencies count as 0.
func (t *TrieIndex) Insert(word string, frequency int) {
	if word == "" || !utf8.ValidString(word) {
		return
	}
	frequency = max(frequency, 0)

	current := t.root
	for _, r := range word {
		next, ok := current.children[r]
		if !ok {
			next = newTrieNode()
			current.children[r] = next
			t.nodes++
		}
		current = next
	}

	if !current.terminal {
		current.terminal = true
		t.totalWords++
	}
	current.frequency = frequency
	if frequency > t.maxFrequency {
		t.maxFrequency = frequency
	}
}

// Suggest returns the highest frequency words under prefix.
func (t *TrieIndex) Suggest(prefix string, limit int) []string {
	return words(t.Complete(prefix, limit))
}

// Complete enumerates every word below the prefix node, including the
// prefix itself when it is a word, then pops the best limit entries.
// The whole subtree is always visited before truncation.
func (t *TrieIndex) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 || !utf8.ValidString(prefix) {
		return []Suggestion{}
	}

	node := t.find(prefix)
	if node == nil {
		return []Suggestion{}
	}

	var queue rankQueue
	path := []rune(prefix)
	collectTrie(node, path, &queue)
	return queue.take(limit)
}

// find follows prefix from the root, returning nil when a rune is missing.
func (t *TrieIndex) find(prefix string) *trieNode {
	current := t.root
	for _, r := range prefix {
		next, ok := current.children[r]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func collectTrie(node *trieNode, path []rune, queue *rankQueue) {
	if node.terminal {
		queue.offer(Suggestion{Word: string(path), Frequency: node.frequency})
	}
	for r, child := range node.children {
		collectTrie(child, append(path, r), queue)
	}
}

// Stats returns statistics about the trie.
func (t *TrieIndex) Stats() map[string]int {
	return map[string]int{
		"totalWords":   t.totalWords,
		"nodes":        t.nodes,
		"maxFrequency": t.maxFrequency,
	}
}
