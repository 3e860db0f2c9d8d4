package suggest

import "unicode/utf8"

// tstNode holds one rune. lo and hi are alternatives at the same
// position, eq continues the word at the next position.
type tstNode struct {
	char       rune
	lo, eq, hi *tstNode
	terminal   bool
	frequency  int
}

// TSTIndex is a ternary search tree.
// It is not safe for concurrent mutation.
type TSTIndex struct {
	root         *tstNode
	totalWords   int
	nodes        int
	maxFrequency int
}

// NewTSTIndex creates an empty ternary search tree.
func NewTSTIndex() *TSTIndex {
	return &TSTIndex{}
}

// Insert places word one rune per tree position. Empty words and
// invalid UTF-8 are ignored, negative frequencies count as 0.
func (t *TSTIndex) Insert(word string, frequency int) {
	if word == "" || !utf8.ValidString(word) {
		return
	}
	frequency = max(frequency, 0)

	runes := []rune(word)
	link := &t.root
	i := 0
	for {
		node := *link
		if node == nil {
			node = &tstNode{char: runes[i]}
			*link = node
			t.nodes++
		}

		c := runes[i]
		switch {
		case c < node.char:
			link = &node.lo
		case c > node.char:
			link = &node.hi
		case i < len(runes)-1:
			i++
			link = &node.eq
		default:
			if !node.terminal {
				node.terminal = true
				t.totalWords++
			}
			node.frequency = frequency
			if frequency > t.maxFrequency {
				t.maxFrequency = frequency
			}
			return
		}
	}
}

// Suggest returns the highest frequency words under prefix.
func (t *TSTIndex) Suggest(prefix string, limit int) []string {
	return words(t.Complete(prefix, limit))
}

// Complete locates the node for prefix. When the prefix is itself a word
// it always comes first regardless of frequency; the remaining slots are
// filled from the ranked continuation subtree. An empty prefix ranks the
// whole tree.
func (t *TSTIndex) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 || !utf8.ValidString(prefix) {
		return []Suggestion{}
	}

	if prefix == "" {
		top := NewTopK(limit)
		collectTST(t.root, nil, top)
		return top.Sorted()
	}

	node := t.find(prefix)
	if node == nil {
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, min(limit, 64))
	if node.terminal {
		out = append(out, Suggestion{Word: prefix, Frequency: node.frequency})
	}

	top := NewTopK(limit - len(out))
	collectTST(node.eq, []rune(prefix), top)
	return append(out, top.Sorted()...)
}

// find descends by ternary comparison and returns the node holding the
// last rune of prefix, or nil.
func (t *TSTIndex) find(prefix string) *tstNode {
	runes := []rune(prefix)
	node := t.root
	i := 0
	for node != nil {
		c := runes[i]
		switch {
		case c < node.char:
			node = node.lo
		case c > node.char:
			node = node.hi
		default:
			if i == len(runes)-1 {
				return node
			}
			i++
			node = node.eq
		}
	}
	return nil
}

// collectTST visits the full subtree rooted at node. path holds the runes
// before node's position.
func collectTST(node *tstNode, path []rune, top *TopK) {
	if node == nil {
		return
	}
	collectTST(node.lo, path, top)

	word := append(path, node.char)
	if node.terminal {
		top.Offer(Suggestion{Word: string(word), Frequency: node.frequency})
	}
	collectTST(node.eq, word, top)

	collectTST(node.hi, path, top)
}

// Stats returns statistics about the tree.
func (t *TSTIndex) Stats() map[string]int {
	return map[string]int{
		"totalWords":   t.totalWords,
		"nodes":        t.nodes,
		"maxFrequency": t.maxFrequency,
	}
}
