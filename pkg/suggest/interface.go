// Package suggest is the core, providing the prefix indices and the ranking used to pick their top completions.
package suggest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIndex is returned by NewIndex for an unsupported kind.
var ErrUnknownIndex = errors.New("unknown index kind")

// Kind names an index implementation.
type Kind string

const (
	KindTrie     Kind = "trie"
	KindTST      Kind = "tst"
	KindPatricia Kind = "patricia"
)

// Kinds lists every index implementation in display order.
var Kinds = []Kind{KindTrie, KindTST, KindPatricia}

// Suggestion is a ranked completion.
type Suggestion struct {
	Word      string
	Frequency int
}

// PrefixIndex defines the contract shared by every index implementation.
type PrefixIndex interface {
	// Insert adds word with its frequency. Reinserting a word overwrites its frequency.
	Insert(word string, frequency int)

	// Suggest returns at most limit words starting with prefix, highest frequency first.
	Suggest(prefix string, limit int) []string

	// Complete is Suggest with the frequencies attached.
	Complete(prefix string, limit int) []Suggestion

	// Stats returns statistics about the indexed words
	Stats() map[string]int
}

// NewIndex creates an empty index of the given kind.
func NewIndex(kind Kind) (PrefixIndex, error) {
	switch kind {
	case KindTrie:
		return NewTrieIndex(), nil
	case KindTST:
		return NewTSTIndex(), nil
	case KindPatricia:
		return NewPatriciaIndex(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIndex, kind)
}

// ParseKinds converts names such as "trie,tst" to kinds, rejecting unknown ones.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	seen := make(map[Kind]bool, len(names))
	for _, name := range names {
		kind := Kind(strings.ToLower(strings.TrimSpace(name)))
		if kind == "" {
			continue
		}
		switch kind {
		case KindTrie, KindTST, KindPatricia:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownIndex, name)
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// words strips frequencies from suggestions.
func words(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Word
	}
	return out
}
