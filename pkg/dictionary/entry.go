// Package dictionary reads (word, frequency) records from dictionary sources and feeds them into prefix indices.
package dictionary

import (
	"context"
	"errors"
	"strings"

	"github.com/bastiangx/wordbench/pkg/suggest"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownFormat is returned when a file's format cannot be determined.
	ErrUnknownFormat = errors.New("unknown dictionary format")
	// ErrCorruptBinary is returned for truncated or inconsistent binary dictionaries.
	ErrCorruptBinary = errors.New("corrupt binary dictionary")
)

// Entry is one normalized dictionary record.
type Entry struct {
	Word      string
	Frequency int
}

// Source produces normalized entries. Records that cannot be parsed are
// skipped by the source and never returned.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
}

// Normalize trims and lowercases a raw word.
func Normalize(word string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(word))
}

// Feed inserts every entry into every index and returns the number of entries fed.
func Feed(entries []Entry, indices ...suggest.PrefixIndex) int {
	for _, idx := range indices {
		for _, e := range entries {
			idx.Insert(e.Word, e.Frequency)
		}
	}
	return len(entries)
}

// Dedupe keeps the last frequency seen for each word, preserving first-seen order.
func Dedupe(entries []Entry) []Entry {
	pos := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.Word]; ok {
			out[i].Frequency = e.Frequency
			continue
		}
		pos[e.Word] = len(out)
		out = append(out, e)
	}
	return out
}
