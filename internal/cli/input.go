// Package cli runs an interactive prompt that queries every loaded index
// side by side.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/wordbench/internal/utils"
	"github.com/bastiangx/wordbench/pkg/bench"
	"github.com/bastiangx/wordbench/pkg/dictionary"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads prefixes line by line and prints the suggestions of
// each index next to each other.
type InputHandler struct {
	indices         *suggest.Set
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	requestCount    int
	in              io.Reader
	out             *log.Logger
}

// NewInputHandler creates a handler reading stdin and writing stdout.
func NewInputHandler(indices *suggest.Set, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		indices:         indices,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		in:              os.Stdin,
		out:             newPrinter(os.Stdout),
	}
}

// WithIO redirects the prompt to r and w.
func (h *InputHandler) WithIO(r io.Reader, w io.Writer) *InputHandler {
	h.in = r
	h.out = newPrinter(w)
	return h
}

func newPrinter(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{ReportTimestamp: false})
}

// Start runs the prompt until the input ends or ":q" is entered.
func (h *InputHandler) Start() error {
	h.out.Print("wordbench CLI")
	h.out.Printf("indices: %s", kindList(h.indices.Kinds()))
	h.out.Print("type a prefix and press Enter (:stats, :limit n, :q to quit)")

	reader := bufio.NewReader(h.in)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		input := strings.TrimSpace(line)
		if input != "" && !h.handleLine(input) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// handleLine processes one line and reports whether to keep going.
func (h *InputHandler) handleLine(input string) bool {
	switch {
	case input == ":q":
		return false
	case input == ":stats":
		h.printStats()
		return true
	case strings.HasPrefix(input, ":limit"):
		h.setLimit(strings.TrimSpace(strings.TrimPrefix(input, ":limit")))
		return true
	}
	h.handleInput(input)
	return true
}

func (h *InputHandler) handleInput(raw string) {
	h.requestCount++
	prefix := dictionary.Normalize(raw)
	n := utf8.RuneCountInString(prefix)

	if n < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if h.maxPrefixLength > 0 && n > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.out.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	reports := bench.QuerySet(h.indices, prefix, h.suggestLimit)
	found := slices.ContainsFunc(reports, func(r bench.QueryReport) bool { return len(r.Suggestions) > 0 })
	if !found {
		h.out.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Suggestions for '%s' (limit %d):", prefix, h.suggestLimit)
	h.out.Print("\n" + bench.QueryTable(reports))
	log.Debugf("Handled %d requests", h.requestCount)
}

func (h *InputHandler) setLimit(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		h.out.Errorf("Invalid limit: %q", arg)
		return
	}
	h.suggestLimit = n
	h.out.Printf("limit set to %d", n)
}

func (h *InputHandler) printStats() {
	stats := h.indices.Stats()
	for _, kind := range h.indices.Kinds() {
		s := stats[string(kind)]
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%s", k, utils.FormatWithCommas(s[k]))
		}
		h.out.Printf("%-9s %s", kind, strings.Join(parts, " "))
	}
}

func kindList(kinds []suggest.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
