package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// maxRankFrequency is the frequency given to the first line of a text
// dictionary that carries no explicit counts.
const maxRankFrequency = 1000000

// TextSource reads one "word<TAB>frequency" entry per line. Lines without
// a frequency are ranked by position, earlier lines scoring higher.
type TextSource struct {
	Path string
}

// Load parses the file at Path.
func (s TextSource) Load(ctx context.Context) ([]Entry, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open text dictionary %s: %w", s.Path, err)
	}
	defer file.Close()

	entries, err := ReadText(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read text dictionary %s: %w", s.Path, err)
	}
	log.Debugf("Loaded %d entries from text dictionary: %s", len(entries), s.Path)
	return entries, nil
}

// ReadText parses text dictionary lines from r. Blank lines and lines
// starting with # are skipped.
func ReadText(ctx context.Context, r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	lineNum := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		word := Normalize(parts[0])
		if word == "" {
			continue
		}

		freq := max(maxRankFrequency-lineNum, 1)
		if len(parts) > 1 {
			f, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil || f < 0 {
				log.Warnf("Skipping line %d with invalid frequency %q", lineNum, parts[1])
				continue
			}
			freq = f
		}
		entries = append(entries, Entry{Word: word, Frequency: freq})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
