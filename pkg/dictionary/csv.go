package dictionary

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// CSVSource reads "word,count" rows. A first row whose count column is
// not a number is treated as a header.
type CSVSource struct {
	Path string
}

// Load parses the file at Path.
func (s CSVSource) Load(ctx context.Context) ([]Entry, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv dictionary %s: %w", s.Path, err)
	}
	defer file.Close()

	entries, err := ReadCSV(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv dictionary %s: %w", s.Path, err)
	}
	log.Debugf("Loaded %d entries from csv dictionary: %s", len(entries), s.Path)
	return entries, nil
}

// ReadCSV parses csv records from r.
func ReadCSV(ctx context.Context, r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []Entry
	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if len(record) < 2 {
			log.Warnf("Skipping malformed csv row %d: %v", row, record)
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			if row == 1 {
				log.Debugf("Skipping csv header: %v", record)
			} else {
				log.Warnf("Skipping csv row %d with invalid count %q", row, record[1])
			}
			continue
		}
		if count < 0 {
			log.Warnf("Skipping csv row %d with negative count %d", row, count)
			continue
		}

		word := Normalize(record[0])
		if word == "" {
			continue
		}
		entries = append(entries, Entry{Word: word, Frequency: count})
	}
	return entries, nil
}
