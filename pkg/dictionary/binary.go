package dictionary

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Binary layout, little endian:
// int32 entry count, then per entry uint16 word length, the word bytes
// and a uint32 frequency.

// wordBufferPool is a pool of byte slices for word reads
var wordBufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

// BinarySource reads a binary dictionary file.
type BinarySource struct {
	Path string
}

// Load parses the file at Path.
func (s BinarySource) Load(ctx context.Context) ([]Entry, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open binary dictionary %s: %w", s.Path, err)
	}
	defer file.Close()

	entries, err := ReadBinary(ctx, bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read binary dictionary %s: %w", s.Path, err)
	}
	log.Debugf("Loaded %d entries from binary dictionary: %s", len(entries), s.Path)
	return entries, nil
}

// ReadBinary decodes a binary dictionary from r.
func ReadBinary(ctx context.Context, r io.Reader) ([]Entry, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrCorruptBinary, err)
	}
	if totalEntries < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrCorruptBinary, totalEntries)
	}
	log.Debugf("Total entries in binary dictionary: %d", totalEntries)

	entries := make([]Entry, 0, min(int(totalEntries), 1<<16))
	for i := 0; i < int(totalEntries); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return nil, truncated(i, err)
		}

		bufPtr := wordBufferPool.Get().(*[]byte)
		buffer := *bufPtr
		if cap(buffer) < int(wordLen) {
			buffer = make([]byte, wordLen)
		}
		wordBytes := buffer[:wordLen]
		_, err := io.ReadFull(r, wordBytes)
		word := string(wordBytes)
		wordBufferPool.Put(bufPtr)
		if err != nil {
			return nil, truncated(i, err)
		}

		var freq uint32
		if err := binary.Read(r, binary.LittleEndian, &freq); err != nil {
			return nil, truncated(i, err)
		}

		word = Normalize(word)
		if word == "" {
			continue
		}
		entries = append(entries, Entry{Word: word, Frequency: int(min(uint64(freq), math.MaxInt))})
	}
	return entries, nil
}

func truncated(entry int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated at entry %d", ErrCorruptBinary, entry)
	}
	return err
}

// WriteBinary encodes entries in the binary dictionary layout.
func WriteBinary(w io.Writer, entries []Entry) error {
	if len(entries) > math.MaxInt32 {
		return fmt.Errorf("too many entries for binary dictionary: %d", len(entries))
	}

	writer := bufio.NewWriter(w)
	if err := binary.Write(writer, binary.LittleEndian, int32(len(entries))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return fmt.Errorf("word too long for binary dictionary: %d bytes", len(e.Word))
		}
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return fmt.Errorf("writing word length: %w", err)
		}
		if _, err := writer.WriteString(e.Word); err != nil {
			return fmt.Errorf("writing word %s: %w", e.Word, err)
		}
		freq := uint32(min(int64(max(e.Frequency, 0)), math.MaxUint32))
		if err := binary.Write(writer, binary.LittleEndian, freq); err != nil {
			return fmt.Errorf("writing frequency for word %s: %w", e.Word, err)
		}
	}
	return writer.Flush()
}

// SaveBinary writes entries to a binary dictionary file at path.
func SaveBinary(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create binary dictionary %s: %w", path, err)
	}
	if err := WriteBinary(file, entries); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
