package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Format identifies a dictionary file layout.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV            // word,count rows
	FormatText           // word[\tfreq] lines
	FormatBinary         // length-prefixed binary records
)

// FormatInfo describes a supported dictionary file format.
type FormatInfo struct {
	Format      Format
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[Format]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		Description: "CSV Dictionary",
		Extensions:  []string{".csv"},
		MinSize:     1,
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ".tsv"},
		MinSize:     1,
	},
	FormatBinary: {
		Format:      FormatBinary,
		Description: "Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
}

func (f Format) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFormat checks that filename is plausibly a dictionary of format.
func ValidateFormat(filename string, format Format) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	if fileInfo.Size() < info.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for %s (minimum: %d bytes)",
			filename, fileInfo.Size(), info.Description, info.MinSize)
	}

	if format == FormatBinary {
		return validateBinaryHeader(filename)
	}
	return nil
}

func validateBinaryHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("%w: failed to read header from %s: %v", ErrCorruptBinary, filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("%w: negative word count in %s: %d", ErrCorruptBinary, filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFormat picks the format of filename from its extension and validates it.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, candidate := range info.Extensions {
			if ext != candidate {
				continue
			}
			if err := ValidateFormat(filename, format); err != nil {
				return FormatUnknown, err
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// OpenSource returns the Source able to read filename.
func OpenSource(filename string) (Source, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	log.Debugf("Detected %s for %s", format, filename)

	switch format {
	case FormatCSV:
		return CSVSource{Path: filename}, nil
	case FormatText:
		return TextSource{Path: filename}, nil
	case FormatBinary:
		return BinarySource{Path: filename}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}
