package dictionary

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello", Normalize("  HeLLo \t"))
	assert.Equal(t, "ärger", Normalize("Ärger"))
	assert.Equal(t, "", Normalize("   "))
}

func TestReadCSVSkipsHeaderAndMalformedRows(t *testing.T) {
	input := "word,count\nThe,500\nprogram, 20\nbroken\nbad,x\nneg,-4\n ,9\nzeta,0\n"

	entries, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Word: "the", Frequency: 500},
		{Word: "program", Frequency: 20},
		{Word: "zeta", Frequency: 0},
	}, entries)
}

func TestReadCSVWithoutHeader(t *testing.T) {
	entries, err := ReadCSV(context.Background(), strings.NewReader("apple,3\nbanana,2\n"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "apple", entries[0].Word)
}

func TestReadCSVHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadCSV(ctx, strings.NewReader("apple,3\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadText(t *testing.T) {
	input := "# comment\nhello\t42\n\nWorld\nbad\tfreq\n"

	entries, err := ReadText(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Word: "hello", Frequency: 42}, entries[0])
	assert.Equal(t, "world", entries[1].Word)
	assert.Equal(t, maxRankFrequency-4, entries[1].Frequency)
}

func TestBinaryRoundTrip(t *testing.T) {
	want := []Entry{
		{Word: "program", Frequency: 20},
		{Word: "café", Frequency: 7},
		{Word: "a", Frequency: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, want))

	got, err := ReadBinary(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBinaryRoundTripFullUint32(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("frequencies above MaxInt32 need a 64-bit int")
	}
	var top uint32 = math.MaxUint32
	want := []Entry{
		{Word: "the", Frequency: int(top)},
		{Word: "of", Frequency: int(top/2) + 10},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, want))

	got, err := ReadBinary(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadBinaryCorrupt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []Entry{{Word: "hello", Frequency: 1}, {Word: "world", Frequency: 2}}))
	data := buf.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", data[:2]},
		{"truncated word", data[:8]},
		{"missing entry", data[:len(data)-3]},
		{"negative count", []byte{0xff, 0xff, 0xff, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBinary(context.Background(), bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrCorruptBinary)
		})
	}
}

func TestSaveAndOpenBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.bin")
	entries := []Entry{{Word: "hello", Frequency: 10}}
	require.NoError(t, SaveBinary(path, entries))

	src, err := OpenSource(path)
	require.NoError(t, err)
	assert.IsType(t, BinarySource{}, src)

	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestDetectFormat(t *testing.T) {
	csvPath := writeFile(t, "words.csv", "a,1\n")
	txtPath := writeFile(t, "words.txt", "a\n")
	tsvPath := writeFile(t, "words.tsv", "a\t1\n")
	shortBin := writeFile(t, "short.bin", "ab")
	unknown := writeFile(t, "words.json", "[]")

	format, err := DetectFormat(csvPath)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = DetectFormat(txtPath)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	format, err = DetectFormat(tsvPath)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = DetectFormat(shortBin)
	assert.Error(t, err)

	_, err = DetectFormat(unknown)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = DetectFormat(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestOpenSourceLoadsCSV(t *testing.T) {
	path := writeFile(t, "words.csv", "word,count\nhello,5\nhelp,9\n")

	src, err := OpenSource(path)
	require.NoError(t, err)

	entries, err := src.Load(context.Background())
	require.NoError(t, err)

	trie := suggest.NewTrieIndex()
	tst := suggest.NewTSTIndex()
	assert.Equal(t, 2, Feed(entries, trie, tst))
	assert.Equal(t, []string{"help", "hello"}, trie.Suggest("hel", 5))
	assert.Equal(t, []string{"help", "hello"}, tst.Suggest("hel", 5))
}

func TestDedupeKeepsLastFrequency(t *testing.T) {
	got := Dedupe([]Entry{{"a", 1}, {"b", 2}, {"a", 3}})
	assert.Equal(t, []Entry{{"a", 3}, {"b", 2}}, got)
}

func TestRedisSource(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, StoreRedis(ctx, rdb, "words", []Entry{
		{Word: "apple", Frequency: 100},
		{Word: "apply", Frequency: 10},
	}))
	rdb.ZAdd(ctx, "words", redis.Z{Score: 50, Member: "Application"})

	entries, err := RedisSource{Client: rdb, Key: "words"}.Load(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Entry{
		{Word: "apple", Frequency: 100},
		{Word: "apply", Frequency: 10},
		{Word: "application", Frequency: 50},
	}, entries)

	idx := suggest.NewTSTIndex()
	Feed(entries, idx)
	assert.Equal(t, []string{"apple", "application"}, idx.Suggest("app", 2))
}

func TestRedisSourceDefaultKeyEmpty(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	entries, err := RedisSource{Client: rdb}.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewRedisClientFailures(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
