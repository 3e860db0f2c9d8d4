// Package bench measures how long prefix indices take to build and query
// and how much heap they hold.
package bench

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bastiangx/wordbench/internal/utils"
	"github.com/bastiangx/wordbench/pkg/dictionary"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/log"
)

// BuildReport describes one index build.
type BuildReport struct {
	Kind      suggest.Kind
	Words     int
	Duration  time.Duration
	HeapBytes int64
	Stats     map[string]int
}

// QueryReport describes one completion query.
type QueryReport struct {
	Kind        suggest.Kind
	Prefix      string
	Limit       int
	Suggestions []suggest.Suggestion
	Duration    time.Duration
}

// Build creates an index of kind and feeds it entries, measuring the time
// taken and the live heap it retains.
func Build(kind suggest.Kind, entries []dictionary.Entry) (suggest.PrefixIndex, BuildReport, error) {
	before := heapInUse()

	start := time.Now()
	idx, err := suggest.NewIndex(kind)
	if err != nil {
		return nil, BuildReport{}, err
	}
	dictionary.Feed(entries, idx)
	elapsed := time.Since(start)

	after := heapInUse()
	runtime.KeepAlive(idx)

	report := BuildReport{
		Kind:      kind,
		Words:     len(entries),
		Duration:  elapsed,
		HeapBytes: after - before,
		Stats:     idx.Stats(),
	}
	log.Debugf("Built %s: %d words in %v, heap %s", kind, report.Words, elapsed, utils.FormatBytes(report.HeapBytes))
	return idx, report, nil
}

// BuildSet builds every kind from the same entries. A positive cacheSize
// wraps each index in a HotCache after its build is measured.
func BuildSet(kinds []suggest.Kind, entries []dictionary.Entry, cacheSize int) (*suggest.Set, []BuildReport, error) {
	set := &suggest.Set{}
	reports := make([]BuildReport, 0, len(kinds))
	for _, kind := range kinds {
		idx, report, err := Build(kind, entries)
		if err != nil {
			return nil, nil, err
		}
		set.Add(kind, idx)
		reports = append(reports, report)
	}
	if cacheSize > 0 {
		log.Debugf("Hot cache enabled: %d prefixes per index", cacheSize)
	}
	return set.WithCache(cacheSize), reports, nil
}

// Query runs one completion against idx and times it.
func Query(idx suggest.PrefixIndex, prefix string, limit int) QueryReport {
	start := time.Now()
	suggestions := idx.Complete(prefix, limit)
	return QueryReport{
		Prefix:      prefix,
		Limit:       limit,
		Suggestions: suggestions,
		Duration:    time.Since(start),
	}
}

// QuerySet runs the same completion against every index of set.
func QuerySet(set *suggest.Set, prefix string, limit int) []QueryReport {
	reports := make([]QueryReport, 0, set.Len())
	for _, kind := range set.Kinds() {
		idx, _ := set.Get(kind)
		report := Query(idx, prefix, limit)
		report.Kind = kind
		reports = append(reports, report)
	}
	return reports
}

// Compare describes the memory difference of every pair of builds, e.g.
// "trie uses more memory by 12.34%".
func Compare(reports []BuildReport) []string {
	var lines []string
	for i := 0; i < len(reports); i++ {
		for j := i + 1; j < len(reports); j++ {
			lines = append(lines, compareMemory(reports[i], reports[j]))
		}
	}
	return lines
}

func compareMemory(a, b BuildReport) string {
	if a.HeapBytes == b.HeapBytes {
		return fmt.Sprintf("%s and %s use the same amount of memory", a.Kind, b.Kind)
	}
	more, less := a, b
	if b.HeapBytes > a.HeapBytes {
		more, less = b, a
	}
	diff := more.HeapBytes - less.HeapBytes
	if less.HeapBytes <= 0 {
		return fmt.Sprintf("%s uses more memory by %s", more.Kind, utils.FormatBytes(diff))
	}
	pct := float64(diff) * 100 / float64(less.HeapBytes)
	return fmt.Sprintf("%s uses more memory by %.2f%%", more.Kind, pct)
}

// heapInUse collects garbage and returns the live heap size.
func heapInUse() int64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.HeapAlloc)
}
