package suggest

import (
	"reflect"
	"testing"
)

func TestHotCacheMatchesIndex(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			plain, _ := NewIndex(kind)
			inner, _ := NewIndex(kind)
			cached := NewHotCache(inner, 8)
			load(plain, sampleDict)
			load(cached, sampleDict)

			for _, prefix := range []string{"", "a", "an", "pro", "be", "zzz"} {
				for _, limit := range []int{0, 1, 3, 50} {
					want := plain.Complete(prefix, limit)
					first := cached.Complete(prefix, limit)
					second := cached.Complete(prefix, limit)
					if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(second, want) {
						t.Errorf("Complete(%q, %d) = %v / %v, want %v", prefix, limit, first, second, want)
					}
					if first == nil || second == nil {
						t.Errorf("Complete(%q, %d) returned nil, want empty slice", prefix, limit)
					}
				}
			}
		})
	}
}

func TestHotCacheEmptyHitIsNotNil(t *testing.T) {
	cached := NewHotCache(NewTrieIndex(), 4)
	load(cached, progDict)

	for i := range 3 {
		got := cached.Complete("zzz", 5)
		if got == nil || len(got) != 0 {
			t.Errorf("call %d: Complete(zzz) = %#v, want empty non-nil slice", i, got)
		}
	}
	if hits := cached.Stats()["cacheHits"]; hits != 2 {
		t.Errorf("cacheHits = %d, want 2", hits)
	}
}

func TestHotCacheCountsHits(t *testing.T) {
	cached := NewHotCache(NewTrieIndex(), 8)
	load(cached, progDict)

	cached.Suggest("prog", 3)
	cached.Suggest("prog", 3)
	cached.Suggest("prog", 2)

	stats := cached.Stats()
	if stats["cacheHits"] != 1 || stats["cacheMisses"] != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", stats["cacheHits"], stats["cacheMisses"])
	}
	if stats["cachedPrefixes"] != 1 {
		t.Errorf("cachedPrefixes = %d, want 1", stats["cachedPrefixes"])
	}
	if stats["totalWords"] != len(progDict) {
		t.Errorf("totalWords = %d, want %d", stats["totalWords"], len(progDict))
	}
}

func TestHotCacheInsertInvalidatesPrefixes(t *testing.T) {
	cached := NewHotCache(NewTrieIndex(), 8)
	load(cached, progDict)

	cached.Suggest("", 1)
	cached.Suggest("p", 1)
	cached.Suggest("prog", 1)
	cached.Suggest("programming", 1)
	cached.Suggest("progress", 1)

	cached.Insert("programmer", 500)

	if got := cached.Suggest("prog", 1); !reflect.DeepEqual(got, []string{"programmer"}) {
		t.Errorf("Suggest(prog) after insert = %v", got)
	}
	if got := cached.Suggest("", 1); !reflect.DeepEqual(got, []string{"programmer"}) {
		t.Errorf("Suggest(\"\") after insert = %v", got)
	}

	// untouched branch stays cached
	before := cached.Stats()["cacheHits"]
	cached.Suggest("progress", 1)
	if after := cached.Stats()["cacheHits"]; after != before+1 {
		t.Errorf("progress should still be cached: hits %d -> %d", before, after)
	}
}

func TestHotCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cached := NewHotCache(NewTSTIndex(), 2)
	load(cached, sampleDict)

	cached.Suggest("a", 1)
	cached.Suggest("b", 1)
	cached.Suggest("a", 1)
	cached.Suggest("p", 1) // evicts "b"

	if n := cached.Stats()["cachedPrefixes"]; n != 2 {
		t.Fatalf("cachedPrefixes = %d, want 2", n)
	}

	hits := cached.Stats()["cacheHits"]
	cached.Suggest("a", 1)
	if cached.Stats()["cacheHits"] != hits+1 {
		t.Error("a should have survived eviction")
	}
	misses := cached.Stats()["cacheMisses"]
	cached.Suggest("b", 1)
	if cached.Stats()["cacheMisses"] != misses+1 {
		t.Error("b should have been evicted")
	}
}

func TestHotCacheResultsAreCopies(t *testing.T) {
	cached := NewHotCache(NewTrieIndex(), 4)
	load(cached, progDict)

	got := cached.Complete("prog", 3)
	got[0].Word = "mutated"

	again := cached.Complete("prog", 3)
	if again[0].Word != "program" {
		t.Errorf("cache was mutated through a returned slice: %v", again)
	}
	if _, ok := cached.Unwrap().(*TrieIndex); !ok {
		t.Errorf("Unwrap() = %T", cached.Unwrap())
	}
}
