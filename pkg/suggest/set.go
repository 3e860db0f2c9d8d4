package suggest

import "maps"

// Set holds indices by kind in the order they were added.
type Set struct {
	kinds   []Kind
	indices map[Kind]PrefixIndex
}

// NewSet builds an empty index for every kind. When cacheSize is positive
// each index is wrapped in a HotCache of that size.
func NewSet(kinds []Kind, cacheSize int) (*Set, error) {
	set := &Set{indices: make(map[Kind]PrefixIndex, len(kinds))}
	for _, kind := range kinds {
		idx, err := NewIndex(kind)
		if err != nil {
			return nil, err
		}
		set.Add(kind, idx)
	}
	return set.WithCache(cacheSize), nil
}

// WithCache returns a set whose indices are wrapped in a HotCache of size
// entries. A non-positive size returns s unchanged.
func (s *Set) WithCache(size int) *Set {
	if size <= 0 {
		return s
	}
	cached := &Set{indices: make(map[Kind]PrefixIndex, len(s.kinds))}
	for _, kind := range s.kinds {
		idx := s.indices[kind]
		if _, ok := idx.(*HotCache); !ok {
			idx = NewHotCache(idx, size)
		}
		cached.Add(kind, idx)
	}
	return cached
}

// Add registers idx under kind, replacing a previous index of that kind.
func (s *Set) Add(kind Kind, idx PrefixIndex) {
	if s.indices == nil {
		s.indices = make(map[Kind]PrefixIndex)
	}
	if _, ok := s.indices[kind]; !ok {
		s.kinds = append(s.kinds, kind)
	}
	s.indices[kind] = idx
}

// Get returns the index registered under kind.
func (s *Set) Get(kind Kind) (PrefixIndex, bool) {
	idx, ok := s.indices[kind]
	return idx, ok
}

// Kinds returns the registered kinds in insertion order.
func (s *Set) Kinds() []Kind {
	return append([]Kind(nil), s.kinds...)
}

// Indices returns the registered indices in insertion order.
func (s *Set) Indices() []PrefixIndex {
	out := make([]PrefixIndex, len(s.kinds))
	for i, kind := range s.kinds {
		out[i] = s.indices[kind]
	}
	return out
}

// Len returns the number of registered indices.
func (s *Set) Len() int {
	return len(s.kinds)
}

// Stats returns the statistics of every index keyed by kind.
func (s *Set) Stats() map[string]map[string]int {
	out := make(map[string]map[string]int, len(s.kinds))
	for kind, idx := range s.indices {
		out[string(kind)] = maps.Clone(idx.Stats())
	}
	return out
}
