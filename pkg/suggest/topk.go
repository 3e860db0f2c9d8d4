package suggest

import "container/heap"

// outranks reports whether a sorts before b: higher frequency first,
// then lexicographically smaller word.
func outranks(a, b Suggestion) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return a.Word < b.Word
}

// rankQueue is an unbounded max-heap. Everything is pushed first and
// the best entries are popped after enumeration finishes.
type rankQueue []Suggestion

func (q rankQueue) Len() int           { return len(q) }
func (q rankQueue) Less(i, j int) bool { return outranks(q[i], q[j]) }
func (q rankQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *rankQueue) Push(x any) {
	*q = append(*q, x.(Suggestion))
}

func (q *rankQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// offer adds a candidate.
func (q *rankQueue) offer(s Suggestion) {
	heap.Push(q, s)
}

// take pops up to limit entries in descending rank.
func (q *rankQueue) take(limit int) []Suggestion {
	n := min(limit, q.Len())
	if n <= 0 {
		return []Suggestion{}
	}
	out := make([]Suggestion, 0, n)
	for len(out) < n {
		out = append(out, heap.Pop(q).(Suggestion))
	}
	return out
}

// minRank is the heap order backing TopK, worst entry on top.
type minRank []Suggestion

func (m minRank) Len() int           { return len(m) }
func (m minRank) Less(i, j int) bool { return outranks(m[j], m[i]) }
func (m minRank) Swap(i, j int)      { m[i], m[j] = m[j], m[i] }

func (m *minRank) Push(x any) {
	*m = append(*m, x.(Suggestion))
}

func (m *minRank) Pop() any {
	old := *m
	n := len(old)
	item := old[n-1]
	*m = old[:n-1]
	return item
}

// TopK keeps the k best suggestions offered to it. Once full, a new
// candidate is admitted only if it outranks the current worst entry,
// which is evicted.
type TopK struct {
	k    int
	heap minRank
}

// NewTopK creates a collection bounded to k entries. k <= 0 keeps nothing.
func NewTopK(k int) *TopK {
	if k < 0 {
		k = 0
	}
	return &TopK{
		k:    k,
		heap: make(minRank, 0, min(k, 64)),
	}
}

// Offer considers s for admission.
func (t *TopK) Offer(s Suggestion) {
	if t.k == 0 {
		return
	}
	if len(t.heap) < t.k {
		heap.Push(&t.heap, s)
		return
	}
	if outranks(s, t.heap[0]) {
		t.heap[0] = s
		heap.Fix(&t.heap, 0)
	}
}

// Len returns the number of retained entries.
func (t *TopK) Len() int {
	return len(t.heap)
}

// Sorted drains the collection and returns its entries best first.
func (t *TopK) Sorted() []Suggestion {
	out := make([]Suggestion, len(t.heap))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.heap).(Suggestion)
	}
	return out
}
