package pure

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Entry is one memoized key/value pair.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Table memoizes the results of a pure function keyed by an ordered input.
//
// All reads and writes go through one lock per table, so concurrent callers
// never observe a partially written entry.
type Table[K cmp.Ordered, V any] struct {
	mu   sync.RWMutex
	memo map[K]V
}

// NewTable returns a table seeded with a copy of entries. A nil map yields an empty table.
func NewTable[K cmp.Ordered, V any](entries map[K]V) *Table[K, V] {
	memo := make(map[K]V, len(entries))
	maps.Copy(memo, entries)
	return &Table[K, V]{memo: memo}
}

// Load returns the memoized value for k without computing anything.
func (t *Table[K, V]) Load(k K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.memo[k]
	return v, ok
}

// Memoize returns the value stored for k. On a miss it calls compute exactly
// once and commits the result only if retain accepts it (a nil retain keeps
// everything). The second return value reports whether k was a hit.
func (t *Table[K, V]) Memoize(k K, compute func(K) V, retain func(V) bool) (V, bool) {
	if v, ok := t.Load(k); ok {
		return v, true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// another writer may have won the race between the two locks
	if v, ok := t.memo[k]; ok {
		return v, true
	}
	v := compute(k)
	if retain == nil || retain(v) {
		t.memo[k] = v
	}
	return v, false
}

// Len reports the number of stored entries.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.memo)
}

// Entries returns every stored pair in ascending key order.
func (t *Table[K, V]) Entries() []Entry[K, V] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := slices.Sorted(maps.Keys(t.memo))
	entries := make([]Entry[K, V], len(keys))
	for i, k := range keys {
		entries[i] = Entry[K, V]{Key: k, Value: t.memo[k]}
	}
	return entries
}

// Select copies the entries accepted by keep into a fresh map.
func (t *Table[K, V]) Select(keep func(K, V) bool) map[K]V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[K]V)
	for k, v := range t.memo {
		if keep(k, v) {
			out[k] = v
		}
	}
	return out
}
