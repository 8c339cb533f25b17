package multimap

import "iter"

// Keys returns the key multiset view: every key appears once per value it
// maps to. No duplicates are materialized; the view derives counts from the
// group lengths. Because the backing map groups all values of a key
// together, all occurrences of a key are guaranteed to be contiguous in
// iteration order.
func (m *Multimap[K, V]) Keys() *KeyMultiset[K, V] {
	if ks := m.keysmul.Load(); ks != nil {
		return ks
	}
	ks := &KeyMultiset[K, V]{m: m}
	if m.keysmul.CompareAndSwap(nil, ks) {
		return ks
	}
	return m.keysmul.Load()
}

// KeyMultiset is the duplicate-counting key view of a Multimap.
type KeyMultiset[K comparable, V comparable] struct {
	m *Multimap[K, V]
}

// Count returns how often key occurs, which equals the length of its value
// sequence. Absent keys count 0.
func (ks *KeyMultiset[K, V]) Count(key K) int {
	return len(ks.m.groups[key])
}

// Distinct returns the number of distinct keys.
func (ks *KeyMultiset[K, V]) Distinct() int {
	return len(ks.m.keys)
}

// Len returns the weighted total: the sum of all counts, which equals the
// owning multimap's Len.
func (ks *KeyMultiset[K, V]) Len() int { return ks.m.total }

// Contains reports whether key occurs at least once.
func (ks *KeyMultiset[K, V]) Contains(key K) bool {
	return ks.m.ContainsKey(key)
}

// All returns a restartable iterator that yields each key once per
// occurrence. Occurrences of the same key are consecutive.
func (ks *KeyMultiset[K, V]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range ks.m.keys {
			for range ks.m.groups[k] {
				if !yield(k) {
					return
				}
			}
		}
	}
}

// Counts returns a restartable iterator over (key, count) pairs in key
// insertion order.
func (ks *KeyMultiset[K, V]) Counts() iter.Seq2[K, int] {
	return func(yield func(K, int) bool) {
		for _, k := range ks.m.keys {
			if !yield(k, len(ks.m.groups[k])) {
				return
			}
		}
	}
}
