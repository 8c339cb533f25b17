// Package multimap implements an immutable multimap: a container that
// associates each key with an ordered sequence of values, built once through
// a Builder or CopyOf and never changed afterwards.
//
// Iteration order is fully deterministic: keys iterate in the order of their
// first occurrence during construction, and the values of each key keep
// their exact put order, duplicates included. A fully constructed Multimap
// is safe for concurrent readers without locking.
//
// The wire subpackage implements a compact binary format for Multimap
// contents, and the snapshots subpackage persists encoded multimaps to a
// simpleblob storage backend.
package multimap

import (
	"fmt"
	"hash/maphash"
	"iter"
	"slices"
	"strings"

	"go.uber.org/atomic"
)

// hashSeed is shared by all Multimap instances so that equal instances hash
// equal within one process. Hashes are not stable across processes.
var hashSeed = maphash.MakeSeed()

// Multimap is an immutable mapping from keys to ordered value sequences.
//
// Instances are created with NewBuilder, CopyOf or Empty. The zero value is
// a valid empty multimap. All methods can be called concurrently.
type Multimap[K comparable, V comparable] struct {
	// keys holds the distinct keys in first-occurrence order; groups maps
	// each of them to its value sequence. Neither is modified after
	// construction. total is the cached sum of all group lengths.
	keys   []K
	groups map[K][]V
	total  int

	// Lazily built views. Each cell is written at most once with a fully
	// constructed view (CompareAndSwap, losers adopt the winner).
	entries atomic.Pointer[EntrySeq[K, V]]
	values  atomic.Pointer[ValueSeq[K, V]]
	keysmul atomic.Pointer[KeyMultiset[K, V]]
}

// Empty returns an empty multimap. All empty multimaps are interchangeable;
// use IsEmpty or Len to test for emptiness, never instance identity.
func Empty[K comparable, V comparable]() *Multimap[K, V] {
	return &Multimap[K, V]{}
}

// newMultimap is the only constructor for non-empty instances. The caller
// hands over ownership of keys and groups, which must be consistent with
// each other and with total.
func newMultimap[K comparable, V comparable](keys []K, groups map[K][]V, total int) *Multimap[K, V] {
	return &Multimap[K, V]{keys: keys, groups: groups, total: total}
}

// Len returns the total number of key-value entries. This is a cached
// count, not a recomputation.
func (m *Multimap[K, V]) Len() int { return m.total }

// IsEmpty returns true if the multimap has no entries.
func (m *Multimap[K, V]) IsEmpty() bool { return m.total == 0 }

// Get returns the value sequence for key, in put order. Unmapped keys yield
// an empty list, never a nil-like result.
func (m *Multimap[K, V]) Get(key K) List[V] {
	return listView(m.groups[key])
}

// ContainsKey returns true if at least one entry has this key.
func (m *Multimap[K, V]) ContainsKey(key K) bool {
	_, ok := m.groups[key]
	return ok
}

// ContainsEntry returns true if the exact (key, value) pair is present.
func (m *Multimap[K, V]) ContainsEntry(key K, value V) bool {
	return slices.Contains(m.groups[key], value)
}

// ContainsValue returns true if any key maps to this value. There is no
// value index; this scans every value sequence and costs O(Len).
func (m *Multimap[K, V]) ContainsValue(value V) bool {
	for _, vs := range m.groups {
		if slices.Contains(vs, value) {
			return true
		}
	}
	return false
}

// KeySet returns the distinct keys in first-occurrence order.
func (m *Multimap[K, V]) KeySet() List[K] {
	return listView(m.keys)
}

// Grouped iterates the grouped contents in key order, yielding each key with
// a copy of its value slice. It makes Multimap usable as a CopyOf Source;
// CopyOf itself short-circuits for Multimap arguments and never calls it.
func (m *Multimap[K, V]) Grouped() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for _, k := range m.keys {
			if !yield(k, slices.Clone(m.groups[k])) {
				return
			}
		}
	}
}

// Equal returns true if both multimaps hold the same grouped contents: the
// same key set, and for every key the same values in the same order. Key
// iteration order is not part of equality, matching map semantics.
func (m *Multimap[K, V]) Equal(other *Multimap[K, V]) bool {
	if other == nil {
		return false
	}
	if m == other {
		return true
	}
	if m.total != other.total || len(m.groups) != len(other.groups) {
		return false
	}
	for k, vs := range m.groups {
		if !slices.Equal(vs, other.groups[k]) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the grouped contents, consistent with Equal within
// this process: key order does not influence it, value order does.
func (m *Multimap[K, V]) Hash() uint64 {
	var h uint64
	for k, vs := range m.groups {
		g := maphash.Comparable(hashSeed, k)
		for _, v := range vs {
			g = g*31 + maphash.Comparable(hashSeed, v)
		}
		h += g
	}
	return h
}

// String renders the grouped map form in key insertion order, e.g.
// {a:[1 2] b:[3]}.
func (m *Multimap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%v", k, listView(m.groups[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Mutators. A Multimap cannot be changed after construction; every method
// below returns ErrReadOnly without touching any state. They exist so that
// a Multimap can stand in where a mutable multimap is expected and report
// the failed mutation instead of silently ignoring it.

// Put always returns ErrReadOnly.
func (m *Multimap[K, V]) Put(key K, value V) error { return ErrReadOnly }

// PutAll always returns ErrReadOnly.
func (m *Multimap[K, V]) PutAll(key K, values ...V) error { return ErrReadOnly }

// Remove always returns ErrReadOnly.
func (m *Multimap[K, V]) Remove(key K, value V) error { return ErrReadOnly }

// RemoveAll always returns ErrReadOnly.
func (m *Multimap[K, V]) RemoveAll(key K) error { return ErrReadOnly }

// ReplaceValues always returns ErrReadOnly.
func (m *Multimap[K, V]) ReplaceValues(key K, values ...V) error { return ErrReadOnly }

// Clear always returns ErrReadOnly.
func (m *Multimap[K, V]) Clear() error { return ErrReadOnly }
