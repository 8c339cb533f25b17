package multimap

import "iter"

// Views over a Multimap never own data: they reference the backing multimap
// and are built lazily on first access. A view cell is published with
// CompareAndSwap, so concurrent first accesses agree on a single fully
// constructed view.

// Entries returns the flattened (key, value) pair view. Pairs iterate in
// key-major, value-minor order: all values of the first key, then all values
// of the second key, and so on.
func (m *Multimap[K, V]) Entries() *EntrySeq[K, V] {
	if es := m.entries.Load(); es != nil {
		return es
	}
	es := &EntrySeq[K, V]{m: m}
	if m.entries.CompareAndSwap(nil, es) {
		return es
	}
	return m.entries.Load()
}

// EntrySeq is the flattened entry view of a Multimap.
type EntrySeq[K comparable, V comparable] struct {
	m *Multimap[K, V]
}

// Len equals the owning multimap's Len.
func (es *EntrySeq[K, V]) Len() int { return es.m.total }

// Contains reports whether the exact (key, value) pair is present.
func (es *EntrySeq[K, V]) Contains(key K, value V) bool {
	return es.m.ContainsEntry(key, value)
}

// All returns a restartable iterator over all pairs.
func (es *EntrySeq[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range es.m.keys {
			for _, v := range es.m.groups[k] {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Values returns the flattened value view, in the same traversal order as
// Entries.
func (m *Multimap[K, V]) Values() *ValueSeq[K, V] {
	if vs := m.values.Load(); vs != nil {
		return vs
	}
	vs := &ValueSeq[K, V]{m: m}
	if m.values.CompareAndSwap(nil, vs) {
		return vs
	}
	return m.values.Load()
}

// ValueSeq is the flattened value view of a Multimap.
type ValueSeq[K comparable, V comparable] struct {
	m *Multimap[K, V]
}

// Len equals the owning multimap's Len.
func (vs *ValueSeq[K, V]) Len() int { return vs.m.total }

// Contains reports whether any key maps to this value. O(Len), see
// Multimap.ContainsValue.
func (vs *ValueSeq[K, V]) Contains(value V) bool {
	return vs.m.ContainsValue(value)
}

// All returns a restartable iterator over all values in entry order.
func (vs *ValueSeq[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, k := range vs.m.keys {
			for _, v := range vs.m.groups[k] {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// AsMap returns the grouped map view: each distinct key together with its
// value sequence, in key insertion order. The view is a cheap wrapper and
// is constructed on every call.
func (m *Multimap[K, V]) AsMap() GroupedMap[K, V] {
	return GroupedMap[K, V]{m: m}
}

// GroupedMap is a read-only map view from keys to their value sequences.
// It replaces direct exposure of the backing map: sequences come out as
// read-only Lists, so no caller can reach modifiable state.
type GroupedMap[K comparable, V comparable] struct {
	m *Multimap[K, V]
}

// Len returns the number of distinct keys.
func (gm GroupedMap[K, V]) Len() int { return len(gm.m.keys) }

// Get returns the value sequence for key and whether the key is present.
func (gm GroupedMap[K, V]) Get(key K) (List[V], bool) {
	vs, ok := gm.m.groups[key]
	return listView(vs), ok
}

// All returns a restartable iterator over (key, sequence) pairs in key
// insertion order.
func (gm GroupedMap[K, V]) All() iter.Seq2[K, List[V]] {
	return func(yield func(K, List[V]) bool) {
		for _, k := range gm.m.keys {
			if !yield(k, listView(gm.m.groups[k])) {
				return
			}
		}
	}
}
