package multimap

import (
	"iter"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Source is a grouped key-to-values view that CopyOf can snapshot. Grouped
// must yield each key at most once, in a stable order of the source's
// choosing, together with that key's values in order.
type Source[K comparable, V any] interface {
	IsEmpty() bool
	Grouped() iter.Seq2[K, []V]
}

// Builder accumulates key-value pairs for a Multimap under construction.
// It preserves the first-occurrence order of keys and the put order of
// values within each key, duplicates included.
//
// A Builder can be reused: Build may be called any number of times, and
// puts between builds only affect later builds. A Builder is not safe for
// concurrent use.
type Builder[K comparable, V comparable] struct {
	keys   []K
	groups map[K][]V
}

// NewBuilder returns an empty builder.
func NewBuilder[K comparable, V comparable]() *Builder[K, V] {
	return &Builder[K, V]{groups: make(map[K][]V)}
}

// Put appends one value to the key's sequence, registering the key if it is
// new. It returns ErrNilArgument without adding anything when the key or
// value is nil-like.
func (b *Builder[K, V]) Put(key K, value V) error {
	if lo.IsNil(key) {
		return errors.Wrap(ErrNilArgument, "put key")
	}
	if lo.IsNil(value) {
		return errors.Wrap(ErrNilArgument, "put value")
	}
	b.add(key, value)
	return nil
}

// PutAll appends each value to the key's sequence. It returns
// ErrNilArgument when the key or any value is nil-like. Values preceding a
// nil-like value remain committed: PutAll is not atomic, and callers that
// need all-or-nothing behavior must validate the values up front.
func (b *Builder[K, V]) PutAll(key K, values ...V) error {
	return b.PutSeq(key, slices.Values(values))
}

// PutSeq is PutAll for an iterator of values. It has the same non-atomic
// failure behavior.
func (b *Builder[K, V]) PutSeq(key K, values iter.Seq[V]) error {
	if lo.IsNil(key) {
		return errors.Wrap(ErrNilArgument, "put key")
	}
	for v := range values {
		if lo.IsNil(v) {
			return errors.Wrap(ErrNilArgument, "put value")
		}
		b.add(key, v)
	}
	return nil
}

func (b *Builder[K, V]) add(key K, value V) {
	if _, ok := b.groups[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.groups[key] = append(b.groups[key], value)
}

// IsEmpty returns true if nothing has been put yet.
func (b *Builder[K, V]) IsEmpty() bool { return len(b.keys) == 0 }

// Grouped iterates the staged contents in key order. The yielded slices are
// the builder's own staging storage and must not be modified.
func (b *Builder[K, V]) Grouped() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for _, k := range b.keys {
			if !yield(k, b.groups[k]) {
				return
			}
		}
	}
}

// Build freezes the currently staged contents into a new Multimap. The
// builder stays usable afterwards; the returned instance is independent of
// any further puts and of other builds.
func (b *Builder[K, V]) Build() *Multimap[K, V] {
	return CopyOf[K, V](b)
}

// CopyOf returns a Multimap with the same grouped contents as src.
//
// Two cases short-circuit: an empty source returns Empty, and a source that
// already is a *Multimap is returned as-is, since it can never change.
// Otherwise the source is traversed exactly once in its own order; value
// slices are copied, and keys whose group is empty are skipped entirely, so
// sources that can yield empty groups are handled safely. A source yielding
// the same key twice has its later values appended to the earlier group.
func CopyOf[K comparable, V comparable](src Source[K, V]) *Multimap[K, V] {
	if src == nil || src.IsEmpty() {
		return Empty[K, V]()
	}
	if m, ok := src.(*Multimap[K, V]); ok {
		return m
	}

	var (
		keys   []K
		groups = make(map[K][]V)
		total  int
	)
	for k, vs := range src.Grouped() {
		if len(vs) == 0 {
			continue
		}
		if existing, ok := groups[k]; ok {
			groups[k] = append(existing, vs...)
		} else {
			keys = append(keys, k)
			groups[k] = slices.Clone(vs)
		}
		total += len(vs)
	}
	if total == 0 {
		return Empty[K, V]()
	}
	return newMultimap(keys, groups, total)
}
