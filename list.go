package multimap

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// List is a read-only view of an ordered sequence of elements. It is the
// element type of all sequence-shaped accessors on Multimap: it exposes the
// backing data without copying, but offers no way to modify it.
//
// The zero value is an empty list.
type List[E any] struct {
	elems []E
}

// ListOf returns a List over a copy of the given elements.
func ListOf[E any](elems ...E) List[E] {
	return List[E]{elems: slices.Clone(elems)}
}

// listView wraps a slice without copying. The caller guarantees the slice
// is never modified afterwards.
func listView[E any](elems []E) List[E] {
	return List[E]{elems: elems}
}

// Len returns the number of elements.
func (l List[E]) Len() int { return len(l.elems) }

// IsEmpty returns true if the list has no elements.
func (l List[E]) IsEmpty() bool { return len(l.elems) == 0 }

// At returns the element at index i. It panics if i is out of range,
// like a slice index would.
func (l List[E]) At(i int) E { return l.elems[i] }

// All returns a restartable iterator over the elements in order.
func (l List[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range l.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns the elements as a fresh slice that the caller may modify.
func (l List[E]) Slice() []E {
	if len(l.elems) == 0 {
		return nil
	}
	return slices.Clone(l.elems)
}

func (l List[E]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", e)
	}
	sb.WriteByte(']')
	return sb.String()
}
