package multimap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *Multimap[string, int] {
	t.Helper()
	b := NewBuilder[string, int]()
	require.NoError(t, b.Put("a", 1))
	require.NoError(t, b.Put("a", 2))
	require.NoError(t, b.Put("b", 3))
	return b.Build()
}

func TestAccessors(t *testing.T) {
	m := buildSample(t)

	assert.Equal(t, 3, m.Len())
	assert.False(t, m.IsEmpty())
	assert.Equal(t, []string{"a", "b"}, m.KeySet().Slice())
	assert.Equal(t, []int{1, 2}, m.Get("a").Slice())
	assert.Equal(t, []int{3}, m.Get("b").Slice())

	assert.True(t, m.ContainsKey("a"))
	assert.False(t, m.ContainsKey("c"))
	assert.True(t, m.ContainsEntry("a", 2))
	assert.False(t, m.ContainsEntry("a", 3))
	assert.False(t, m.ContainsEntry("c", 1))
	assert.True(t, m.ContainsValue(3))
	assert.False(t, m.ContainsValue(42))
}

func TestGetAbsentKey(t *testing.T) {
	m := buildSample(t)

	got := m.Get("missing")
	assert.Equal(t, 0, got.Len())
	assert.True(t, got.IsEmpty())
	assert.Nil(t, got.Slice())
}

func TestSizeMatchesGroupLengths(t *testing.T) {
	b := NewBuilder[string, string]()
	require.NoError(t, b.PutAll("x", "1", "2", "3"))
	require.NoError(t, b.Put("y", "4"))
	require.NoError(t, b.PutAll("x", "5"))
	m := b.Build()

	sum := 0
	for k := range m.KeySet().All() {
		sum += m.Get(k).Len()
	}
	assert.Equal(t, sum, m.Len())
	assert.Equal(t, 5, m.Len())
}

func TestEmpty(t *testing.T) {
	m := Empty[string, int]()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.KeySet().Len())
	assert.True(t, m.Get("a").IsEmpty())
	assert.Equal(t, "{}", m.String())

	// The zero value behaves the same.
	var zero Multimap[string, int]
	assert.True(t, zero.IsEmpty())
	assert.True(t, m.Equal(&zero))
}

func TestEqualAndHash(t *testing.T) {
	m1 := buildSample(t)
	m2 := buildSample(t)

	assert.True(t, m1.Equal(m1))
	assert.True(t, m1.Equal(m2))
	assert.Equal(t, m1.Hash(), m2.Hash())

	// Key insertion order is not part of equality.
	b := NewBuilder[string, int]()
	require.NoError(t, b.Put("b", 3))
	require.NoError(t, b.PutAll("a", 1, 2))
	reordered := b.Build()
	assert.True(t, m1.Equal(reordered))
	assert.Equal(t, m1.Hash(), reordered.Hash())

	// Value order is.
	b = NewBuilder[string, int]()
	require.NoError(t, b.PutAll("a", 2, 1))
	require.NoError(t, b.Put("b", 3))
	assert.False(t, m1.Equal(b.Build()))

	// Different contents.
	b = NewBuilder[string, int]()
	require.NoError(t, b.Put("a", 1))
	assert.False(t, m1.Equal(b.Build()))
	assert.False(t, m1.Equal(nil))
	assert.False(t, m1.Equal(Empty[string, int]()))
}

func TestString(t *testing.T) {
	assert.Equal(t, "{a:[1 2] b:[3]}", buildSample(t).String())
}

func TestMutatorsRejected(t *testing.T) {
	m := buildSample(t)

	assert.ErrorIs(t, m.Put("c", 4), ErrReadOnly)
	assert.ErrorIs(t, m.PutAll("c", 4, 5), ErrReadOnly)
	assert.ErrorIs(t, m.Remove("a", 1), ErrReadOnly)
	assert.ErrorIs(t, m.RemoveAll("a"), ErrReadOnly)
	assert.ErrorIs(t, m.ReplaceValues("a", 9), ErrReadOnly)
	assert.ErrorIs(t, m.Clear(), ErrReadOnly)

	// Nothing observable changed.
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"a", "b"}, m.KeySet().Slice())
	assert.Equal(t, []int{1, 2}, m.Get("a").Slice())
	assert.Equal(t, []int{3}, m.Get("b").Slice())
}

func TestListOf(t *testing.T) {
	src := []int{1, 2, 3}
	l := ListOf(src...)
	src[0] = 99 // the list copied the input

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 1, l.At(0))
	assert.Equal(t, []int{1, 2, 3}, l.Slice())
	assert.Equal(t, "[1 2 3]", l.String())

	var collected []int
	for v := range l.All() {
		collected = append(collected, v)
	}
	assert.Equal(t, []int{1, 2, 3}, collected)
}
