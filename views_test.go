package multimap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesOrder(t *testing.T) {
	m := buildSample(t)
	es := m.Entries()

	assert.Equal(t, 3, es.Len())

	type pair struct {
		k string
		v int
	}
	var got []pair
	for k, v := range es.All() {
		got = append(got, pair{k, v})
	}
	assert.Equal(t, []pair{{"a", 1}, {"a", 2}, {"b", 3}}, got)

	// Restartable: a second pass yields the same sequence.
	var again []pair
	for k, v := range es.All() {
		again = append(again, pair{k, v})
	}
	assert.Equal(t, got, again)

	assert.True(t, es.Contains("a", 2))
	assert.False(t, es.Contains("b", 2))
}

func TestEntriesMatchesKeySetTimesGet(t *testing.T) {
	b := NewBuilder[string, string]()
	require.NoError(t, b.PutAll("x", "1", "2"))
	require.NoError(t, b.Put("y", "3"))
	require.NoError(t, b.PutAll("z", "4", "5", "6"))
	m := b.Build()

	var want [][2]string
	for k := range m.KeySet().All() {
		for v := range m.Get(k).All() {
			want = append(want, [2]string{k, v})
		}
	}
	var got [][2]string
	for k, v := range m.Entries().All() {
		got = append(got, [2]string{k, v})
	}
	assert.Equal(t, want, got)
}

func TestValuesOrder(t *testing.T) {
	m := buildSample(t)
	vs := m.Values()

	assert.Equal(t, 3, vs.Len())

	var got []int
	for v := range vs.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, vs.Contains(2))
	assert.False(t, vs.Contains(9))
}

func TestKeyMultiset(t *testing.T) {
	m := buildSample(t)
	ks := m.Keys()

	assert.Equal(t, 2, ks.Count("a"))
	assert.Equal(t, 1, ks.Count("b"))
	assert.Equal(t, 0, ks.Count("missing"))
	assert.Equal(t, 2, ks.Distinct())
	assert.Equal(t, 3, ks.Len())
	assert.True(t, ks.Contains("a"))
	assert.False(t, ks.Contains("missing"))

	// Each key repeats once per value, occurrences contiguous.
	var got []string
	for k := range ks.All() {
		got = append(got, k)
	}
	assert.Equal(t, []string{"a", "a", "b"}, got)

	var counts []int
	var keys []string
	for k, n := range ks.Counts() {
		keys = append(keys, k)
		counts = append(counts, n)
	}
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []int{2, 1}, counts)
}

func TestKeyMultisetCountsMatchGet(t *testing.T) {
	b := NewBuilder[string, int]()
	require.NoError(t, b.PutAll("p", 1, 2, 3))
	require.NoError(t, b.PutAll("q", 4))
	require.NoError(t, b.PutAll("r", 5, 6))
	m := b.Build()

	ks := m.Keys()
	for k := range m.KeySet().All() {
		assert.Equal(t, m.Get(k).Len(), ks.Count(k))
	}
	assert.Equal(t, m.KeySet().Len(), ks.Distinct())
	assert.Equal(t, m.Len(), ks.Len())
}

func TestAsMap(t *testing.T) {
	m := buildSample(t)
	gm := m.AsMap()

	assert.Equal(t, 2, gm.Len())

	vs, ok := gm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, vs.Slice())

	_, ok = gm.Get("missing")
	assert.False(t, ok)

	var keys []string
	var lens []int
	for k, l := range gm.All() {
		keys = append(keys, k)
		lens = append(lens, l.Len())
	}
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []int{2, 1}, lens)
}

func TestViewsMemoized(t *testing.T) {
	m := buildSample(t)

	assert.Same(t, m.Entries(), m.Entries())
	assert.Same(t, m.Values(), m.Values())
	assert.Same(t, m.Keys(), m.Keys())
}

func TestViewsMemoizedConcurrently(t *testing.T) {
	m := buildSample(t)

	const n = 16
	entries := make([]*EntrySeq[string, int], n)
	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			entries[i] = m.Entries()
		}(i)
	}
	start.Done()
	wg.Wait()

	// All goroutines must observe the same fully built view.
	for i := 1; i < n; i++ {
		assert.Same(t, entries[0], entries[i])
	}
}

func TestEmptyViews(t *testing.T) {
	m := Empty[string, int]()

	assert.Equal(t, 0, m.Entries().Len())
	assert.Equal(t, 0, m.Values().Len())
	assert.Equal(t, 0, m.Keys().Len())
	assert.Equal(t, 0, m.Keys().Distinct())
	assert.Equal(t, 0, m.AsMap().Len())

	for range m.Entries().All() {
		t.Fatal("empty multimap yielded an entry")
	}
}
