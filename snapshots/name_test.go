package snapshots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 17, 13, 14, 15, 123456789, time.UTC)
	name := Name("dnstable", ts)
	assert.Equal(t, "dnstable__20240517-131415-123456789.mm.gz", name)

	ni, err := ParseName(name)
	require.NoError(t, err)
	assert.Equal(t, name, ni.FullName)
	assert.Equal(t, "dnstable", ni.Prefix)
	assert.True(t, ts.Equal(ni.Timestamp))
}

func TestNameOrderMatchesTime(t *testing.T) {
	t0 := time.Date(2024, 5, 17, 13, 14, 15, 999999999, time.UTC)
	t1 := t0.Add(time.Nanosecond)
	assert.Less(t, Name("p", t0), Name("p", t1))
}

func TestParseNameInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no-dot", "nodotatall"},
		{"wrong-extension", "p__20240517-131415-123456789.pb.gz"},
		{"missing-parts", "20240517-131415-123456789.mm.gz"},
		{"extra-parts", "a__b__20240517-131415-123456789.mm.gz"},
		{"short-timestamp", "p__20240517.mm.gz"},
		{"bad-timestamp", "p__99999999-999999-999999999.mm.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseName(tt.in)
			assert.Error(t, err)
		})
	}
}
