package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultimapFromYAML(t *testing.T) {
	m, err := multimapFromYAML([]byte(`
b:
  - "2"
  - "3"
a: "1"
empty:
`))
	require.NoError(t, err)

	// Document order wins over alphabetic order, keys without values
	// disappear.
	assert.Equal(t, []string{"b", "a"}, m.KeySet().Slice())
	assert.Equal(t, []string{"2", "3"}, m.Get("b").Slice())
	assert.Equal(t, []string{"1"}, m.Get("a").Slice())
	assert.False(t, m.ContainsKey("empty"))
	assert.Equal(t, 3, m.Len())
}

func TestMultimapFromYAMLEmpty(t *testing.T) {
	m, err := multimapFromYAML(nil)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestMultimapFromYAMLInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"non-string value":      "a: 42\n",
		"non-string list value": "a:\n  - 42\n",
		"nested mapping":        "a:\n  b: c\n",
		"not yaml":              "a: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := multimapFromYAML([]byte(doc))
			assert.Error(t, err)
		})
	}
}
