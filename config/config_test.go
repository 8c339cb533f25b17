package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	c := Default()
	c.Storage.Type = "memory"
	return c
}

func TestCheck(t *testing.T) {
	assert.NoError(t, validConfig().Check())

	c := validConfig()
	c.Storage.Type = ""
	assert.Error(t, c.Check())

	c = validConfig()
	c.Snapshots.Prefix = ""
	assert.Error(t, c.Check())

	c = validConfig()
	c.Snapshots.Prefix = "a__b"
	assert.Error(t, c.Check())

	c = validConfig()
	c.Log.Level = "nope"
	assert.Error(t, c.Check())
}

func TestLoadYAML(t *testing.T) {
	c := Default()
	err := c.LoadYAML([]byte(`
storage:
  type: fs
  options:
    root_path: /tmp/snapshots
snapshots:
  prefix: dnstable
log:
  level: debug
`), false)
	require.NoError(t, err)
	require.NoError(t, c.Check())

	assert.Equal(t, "fs", c.Storage.Type)
	assert.Equal(t, "/tmp/snapshots", c.Storage.Options["root_path"])
	assert.Equal(t, "dnstable", c.Snapshots.Prefix)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadYAMLStrict(t *testing.T) {
	c := Default()
	err := c.LoadYAML([]byte("no_such_key: true\n"), false)
	assert.Error(t, err)
}

func TestLoadYAMLExpandEnv(t *testing.T) {
	t.Setenv("TEST_SNAP_PREFIX", "fromenv")
	c := Default()
	err := c.LoadYAML([]byte("snapshots:\n  prefix: ${TEST_SNAP_PREFIX}\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", c.Snapshots.Prefix)
}
