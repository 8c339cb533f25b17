// Package config implements the YAML config file parser for the mmsnap CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/PowerDNS/multimap/config/logger"
)

// Config is the config root object
type Config struct {
	Storage   Storage       `yaml:"storage"`
	Snapshots Snapshots     `yaml:"snapshots"`
	Log       logger.Config `yaml:"log"`

	// Set to current version by main
	Version string `yaml:"-"`
}

// Storage selects and configures the simpleblob storage backend that
// holds the snapshots.
type Storage struct {
	Type    string                 `yaml:"type"`    // e.g. "fs", "memory" or "s3"
	Options map[string]interface{} `yaml:"options"` // backend specific options
}

// Snapshots configures how snapshots are named.
type Snapshots struct {
	Prefix string `yaml:"prefix"` // name prefix, one logical table per prefix
}

// Default returns a Config with all defaults set.
func Default() Config {
	return Config{
		Snapshots: Snapshots{
			Prefix: "multimap",
		},
		Log: logger.DefaultConfig,
	}
}

// Check validates a Config instance
func (c Config) Check() error {
	if err := c.Log.Check(); err != nil {
		return err
	}
	if c.Storage.Type == "" {
		return fmt.Errorf("no storage.type configured")
	}
	if c.Snapshots.Prefix == "" {
		return fmt.Errorf("no snapshots.prefix configured")
	}
	if strings.Contains(c.Snapshots.Prefix, "__") ||
		strings.ContainsAny(c.Snapshots.Prefix, "/.") {
		return fmt.Errorf("snapshots.prefix: must not contain '__', '/' or '.'")
	}
	return nil
}

// String returns the config as a YAML string.
func (c Config) String() string {
	y, err := yaml.Marshal(c)
	if err != nil {
		logrus.Panicf("YAML marshal of config failed: %v", err) // Should never happen
	}
	return string(y)
}

// LoadYAML loads config from YAML. Any set value overwrites any existing
// value, but omitted keys are untouched.
func (c *Config) LoadYAML(yamlContents []byte, expandEnv bool) error {
	if expandEnv {
		yamlContents = []byte(os.ExpandEnv(string(yamlContents)))
	}
	return yaml.UnmarshalStrict(yamlContents, c)
}

// LoadYAMLFile loads config from a YAML file. If optional is true, a
// missing file is not an error.
func (c *Config) LoadYAMLFile(fpath string, optional bool) error {
	contents, err := os.ReadFile(fpath)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return c.LoadYAML(contents, true)
}
