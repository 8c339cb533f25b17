package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/PowerDNS/multimap"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createHelp = `Create a snapshot from a YAML document of keys to value lists:

    example-key:
      - first value
      - second value
    other-key: single value

Keys keep the document order, values keep the list order. Keys without
values are not stored.
`

var createCmd = &cobra.Command{
	Use:          "create <yaml-file>",
	Short:        "Create a snapshot from a YAML document",
	Long:         createHelp,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		contents, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		m, err := multimapFromYAML(contents)
		if err != nil {
			return err
		}

		s, err := newSnapshotter(ctx)
		if err != nil {
			return err
		}
		ni, stats, err := s.Save(ctx, m)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"filename":        ni.FullName,
			"entries":         m.Len(),
			"raw_size":        stats.RawSize.HumanReadable(),
			"compressed_size": stats.CompressedSize.HumanReadable(),
		}).Info("Snapshot created")
		fmt.Println(ni.FullName)
		return nil
	},
}

// multimapFromYAML builds a string multimap from an ordered YAML mapping of
// key to value list. A plain scalar value counts as a single-value list.
func multimapFromYAML(contents []byte) (*multimap.Multimap[string, string], error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, err
	}

	b := multimap.NewBuilder[string, string]()
	for _, item := range doc {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("key is not a string: %v", item.Key)
		}
		switch v := item.Value.(type) {
		case nil:
			// Key without values, skipped like an empty group
		case string:
			if err := b.Put(key, v); err != nil {
				return nil, err
			}
		case []interface{}:
			for _, e := range v {
				ev, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("value for key %q is not a string: %v", key, e)
				}
				if err := b.Put(key, ev); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("value for key %q is not a string or list: %v", key, v)
		}
	}
	return b.Build(), nil
}
