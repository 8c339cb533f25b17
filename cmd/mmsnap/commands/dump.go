package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/PowerDNS/multimap/utils"
)

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringP("format", "f", "text",
		"Output format, one of: 'text' (default), 'yaml'")
}

var dumpCmd = &cobra.Command{
	Use:          "dump <name>",
	Short:        "Dump snapshot contents for debugging",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		if format != "text" && format != "yaml" {
			return fmt.Errorf("output format not supported: %s", format)
		}

		s, err := newSnapshotter(ctx)
		if err != nil {
			return err
		}
		m, err := s.Load(ctx, args[0])
		if err != nil {
			return err
		}

		// Buffered output speeds things up
		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()

		switch format {
		case "text":
			outf := func(sfmt string, args ...any) {
				_, _ = fmt.Fprintf(out, sfmt, args...)
			}
			outf("### %s (%d keys, %d entries)\n\n",
				args[0], m.KeySet().Len(), m.Len())
			for k, vs := range m.Grouped() {
				for _, v := range vs {
					outf("%s  =  %s\n",
						utils.DisplayASCIIString(k),
						utils.DisplayASCIIString(v))
				}
			}
			return nil
		case "yaml":
			// MapSlice preserves the key insertion order in the output
			var doc yaml.MapSlice
			for k, vs := range m.Grouped() {
				doc = append(doc, yaml.MapItem{Key: k, Value: vs})
			}
			y, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			_, err = out.Write(y)
			return err
		default:
			panic("unhandled output format: " + format)
		}
	},
}
