package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/PowerDNS/multimap/snapshots"
)

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("output", "o", "",
		"Output filename, if not the same as the remote name")

	rootCmd.AddCommand(putCmd)
	putCmd.Flags().StringP("name", "n", "",
		"Name to store the snapshot as, if different from the local name")
	putCmd.Flags().Bool("force", false, "Force the use of an invalid snapshot name")
}

var getCmd = &cobra.Command{
	Use:          "get <name>",
	Short:        "Download a snapshot",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		outName, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		if outName == "" {
			outName = args[0]
		}

		st, err := storageBackend(ctx)
		if err != nil {
			return err
		}
		data, err := st.Load(ctx, args[0])
		if err != nil {
			return err
		}

		return os.WriteFile(outName, data, 0666)
	},
}

var putCmd = &cobra.Command{
	Use:          "put <file>",
	Short:        "Upload a snapshot",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		if name == "" {
			name = filepath.Base(args[0])
		}
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		if _, err = snapshots.ParseName(name); err != nil {
			if !force {
				return fmt.Errorf(
					"invalid snapshot name (use -n to specify a different one, or "+
						"--force to skip this check): %v", err)
			}
			logrus.WithError(err).Warn("Invalid snapshot name forced")
		}

		st, err := storageBackend(ctx)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return st.Store(ctx, name, data)
	},
}
