package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().IntP("keep", "k", 10, "Number of newest snapshots to keep")
}

var pruneCmd = &cobra.Command{
	Use:          "prune",
	Short:        "Delete all but the newest snapshots",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		keep, err := cmd.Flags().GetInt("keep")
		if err != nil {
			return err
		}

		s, err := newSnapshotter(ctx)
		if err != nil {
			return err
		}
		removed, err := s.Prune(ctx, keep)
		if err != nil {
			return err
		}
		fmt.Printf("removed %d snapshots\n", removed)
		return nil
	},
}
