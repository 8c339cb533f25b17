package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:          "remove <name>",
	Short:        "Remove snapshot",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		st, err := storageBackend(ctx)
		if err != nil {
			return err
		}

		return st.Delete(ctx, args[0])
	},
}
