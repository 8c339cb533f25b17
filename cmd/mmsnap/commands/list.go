package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PowerDNS/simpleblob"
	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"

	"github.com/PowerDNS/multimap/snapshots"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("long", "l", false, "Add extra information, like size")
	listCmd.Flags().BoolP("time", "t", false, "Sort by snapshot time")
}

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "List snapshots",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()

		long, err := cmd.Flags().GetBool("long")
		if err != nil {
			return err
		}
		byTime, err := cmd.Flags().GetBool("time")
		if err != nil {
			return err
		}

		st, err := storageBackend(ctx)
		if err != nil {
			return err
		}
		list, err := st.List(ctx, conf.Snapshots.Prefix+"__")
		if err != nil {
			return err
		}
		if byTime {
			sortByTime(list)
		}

		for _, blob := range list {
			if long {
				fmt.Printf("%12d  %10s\t%s\n",
					blob.Size, datasize.ByteSize(blob.Size).HumanReadable(), blob.Name)
			} else {
				fmt.Printf("%s\n", blob.Name)
			}
		}
		return nil
	},
}

func sortByTime(list simpleblob.BlobList) {
	slices.SortFunc(list, func(a, b simpleblob.Blob) int {
		na, errA := snapshots.ParseName(a.Name)
		nb, errB := snapshots.ParseName(b.Name)
		// Invalid names are sorted by name, before valid names
		if errA != nil && errB != nil {
			return strings.Compare(a.Name, b.Name)
		}
		if errA != nil {
			return -1
		}
		if errB != nil {
			return 1
		}
		return na.Timestamp.Compare(nb.Timestamp)
	})
}
