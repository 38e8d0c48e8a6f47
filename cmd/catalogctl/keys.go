package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"musicstore/internal/storage"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored collection keys and their sizes",
	RunE:  runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kv, err := storage.Open(storage.Options{
		Driver:      cfg.StorageDriver,
		DatabaseURL: cfg.DatabaseURL,
		BoltPath:    cfg.BoltPath,
	})
	if err != nil {
		return err
	}
	defer kv.Close()

	keys, err := kv.Keys(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES")
	for _, k := range keys {
		v, err := kv.Get(ctx, k)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\n", k, len(v))
	}
	return tw.Flush()
}
