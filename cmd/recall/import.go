package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/recall-bot/internal/repository"
	"github.com/aliskhannn/recall-bot/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge review items from a JSON file into the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		items, err := repository.ReadItemsFile(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := service.NewImporter(a.store, a.logger).Import(ctx, items, time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new, updated %d.\n", res.Added, res.Updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
