package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/recall-bot/internal/service"
)

var (
	resetCategory string
	resetAll      bool
)

var resetCmd = &cobra.Command{
	Use:   "reset [ID...]",
	Short: "Clear the review history of items",
	Long: `Puts the selected items back into the never-reviewed state so they are due now.
Select items by id, by --category, or the whole collection with --all.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(args) == 0 && resetCategory == "" && !resetAll {
			return errors.New("pass item ids, --category or --all")
		}

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		scope := service.ResetScope{IDs: args, Category: resetCategory}
		n, err := service.NewResetService(a.store, a.logger).Reset(ctx, scope, time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reset %d item(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetCategory, "category", "", "reset every item in this category")
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "reset the whole collection")
	rootCmd.AddCommand(resetCmd)
}
