package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the items due for review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		scheduler, err := a.newScheduler(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		due := scheduler.LoadDueItems(now)
		if len(due) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing is due.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d due\n\n", len(due))
		return writeItemTable(cmd.OutOrStdout(), due, now)
	},
}

var listCmd = &cobra.Command{
	Use:   "list [all|due|new|difficult] [category]",
	Short: "List the collection, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		filter := parseFilterArgs(args)

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		scheduler, err := a.newScheduler(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		items := scheduler.ListItems(now, filter)
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing matches.")
			return nil
		}

		return writeItemTable(cmd.OutOrStdout(), items, now)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		scheduler, err := a.newScheduler(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		writeSummary(cmd.OutOrStdout(), entities.Summarize(scheduler.Items(), now))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dueCmd, listCmd, statsCmd)
}

// parseFilterArgs reads "[kind] [category...]". A first word that is not a
// filter kind starts the category.
func parseFilterArgs(args []string) entities.Filter {
	if len(args) == 0 {
		return entities.Filter{Kind: entities.FilterAll}
	}

	kind, err := entities.ParseFilterKind(args[0])
	if err != nil {
		return entities.Filter{Kind: entities.FilterAll, Category: strings.Join(args, " ")}
	}

	return entities.Filter{Kind: kind, Category: strings.Join(args[1:], " ")}
}

func writeItemTable(w io.Writer, items []entities.ReviewItem, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tCATEGORY\tPROMPT\tNEXT\tEASE\tCONF")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%d%%\n",
			it.ID,
			orDash(it.Category),
			shorten(it.Prompt, 50),
			dueLabel(it.DaysUntilDue(now)),
			it.EaseFactor,
			it.Confidence,
		)
	}

	return tw.Flush()
}

func writeSummary(w io.Writer, cs entities.CollectionSummary) {
	fmt.Fprintf(w, "Items:              %d\n", cs.Total)
	fmt.Fprintf(w, "Due now:            %d\n", cs.Due)
	fmt.Fprintf(w, "Never reviewed:     %d\n", cs.New)
	fmt.Fprintf(w, "Difficult:          %d\n", cs.Difficult)
	fmt.Fprintf(w, "Average confidence: %d%%\n", cs.AverageConfidence)
}

func writeSession(w io.Writer, stats entities.SessionStats, now time.Time) {
	if stats.Reviewed == 0 {
		fmt.Fprintln(w, "No cards reviewed.")
		return
	}

	fmt.Fprintf(w, "Reviewed %d (%d correct, %d incorrect), accuracy %d%%, time %s\n",
		stats.Reviewed, stats.Correct, stats.Incorrect, stats.Accuracy(),
		stats.Elapsed(now).Round(time.Second))
}

func dueLabel(days int) string {
	switch {
	case days <= 0:
		return "due now"
	case days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
