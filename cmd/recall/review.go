package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/service"
)

var reviewCmd = &cobra.Command{
	Use:   "review [category]",
	Short: "Review due items in the terminal",
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

		filter := entities.Filter{Kind: entities.FilterAll, Category: strings.Join(args, " ")}

		t := &terminal{
			reviews: scheduler,
			checker: service.NewAnswerChecker(),
			in:      bufio.NewScanner(cmd.InOrStdin()),
			out:     cmd.OutOrStdout(),
			logger:  a.logger,
			now:     time.Now,
		}
		return t.run(ctx, filter)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

const terminalHelp = "Enter: show answer · type an attempt · s: skip · q: quit"

// terminal runs a review session over line-based input.
type terminal struct {
	reviews *service.ReviewScheduler
	checker *service.AnswerChecker
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
	now     func() time.Time
}

func (t *terminal) run(ctx context.Context, filter entities.Filter) error {
	if len(t.reviews.StartSession(t.now(), filter)) == 0 {
		fmt.Fprintln(t.out, "Nothing is due.")
		return nil
	}

	fmt.Fprintln(t.out, terminalHelp)

	suggested := entities.QualityGood
	showCard := true

	for {
		cur, err := t.reviews.Current()
		if err != nil {
			break
		}

		if showCard {
			t.printCard(cur)
			showCard = false
		}

		line, ok := t.readLine()
		if !ok || line == "q" {
			break
		}

		if !t.reviews.Revealed() {
			switch line {
			case "":
			case "s":
				if len(t.reviews.Queue()) < 2 {
					fmt.Fprintln(t.out, "This is the last card.")
					continue
				}
				t.reviews.Skip()
				showCard = true
				continue
			default:
				check := t.checker.Check(line, cur.Answer)
				suggested = check.Suggested
				fmt.Fprintln(t.out, attemptVerdict(check))
			}

			if _, err := t.reviews.RevealAnswer(); err != nil {
				return err
			}
			t.printAnswer(cur, suggested)
			continue
		}

		q := suggested
		if line != "" {
			q, err = entities.ParseQuality(line)
			if err != nil {
				fmt.Fprintln(t.out, "Enter a grade from 0 to 5.")
				continue
			}
		}

		item, err := t.reviews.Grade(ctx, cur.ID, q, t.now())
		switch {
		case errors.Is(err, service.ErrSaveFailed):
			fmt.Fprintln(t.out, "Progress could not be saved. It will be retried.")
		case err != nil:
			return err
		}

		fmt.Fprintf(t.out, "%s. Next review %s.\n\n", q.Label(), dueLabel(item.DaysUntilDue(t.now())))
		suggested = entities.QualityGood
		showCard = true
	}

	if t.reviews.Dirty() {
		if err := t.reviews.Flush(ctx); err != nil {
			t.logger.Error("review progress not saved", zap.Error(err))
			fmt.Fprintln(t.out, "Progress could not be saved.")
		}
	}

	writeSession(t.out, t.reviews.EndSession(), t.now())
	return nil
}

func (t *terminal) readLine() (string, bool) {
	fmt.Fprint(t.out, "> ")
	if !t.in.Scan() {
		fmt.Fprintln(t.out)
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *terminal) printCard(it entities.ReviewItem) {
	stats := t.reviews.Stats()
	position := stats.Reviewed + 1
	total := stats.Reviewed + len(t.reviews.Queue())

	header := fmt.Sprintf("[%d/%d]", position, total)
	if it.Category != "" {
		header += " " + it.Category
	}

	fmt.Fprintf(t.out, "%s\n%s\n", header, it.Prompt)
}

func (t *terminal) printAnswer(it entities.ReviewItem, suggested entities.Quality) {
	fmt.Fprintf(t.out, "Answer: %s\n", it.Answer)
	if it.Explanation != "" {
		fmt.Fprintln(t.out, it.Explanation)
	}
	fmt.Fprintf(t.out, "Grade 0-5 (Enter for %d, %s):\n", suggested, suggested.Label())
}

func attemptVerdict(check service.AnswerCheck) string {
	switch check.Verdict {
	case service.VerdictExact:
		return "Exactly right!"
	case service.VerdictClose:
		return fmt.Sprintf("Close enough (%.0f%% match).", check.Similarity*100)
	default:
		return "Not quite."
	}
}
