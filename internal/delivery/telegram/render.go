package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/service"
)

const (
	maxListItems   = 30
	maxPromptRunes = 80
	dateLayout     = "Jan 2, 2006"
)

// renderCard renders the card at the head of the queue. position is 1-based.
func renderCard(it entities.ReviewItem, revealed bool, position, total int) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Card %d of %d", position, total)))
	if meta := cardMeta(it); meta != "" {
		sb.WriteString("  " + italic(meta))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md(it.Prompt))

	if revealed {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Answer: ") + md(it.Answer))
		if it.Explanation != "" {
			sb.WriteString("\n" + italic(it.Explanation))
		}
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("Reviews: %d · Streak: %d · Confidence: %s %d%%",
			it.ReviewCount, it.CorrectStreak, bandEmoji(it.Band()), it.Confidence)))
		sb.WriteString("\n\n")
		sb.WriteString(md("How well did you remember it?"))
	}

	return sb.String()
}

func cardMeta(it entities.ReviewItem) string {
	var parts []string
	if it.Category != "" {
		parts = append(parts, it.Category)
	}
	if it.Difficulty != "" {
		parts = append(parts, string(it.Difficulty))
	}
	return strings.Join(parts, " · ")
}

// renderGraded summarizes a graded card.
func renderGraded(it entities.ReviewItem, q entities.Quality, now time.Time, saveFailed bool) string {
	mark := "✅"
	if !q.Passed() {
		mark = "❌"
	}

	var sb strings.Builder
	sb.WriteString(md(mark+" ") + bold(q.Label()) + md(" · "+truncate(it.Prompt, maxPromptRunes)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Next review %s (%s), ease %.2f",
		formatDueIn(it.DaysUntilDue(now)), it.NextReviewAt.Format(dateLayout), it.EaseFactor)))

	if saveFailed {
		sb.WriteString("\n\n" + md(msgSaveFailed))
	}

	return sb.String()
}

// renderSessionDone renders the summary shown when the queue runs out.
func renderSessionDone(stats entities.SessionStats, now time.Time) string {
	if stats.Reviewed == 0 {
		return md(msgNothingDue)
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n%s",
		bold("🏁 Session complete"),
		md(fmt.Sprintf("Reviewed: %d (✅ %d · ❌ %d)", stats.Reviewed, stats.Correct, stats.Incorrect)),
		md(fmt.Sprintf("Accuracy: %d%%", stats.Accuracy())),
		md(fmt.Sprintf("Time: %s", formatElapsed(stats.Elapsed(now)))),
	)
}

// renderAttempt reports how a typed attempt compares with the answer.
func renderAttempt(check service.AnswerCheck) string {
	switch check.Verdict {
	case service.VerdictExact:
		return md("🎯 Exactly right!")
	case service.VerdictClose:
		return md(fmt.Sprintf("👌 Close enough (%.0f%% match).", check.Similarity*100))
	default:
		return md("🤔 Not quite.")
	}
}

// renderDue renders the /due overview.
func renderDue(due []entities.ReviewItem, categories []string, now time.Time) string {
	if len(due) == 0 {
		return md(msgNothingDue)
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("⏰ %d due", len(due))))
	if len(categories) > 0 {
		sb.WriteString("\n" + md("Categories: "+strings.Join(categories, ", ")))
	}
	sb.WriteString("\n\n")
	writeItemLines(&sb, due, now)

	return sb.String()
}

// renderList renders /list output.
func renderList(items []entities.ReviewItem, filter entities.Filter, now time.Time) string {
	title := fmt.Sprintf("📚 %s items", filterTitle(filter.Kind))
	if filter.Category != "" {
		title += " in " + filter.Category
	}

	if len(items) == 0 {
		return bold(title) + "\n\n" + md("Nothing matches.")
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("%s (%d)", title, len(items))))
	sb.WriteString("\n\n")
	writeItemLines(&sb, items, now)

	return sb.String()
}

func writeItemLines(sb *strings.Builder, items []entities.ReviewItem, now time.Time) {
	shown := items
	if len(shown) > maxListItems {
		shown = shown[:maxListItems]
	}

	for i, it := range shown {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(md(fmt.Sprintf("%s %s · %s · %d%%",
			bandEmoji(it.Band()), truncate(it.Prompt, maxPromptRunes), formatDueIn(it.DaysUntilDue(now)), it.Confidence)))
	}

	if rest := len(items) - len(shown); rest > 0 {
		sb.WriteString("\n" + italic(fmt.Sprintf("…and %d more", rest)))
	}
}

// renderStats renders /stats.
func renderStats(cs entities.CollectionSummary, session entities.SessionStats, now time.Time) string {
	text := fmt.Sprintf("%s\n\n%s\n%s\n%s\n%s\n%s\n%s",
		bold("📊 Statistics"),
		md(buildProgressBar(cs.Total-cs.New, cs.Total, 20)),
		md(fmt.Sprintf("📚 Items: %d", cs.Total)),
		md(fmt.Sprintf("⏰ Due now: %d", cs.Due)),
		md(fmt.Sprintf("🆕 Never reviewed: %d", cs.New)),
		md(fmt.Sprintf("🧗 Difficult: %d", cs.Difficult)),
		md(fmt.Sprintf("🎯 Average confidence: %d%%", cs.AverageConfidence)),
	)

	if session.Reviewed > 0 {
		text += "\n\n" + fmt.Sprintf("%s\n%s\n%s",
			bold("This session"),
			md(fmt.Sprintf("Reviewed: %d · Accuracy: %d%%", session.Reviewed, session.Accuracy())),
			md(fmt.Sprintf("Time: %s", formatElapsed(session.Elapsed(now)))),
		)
	}

	return text
}

// renderReminder renders the due reminder.
func renderReminder(due, averageConfidence int) string {
	noun := "items are"
	if due == 1 {
		noun = "item is"
	}

	return fmt.Sprintf("%s\n\n%s",
		bold("⏰ Time to review"),
		md(fmt.Sprintf("%d %s due. Average confidence: %d%%.", due, noun, averageConfidence)),
	)
}

func renderCategoryPicker(categories []string) string {
	return bold("Which category?") + "\n\n" + md(strings.Join(categories, ", "))
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := min(current*length/total, length)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
