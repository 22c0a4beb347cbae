package telegram

import (
	"fmt"
	"time"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

func bandEmoji(b entities.ConfidenceBand) string {
	switch b {
	case entities.ConfidenceHigh:
		return "🟢"
	case entities.ConfidenceGood:
		return "🟡"
	case entities.ConfidenceFair:
		return "🟠"
	default:
		return "🔴"
	}
}

func formatDueIn(days int) string {
	switch {
	case days <= 0:
		return "due now"
	case days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %02ds", int(d.Minutes()), int(d.Seconds())%60)
}

func filterTitle(k entities.FilterKind) string {
	switch k {
	case entities.FilterDue:
		return "Due"
	case entities.FilterNew:
		return "New"
	case entities.FilterDifficult:
		return "Difficult"
	default:
		return "All"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
