package telegram

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/service"
)

func renderNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestRenderCard(t *testing.T) {
	it := *entities.NewReviewItem("a", "What does len(nil) return?", "0", renderNow())
	it.Category = "Go"
	it.Explanation = "len of a nil slice is 0."

	hidden := renderCard(it, false, 2, 5)
	assert.Contains(t, hidden, "*Card 2 of 5*")
	assert.Contains(t, hidden, md("What does len(nil) return?"))
	assert.NotContains(t, hidden, "Answer")

	shown := renderCard(it, true, 2, 5)
	assert.Contains(t, shown, "*Answer: *0")
	assert.Contains(t, shown, italic("len of a nil slice is 0."))
	assert.Contains(t, shown, "Confidence: 🟠 50%")
}

func TestRenderGraded(t *testing.T) {
	now := renderNow()
	it := *entities.NewReviewItem("a", "p", "a", now)
	_ = it.ApplyResponse(entities.QualityGood, now)

	text := renderGraded(it, entities.QualityGood, now, false)
	assert.Contains(t, text, "✅")
	assert.Contains(t, text, "in 1 day")
	assert.NotContains(t, text, "could not be saved")

	text = renderGraded(it, entities.QualityBlackout, now, true)
	assert.Contains(t, text, "❌")
	assert.Contains(t, text, "*Forgot*")
	assert.Contains(t, text, "could not be saved")
}

func TestRenderSessionDone(t *testing.T) {
	start := renderNow()
	stats := entities.NewSessionStats(start)
	stats.Record(entities.QualityPerfect)
	stats.Record(entities.QualityWrong)

	text := renderSessionDone(stats, start.Add(90*time.Second))
	assert.Contains(t, text, "Accuracy: 50%")
	assert.Contains(t, text, "Time: 1m 30s")

	assert.Equal(t, md(msgNothingDue), renderSessionDone(entities.NewSessionStats(start), start))
}

func TestRenderList_Truncates(t *testing.T) {
	now := renderNow()
	items := make([]entities.ReviewItem, 0, maxListItems+5)
	for i := 0; i < maxListItems+5; i++ {
		items = append(items, *entities.NewReviewItem(fmt.Sprint(i), fmt.Sprintf("prompt %d", i), "a", now))
	}

	text := renderList(items, entities.Filter{Kind: entities.FilterDue, Category: "Go"}, now)
	assert.Contains(t, text, md("Due items in Go (35)"))
	assert.Contains(t, text, "and 5 more")
	assert.Equal(t, maxListItems, strings.Count(text, "due now"))

	empty := renderList(nil, entities.Filter{Kind: entities.FilterNew}, now)
	assert.Contains(t, empty, "Nothing matches")
}

func TestRenderAttempt(t *testing.T) {
	assert.Contains(t, renderAttempt(service.AnswerCheck{Verdict: service.VerdictExact}), "Exactly")
	assert.Contains(t, renderAttempt(service.AnswerCheck{Verdict: service.VerdictClose, Similarity: 0.875}), "88%")
	assert.Contains(t, renderAttempt(service.AnswerCheck{Verdict: service.VerdictWrong}), "Not quite")
}

func TestRenderReminder(t *testing.T) {
	assert.Contains(t, renderReminder(1, 40), "1 item is due")
	assert.Contains(t, renderReminder(3, 72), "3 items are due")
}

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░]", buildProgressBar(0, 0, 4))
	assert.Equal(t, "[██░░]", buildProgressBar(5, 10, 4))
	assert.Equal(t, "[████]", buildProgressBar(12, 10, 4))
}

func TestGradeKeyboard(t *testing.T) {
	kb := buildGradeKeyboard("a")

	var labels []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			labels = append(labels, b.Text)
		}
	}

	assert.Equal(t, []string{"Forgot", "Hard", "Good", "Easy", "Very easy"}, labels)
}
