package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/repository"
	"github.com/aliskhannn/recall-bot/internal/service"
)

var errDiskFull = errors.New("disk full")

type failingSaveStore struct {
	*repository.MemoryStore
}

func (s failingSaveStore) Save(context.Context, []entities.ReviewItem) error {
	return errDiskFull
}

func testItems(now time.Time) []entities.ReviewItem {
	first := entities.NewReviewItem("a", "What starts a goroutine?", "go", now.Add(-2*time.Hour))
	first.Category = "Go"

	second := entities.NewReviewItem("b", "Zero value of a map?", "nil", now.Add(-time.Hour))
	second.Category = "Go"

	return []entities.ReviewItem{*first, *second}
}

func newTestTerminal(t *testing.T, store service.ItemStore, input string, now time.Time) (*terminal, *bytes.Buffer) {
	t.Helper()

	scheduler := service.NewReviewScheduler(store, zap.NewNop())
	require.NoError(t, scheduler.Load(context.Background()))

	out := &bytes.Buffer{}
	return &terminal{
		reviews: scheduler,
		checker: service.NewAnswerChecker(),
		in:      bufio.NewScanner(strings.NewReader(input)),
		out:     out,
		logger:  zap.NewNop(),
		now:     func() time.Time { return now },
	}, out
}

func TestTerminal_GradesWholeSession(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore(testItems(now)...)

	// Reveal and grade the first card, then type a wrong attempt for the
	// second and accept the suggested grade.
	term, out := newTestTerminal(t, store, "\n4\nempty map\n\n", now)
	require.NoError(t, term.run(context.Background(), entities.Filter{Kind: entities.FilterAll}))

	text := out.String()
	assert.Contains(t, text, "[1/2] Go\nWhat starts a goroutine?")
	assert.Contains(t, text, "Answer: go")
	assert.Contains(t, text, "Easy. Next review in 1 day.")
	assert.Contains(t, text, "[2/2] Go\nZero value of a map?")
	assert.Contains(t, text, "Not quite.")
	assert.Contains(t, text, "Enter for 1, Wrong")
	assert.Contains(t, text, "Wrong. Next review in 1 day.")
	assert.Contains(t, text, "Reviewed 2 (1 correct, 1 incorrect), accuracy 50%")

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 1, saved[0].ReviewCount)
	assert.Equal(t, 60, saved[0].Confidence)
	assert.Equal(t, 1, saved[1].IncorrectCount)
	assert.Equal(t, 35, saved[1].Confidence)
}

func TestTerminal_SkipAndQuit(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore(testItems(now)...)

	term, out := newTestTerminal(t, store, "s\nq\n", now)
	require.NoError(t, term.run(context.Background(), entities.Filter{Kind: entities.FilterAll}))

	text := out.String()
	assert.Contains(t, text, "[1/2] Go\nZero value of a map?")
	assert.Contains(t, text, "No cards reviewed.")

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testItems(now), saved)
}

func TestTerminal_LastCardCannotBeSkipped(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore(testItems(now)[:1]...)

	term, out := newTestTerminal(t, store, "s\n", now)
	require.NoError(t, term.run(context.Background(), entities.Filter{Kind: entities.FilterAll}))

	assert.Contains(t, out.String(), "This is the last card.")
}

func TestTerminal_SaveFailure(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := failingSaveStore{repository.NewMemoryStore(testItems(now)[:1]...)}

	term, out := newTestTerminal(t, store, "go\n5\n", now)
	require.NoError(t, term.run(context.Background(), entities.Filter{Kind: entities.FilterAll}))

	text := out.String()
	assert.Contains(t, text, "Exactly right!")
	assert.Contains(t, text, "Progress could not be saved. It will be retried.")
	assert.Contains(t, text, "Very easy. Next review in 1 day.")
	assert.True(t, term.reviews.Dirty())
}

func TestTerminal_NothingDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	items := testItems(now)
	for i := range items {
		items[i].NextReviewAt = now.AddDate(0, 0, 3)
	}

	term, out := newTestTerminal(t, repository.NewMemoryStore(items...), "", now)
	require.NoError(t, term.run(context.Background(), entities.Filter{Kind: entities.FilterAll}))

	assert.Equal(t, "Nothing is due.\n", out.String())
}

func TestParseFilterArgs(t *testing.T) {
	assert.Equal(t, entities.Filter{Kind: entities.FilterAll}, parseFilterArgs(nil))
	assert.Equal(t, entities.Filter{Kind: entities.FilterDue, Category: "Go"}, parseFilterArgs([]string{"due", "Go"}))
	assert.Equal(t, entities.Filter{Kind: entities.FilterAll, Category: "Data Structures"},
		parseFilterArgs([]string{"Data", "Structures"}))
}

func TestWriteItemTable(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	items := testItems(now)
	items[1].NextReviewAt = now.AddDate(0, 0, 6)

	var out bytes.Buffer
	require.NoError(t, writeItemTable(&out, items, now))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "due now")
	assert.Contains(t, lines[2], "in 6 days")
	assert.Contains(t, lines[2], "50%")
}
