package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/infra/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "recall.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestReviewItemRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewItemRepository(openTestDB(t), "default")

	items, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	now := time.Date(2024, 6, 1, 12, 30, 15, 500, time.UTC)
	graded := entities.NewReviewItem("graded", "Zero value of a slice?", "nil", now)
	graded.Category = "Go"
	graded.Explanation = "len and cap are zero"
	require.NoError(t, graded.ApplyResponse(entities.QualityHard, now))

	fresh := entities.NewReviewItem("fresh", "VACUUM does what?", "Rebuilds the database file", now.Add(-time.Hour))
	fresh.Difficulty = entities.DifficultyHard

	require.NoError(t, repo.Save(ctx, []entities.ReviewItem{*graded, *fresh}))

	items, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	got := items[0]
	assert.Equal(t, "graded", got.ID)
	assert.Equal(t, "Go", got.Category)
	assert.Equal(t, "len and cap are zero", got.Explanation)
	assert.Equal(t, graded.EaseFactor, got.EaseFactor)
	assert.Equal(t, 1, got.IncorrectCount)
	assert.Equal(t, 35, got.Confidence)
	assert.True(t, graded.NextReviewAt.Equal(got.NextReviewAt))
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, now.Equal(*got.LastReviewedAt))

	assert.Equal(t, "fresh", items[1].ID)
	assert.Equal(t, entities.DifficultyHard, items[1].Difficulty)
	assert.Nil(t, items[1].LastReviewedAt)
}

func TestReviewItemRepository_SaveOverwritesCollection(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	work := NewReviewItemRepository(db, "work")
	home := NewReviewItemRepository(db, "home")

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a := entities.NewReviewItem("a", "p", "a", now)
	b := entities.NewReviewItem("b", "p", "a", now)

	require.NoError(t, work.Save(ctx, []entities.ReviewItem{*a, *b}))
	require.NoError(t, home.Save(ctx, []entities.ReviewItem{*a}))
	require.NoError(t, work.Save(ctx, []entities.ReviewItem{*b}))

	items, err := work.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)

	items, err = home.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "other collections are untouched")

	require.NoError(t, work.Save(ctx, nil))
	items, err = work.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReviewItemRepository_LargeCollectionKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewItemRepository(openTestDB(t), "default")

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	in := make([]entities.ReviewItem, 0, 1200)
	for i := 0; i < 1200; i++ {
		in = append(in, *entities.NewReviewItem(fmt.Sprintf("item-%04d", 1199-i), "p", "a", now))
	}

	require.NoError(t, repo.Save(ctx, in))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	assert.Equal(t, "item-1199", out[0].ID)
	assert.Equal(t, "item-0000", out[len(out)-1].ID)
}
