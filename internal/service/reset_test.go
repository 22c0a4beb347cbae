package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

func reviewedItem(id, category string, now time.Time) entities.ReviewItem {
	it := *entities.NewReviewItem(id, "prompt "+id, "answer", now)
	it.Category = category
	_ = it.ApplyResponse(entities.QualityPerfect, now)
	_ = it.ApplyResponse(entities.QualityPerfect, now)
	return it
}

func TestResetService_Reset(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	later := now.AddDate(0, 0, 3)

	tests := []struct {
		name      string
		scope     ResetScope
		wantCount int
		wantReset []bool
	}{
		{"whole collection", ResetScope{}, 3, []bool{true, true, true}},
		{"by category", ResetScope{Category: "Go"}, 2, []bool{true, false, true}},
		{"category ignores case", ResetScope{Category: "go"}, 2, []bool{true, false, true}},
		{"by id", ResetScope{IDs: []string{"b"}}, 1, []bool{false, true, false}},
		{"id outside category", ResetScope{IDs: []string{"b"}, Category: "Go"}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{items: []entities.ReviewItem{
				reviewedItem("a", "Go", now),
				reviewedItem("b", "SQL", now),
				reviewedItem("c", "Go", now),
			}}
			svc := NewResetService(store, zap.NewNop())

			n, err := svc.Reset(context.Background(), tt.scope, later)
			if tt.wantCount == 0 {
				require.ErrorIs(t, err, ErrNothingToReset)
				assert.Zero(t, store.saves)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, n)
			assert.Equal(t, 1, store.saves)

			for i, it := range store.items {
				if tt.wantReset[i] {
					assert.True(t, it.IsNew(), it.ID)
					assert.Equal(t, later, it.NextReviewAt, it.ID)
					assert.Equal(t, entities.DefaultConfidence, it.Confidence, it.ID)
				} else {
					assert.Equal(t, 2, it.ReviewCount, it.ID)
				}
				assert.Equal(t, "prompt "+it.ID, it.Prompt)
			}
		})
	}
}

func TestResetService_StoreErrors(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	_, err := NewResetService(&fakeStore{loadErr: errDiskFull}, zap.NewNop()).
		Reset(context.Background(), ResetScope{}, now)
	require.ErrorIs(t, err, errDiskFull)

	store := &fakeStore{items: []entities.ReviewItem{reviewedItem("a", "", now)}, saveErr: errDiskFull}
	_, err = NewResetService(store, zap.NewNop()).Reset(context.Background(), ResetScope{}, now)
	require.ErrorIs(t, err, errDiskFull)
}
