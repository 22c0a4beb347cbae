package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// ImportResult summarizes an import.
type ImportResult struct {
	Added   int
	Updated int
}

// Importer merges externally authored items into the stored collection.
type Importer struct {
	store  ItemStore
	logger *zap.Logger
	newID  func() string
}

// NewImporter creates an Importer writing to store.
func NewImporter(store ItemStore, logger *zap.Logger) *Importer {
	return &Importer{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Import merges incoming items by id and saves the collection.
//
// Unknown ids are appended; their scheduling state is kept when present and
// repaired otherwise, so a fresh item becomes due at now. Items without an id
// get a generated one. For ids already stored only the display fields are
// refreshed and the review history is left alone.
func (im *Importer) Import(ctx context.Context, incoming []entities.ReviewItem, now time.Time) (ImportResult, error) {
	var res ImportResult

	items, err := im.store.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("load review items: %w", err)
	}

	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}

	for _, in := range incoming {
		if in.ID == "" {
			in.ID = im.newID()
		}

		if pos, ok := index[in.ID]; ok {
			cur := &items[pos]
			cur.Prompt = in.Prompt
			cur.Answer = in.Answer
			cur.Explanation = in.Explanation
			cur.Category = in.Category
			if in.Difficulty != "" {
				cur.Difficulty = in.Difficulty
			}
			res.Updated++
			continue
		}

		if in.ReviewCount == 0 && in.LastReviewedAt == nil && in.Confidence == 0 {
			in.Confidence = entities.DefaultConfidence
		}
		in.Normalize(now)
		index[in.ID] = len(items)
		items = append(items, in)
		res.Added++
	}

	if res.Added == 0 && res.Updated == 0 {
		return res, nil
	}

	if err := im.store.Save(ctx, items); err != nil {
		return res, fmt.Errorf("save review items: %w", err)
	}

	im.logger.Info("review items imported",
		zap.Int("added", res.Added),
		zap.Int("updated", res.Updated),
		zap.Int("total", len(items)),
	)

	return res, nil
}
