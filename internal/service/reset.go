package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

var ErrNothingToReset = errors.New("no review items match")

// ResetScope selects the items whose review history is cleared. An empty
// scope selects the whole collection.
type ResetScope struct {
	IDs      []string
	Category string
}

func (sc ResetScope) match(it *entities.ReviewItem) bool {
	if len(sc.IDs) > 0 && !slices.Contains(sc.IDs, it.ID) {
		return false
	}
	return sc.Category == "" || strings.EqualFold(it.Category, sc.Category)
}

type ResetService struct {
	store  ItemStore
	logger *zap.Logger
}

func NewResetService(store ItemStore, logger *zap.Logger) *ResetService {
	return &ResetService{
		store:  store,
		logger: logger,
	}
}

// Reset puts the items in scope back into the never-reviewed state, due at
// now, and saves the collection. It returns the number of items reset.
func (s *ResetService) Reset(ctx context.Context, scope ResetScope, now time.Time) (int, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load review items: %w", err)
	}

	n := 0
	for i := range items {
		if scope.match(&items[i]) {
			items[i].ResetSchedule(now)
			n++
		}
	}

	if n == 0 {
		return 0, ErrNothingToReset
	}

	if err := s.store.Save(ctx, items); err != nil {
		return 0, fmt.Errorf("save review items: %w", err)
	}

	s.logger.Info("review history reset",
		zap.Int("count", n),
		zap.String("category", scope.Category),
	)

	return n, nil
}
