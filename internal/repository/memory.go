package repository

import (
	"context"
	"sync"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// MemoryStore keeps the collection in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items []entities.ReviewItem
}

// NewMemoryStore creates a store pre-filled with items.
func NewMemoryStore(items ...entities.ReviewItem) *MemoryStore {
	return &MemoryStore{items: cloneItems(items)}
}

func (s *MemoryStore) Load(_ context.Context) ([]entities.ReviewItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneItems(s.items), nil
}

func (s *MemoryStore) Save(_ context.Context, items []entities.ReviewItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = cloneItems(items)
	return nil
}

// cloneItems copies the slice and the LastReviewedAt pointers so callers
// cannot alias stored state.
func cloneItems(items []entities.ReviewItem) []entities.ReviewItem {
	out := make([]entities.ReviewItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].LastReviewedAt != nil {
			t := *out[i].LastReviewedAt
			out[i].LastReviewedAt = &t
		}
	}

	return out
}
