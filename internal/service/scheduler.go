package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

var (
	ErrStoreUnavailable = errors.New("review store unavailable")
	ErrSaveFailed       = errors.New("review progress was not saved")
	ErrEmptyQueue       = errors.New("review queue is empty")
	ErrNotInQueue       = errors.New("item is not at the head of the review queue")
	ErrAnswerHidden     = errors.New("answer must be revealed before grading")
	ErrDuplicateItemID  = errors.New("duplicate review item id")
)

// ReviewScheduler owns the review collection and the current session queue.
type ReviewScheduler struct {
	store  ItemStore
	logger *zap.Logger

	mu       sync.Mutex
	items    []entities.ReviewItem
	index    map[string]int // item id -> position in items
	queue    []string       // session queue of item ids, head first
	revealed bool           // whether the head's answer has been shown
	stats    entities.SessionStats
	dirty    bool // the last save failed
	loadErr  error
}

// NewReviewScheduler creates a scheduler backed by store. Call Load before use.
func NewReviewScheduler(store ItemStore, logger *zap.Logger) *ReviewScheduler {
	return &ReviewScheduler{
		store:  store,
		logger: logger,
		index:  make(map[string]int),
	}
}

// Load reads the collection from the store and clears the session.
//
// When the store cannot be read the scheduler falls back to an empty
// collection and returns an error wrapping ErrStoreUnavailable, so callers
// can tell a failed read from an empty store.
func (s *ReviewScheduler) Load(ctx context.Context) error {
	items, err := s.store.Load(ctx)
	if err == nil {
		if id, dup := duplicateID(items); dup {
			err = fmt.Errorf("%w %q", ErrDuplicateItemID, id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = nil
	s.revealed = false
	s.dirty = false

	if err != nil {
		s.setItems(nil)
		s.loadErr = err
		s.logger.Error("failed to load review items", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.setItems(items)
	s.loadErr = nil
	s.logger.Info("review items loaded", zap.Int("count", len(items)))

	return nil
}

// Empty reports whether the collection holds no items.
func (s *ReviewScheduler) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// LoadFailed reports whether the last Load fell back to an empty collection.
func (s *ReviewScheduler) LoadFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr != nil
}

// Items returns a copy of the full collection in stored order.
func (s *ReviewScheduler) Items() []entities.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// LoadDueItems returns the items due at now, earliest first.
func (s *ReviewScheduler) LoadDueItems(now time.Time) []entities.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entities.DueItems(s.items, now)
}

// ListItems returns the items matching filter, ordered by next review date.
func (s *ReviewScheduler) ListItems(now time.Time, filter entities.Filter) []entities.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.ReviewItem, 0, len(s.items))
	for i := range s.items {
		if filter.Match(&s.items[i], now) {
			out = append(out, s.items[i])
		}
	}

	entities.SortByNextReview(out)
	return out
}

// StartSession builds a new session queue from the items due at now that
// also match filter, and resets the session statistics.
func (s *ReviewScheduler) StartSession(now time.Time, filter entities.Filter) []entities.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := entities.DueItems(s.items, now)

	s.queue = make([]string, 0, len(due))
	for i := range due {
		if filter.Match(&due[i], now) {
			s.queue = append(s.queue, due[i].ID)
		}
	}

	s.revealed = false
	s.stats = entities.NewSessionStats(now)

	s.logger.Info("review session started",
		zap.Int("due", len(due)),
		zap.Int("queued", len(s.queue)),
		zap.String("category", filter.Category),
	)

	return s.queueItems()
}

// Queue returns the current session queue, head first.
func (s *ReviewScheduler) Queue() []entities.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queueItems()
}

// Current returns the item at the head of the session queue.
func (s *ReviewScheduler) Current() (entities.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return entities.ReviewItem{}, ErrEmptyQueue
	}

	return s.items[s.index[s.queue[0]]], nil
}

// Revealed reports whether the head's answer has been shown.
func (s *ReviewScheduler) Revealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed && len(s.queue) > 0
}

// RevealAnswer opens the grading gate for the head of the queue and returns it.
func (s *ReviewScheduler) RevealAnswer() (entities.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return entities.ReviewItem{}, ErrEmptyQueue
	}

	s.revealed = true
	return s.items[s.index[s.queue[0]]], nil
}

// Grade applies the learner's response to the head of the queue, removes it
// from the session and persists the whole collection.
//
// If persisting fails the updated item is still returned together with an
// error wrapping ErrSaveFailed; the in-memory update stands and Flush can be
// used to retry the write.
func (s *ReviewScheduler) Grade(ctx context.Context, id string, q entities.Quality, now time.Time) (entities.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !q.Valid() {
		return entities.ReviewItem{}, entities.ErrInvalidQuality
	}
	if len(s.queue) == 0 {
		return entities.ReviewItem{}, ErrEmptyQueue
	}
	if s.queue[0] != id {
		return entities.ReviewItem{}, ErrNotInQueue
	}
	if !s.revealed {
		return entities.ReviewItem{}, ErrAnswerHidden
	}

	pos := s.index[id]
	item := &s.items[pos]
	if err := item.ApplyResponse(q, now); err != nil {
		return entities.ReviewItem{}, err
	}

	s.queue = s.queue[1:]
	s.revealed = false
	s.stats.Record(q)

	s.logger.Debug("review graded",
		zap.String("item_id", id),
		zap.Int("quality", int(q)),
		zap.Int("interval_days", item.IntervalDays),
		zap.Float64("ease_factor", item.EaseFactor),
		zap.Time("next_review_at", item.NextReviewAt),
	)

	updated := *item
	if err := s.save(ctx); err != nil {
		return updated, err
	}

	return updated, nil
}

// Skip moves the head of the session queue to its tail. Nothing is persisted
// and no item field changes.
func (s *ReviewScheduler) Skip() []entities.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) >= 2 {
		s.queue = SkipHead(s.queue)
		s.revealed = false
	}

	return s.queueItems()
}

// EndSession clears the session queue and returns the session statistics.
func (s *ReviewScheduler) EndSession() entities.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = nil
	s.revealed = false
	return s.stats
}

// Flush retries persistence after a failed save. It is a no-op otherwise.
func (s *ReviewScheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	return s.save(ctx)
}

// Dirty reports whether there are graded responses that were not persisted.
func (s *ReviewScheduler) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Stats returns the statistics of the current session.
func (s *ReviewScheduler) Stats() entities.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// DueCount returns the number of items due at now.
func (s *ReviewScheduler) DueCount(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.items {
		if s.items[i].IsDue(now) {
			n++
		}
	}
	return n
}

// AverageConfidence returns the mean confidence of the items due at now, or
// zero when nothing is due.
func (s *ReviewScheduler) AverageConfidence(now time.Time) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum, n int
	for i := range s.items {
		if s.items[i].IsDue(now) {
			sum += s.items[i].Confidence
			n++
		}
	}

	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Categories lists the distinct categories of the items due at now in the
// order they first appear in the due queue.
func (s *ReviewScheduler) Categories(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var out []string
	for _, it := range entities.DueItems(s.items, now) {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}

	return out
}

// SkipHead returns a new queue with the head moved to the tail. Queues
// shorter than two elements are returned unchanged.
func SkipHead[T any](queue []T) []T {
	if len(queue) < 2 {
		return queue
	}

	out := make([]T, 0, len(queue))
	out = append(out, queue[1:]...)
	return append(out, queue[0])
}

func (s *ReviewScheduler) save(ctx context.Context) error {
	if err := s.store.Save(ctx, slices.Clone(s.items)); err != nil {
		s.dirty = true
		s.logger.Error("failed to save review items",
			zap.Int("count", len(s.items)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.dirty = false
	return nil
}

// duplicateID returns the first id that occurs more than once.
func duplicateID(items []entities.ReviewItem) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			return it.ID, true
		}
		seen[it.ID] = struct{}{}
	}
	return "", false
}

func (s *ReviewScheduler) setItems(items []entities.ReviewItem) {
	s.items = slices.Clone(items)
	s.index = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

func (s *ReviewScheduler) queueItems() []entities.ReviewItem {
	out := make([]entities.ReviewItem, 0, len(s.queue))
	for _, id := range s.queue {
		out = append(out, s.items[s.index[id]])
	}
	return out
}
