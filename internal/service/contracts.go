package service

import (
	"context"
	"time"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// ItemStore persists the whole review collection.
//
// Load returns the collection in its stored order, or an empty slice when
// nothing has been saved yet. Save overwrites the full collection.
type ItemStore interface {
	Load(ctx context.Context) ([]entities.ReviewItem, error)
	Save(ctx context.Context, items []entities.ReviewItem) error
}

// DueSummary exposes the read-only aggregates used by reminders.
type DueSummary interface {
	DueCount(now time.Time) int
	AverageConfidence(now time.Time) float64
}

// ReminderNotifier delivers due reminders to the owner.
type ReminderNotifier interface {
	SendDueReminder(ctx context.Context, due int, averageConfidence int) error
}
