package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
	"github.com/aliskhannn/recall-bot/internal/infra/postgres"
)

// ReviewItemRepository stores one named collection of review items.
type ReviewItemRepository struct {
	db         postgres.DB
	tr         *postgres.Transactor
	collection string
}

func NewReviewItemRepository(db postgres.DB, collection string) *ReviewItemRepository {
	return &ReviewItemRepository{
		db:         db,
		tr:         postgres.NewTransactor(db),
		collection: collection,
	}
}

const selectReviewItems = `
	SELECT id, prompt, answer, explanation, category, difficulty,
	       last_reviewed_at, next_review_at, review_count, ease_factor,
	       interval_days, correct_streak, incorrect_count, confidence
	FROM review_items
	WHERE collection = $1
	ORDER BY position
`

const insertReviewItem = `
	INSERT INTO review_items (
		collection, id, position, prompt, answer, explanation, category, difficulty,
		last_reviewed_at, next_review_at, review_count, ease_factor,
		interval_days, correct_streak, incorrect_count, confidence
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

// Load returns the collection in stored order.
func (r *ReviewItemRepository) Load(ctx context.Context) ([]entities.ReviewItem, error) {
	rows, err := r.db.Query(ctx, selectReviewItems, r.collection)
	if err != nil {
		return nil, fmt.Errorf("query review items: %w", err)
	}
	defer rows.Close()

	items := make([]entities.ReviewItem, 0)
	for rows.Next() {
		var (
			it         entities.ReviewItem
			difficulty string
			reviewedAt *time.Time
		)

		if err := rows.Scan(
			&it.ID,
			&it.Prompt,
			&it.Answer,
			&it.Explanation,
			&it.Category,
			&difficulty,
			&reviewedAt,
			&it.NextReviewAt,
			&it.ReviewCount,
			&it.EaseFactor,
			&it.IntervalDays,
			&it.CorrectStreak,
			&it.IncorrectCount,
			&it.Confidence,
		); err != nil {
			return nil, fmt.Errorf("scan review item: %w", err)
		}

		it.Difficulty = entities.Difficulty(difficulty)
		it.LastReviewedAt = reviewedAt
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review items: %w", err)
	}

	return items, nil
}

// Save replaces the whole collection in one transaction.
func (r *ReviewItemRepository) Save(ctx context.Context, items []entities.ReviewItem) error {
	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM review_items WHERE collection = $1`, r.collection); err != nil {
			return fmt.Errorf("delete review items: %w", err)
		}

		for i, it := range items {
			_, err := tx.Exec(
				ctx, insertReviewItem,
				r.collection,
				it.ID,
				i,
				it.Prompt,
				it.Answer,
				it.Explanation,
				it.Category,
				string(it.Difficulty),
				it.LastReviewedAt,
				it.NextReviewAt,
				it.ReviewCount,
				it.EaseFactor,
				it.IntervalDays,
				it.CorrectStreak,
				it.IncorrectCount,
				it.Confidence,
			)
			if err != nil {
				return fmt.Errorf("insert review item %s: %w", it.ID, err)
			}
		}

		return nil
	})
}
