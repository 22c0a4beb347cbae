package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

const (
	tableReviewItems = "review_items"

	// Keeps a multi-row insert below the SQLite bound-variable limit.
	insertChunkSize = 500
)

var itemColumns = []string{
	"id", "prompt", "answer", "explanation", "category", "difficulty",
	"last_reviewed_at", "next_review_at", "review_count", "ease_factor",
	"interval_days", "correct_streak", "incorrect_count", "confidence",
}

// ReviewItemRepository stores one named collection in an SQLite database.
type ReviewItemRepository struct {
	db         *sql.DB
	collection string
}

func NewReviewItemRepository(db *sql.DB, collection string) *ReviewItemRepository {
	return &ReviewItemRepository{db: db, collection: collection}
}

// Load returns the collection in stored order.
func (r *ReviewItemRepository) Load(ctx context.Context) ([]entities.ReviewItem, error) {
	query, args, err := squirrel.
		Select(itemColumns...).
		From(tableReviewItems).
		Where(squirrel.Eq{"collection": r.collection}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review items: %w", err)
	}
	defer rows.Close()

	items := make([]entities.ReviewItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review items: %w", err)
	}

	return items, nil
}

// Save replaces the whole collection in one transaction.
func (r *ReviewItemRepository) Save(ctx context.Context, items []entities.ReviewItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := squirrel.
		Delete(tableReviewItems).
		Where(squirrel.Eq{"collection": r.collection}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete review items: %w", err)
	}

	for start := 0; start < len(items); start += insertChunkSize {
		end := min(start+insertChunkSize, len(items))

		insert := squirrel.
			Insert(tableReviewItems).
			Columns(append([]string{"collection", "position"}, itemColumns...)...)

		for i := start; i < end; i++ {
			insert = insert.Values(itemValues(r.collection, i, &items[i])...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert review items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func itemValues(collection string, position int, it *entities.ReviewItem) []any {
	var reviewedAt sql.NullString
	if it.LastReviewedAt != nil {
		reviewedAt = sql.NullString{String: formatTime(*it.LastReviewedAt), Valid: true}
	}

	return []any{
		collection,
		position,
		it.ID,
		it.Prompt,
		it.Answer,
		it.Explanation,
		it.Category,
		string(it.Difficulty),
		reviewedAt,
		formatTime(it.NextReviewAt),
		it.ReviewCount,
		it.EaseFactor,
		it.IntervalDays,
		it.CorrectStreak,
		it.IncorrectCount,
		it.Confidence,
	}
}

func scanItem(rows *sql.Rows) (entities.ReviewItem, error) {
	var (
		it         entities.ReviewItem
		difficulty string
		reviewedAt sql.NullString
		nextReview string
	)

	if err := rows.Scan(
		&it.ID,
		&it.Prompt,
		&it.Answer,
		&it.Explanation,
		&it.Category,
		&difficulty,
		&reviewedAt,
		&nextReview,
		&it.ReviewCount,
		&it.EaseFactor,
		&it.IntervalDays,
		&it.CorrectStreak,
		&it.IncorrectCount,
		&it.Confidence,
	); err != nil {
		return it, fmt.Errorf("scan review item: %w", err)
	}

	it.Difficulty = entities.Difficulty(difficulty)

	next, err := parseTime(nextReview)
	if err != nil {
		return it, fmt.Errorf("item %s next_review_at: %w", it.ID, err)
	}
	it.NextReviewAt = next

	if reviewedAt.Valid {
		t, err := parseTime(reviewedAt.String)
		if err != nil {
			return it, fmt.Errorf("item %s last_reviewed_at: %w", it.ID, err)
		}
		it.LastReviewedAt = &t
	}

	return it, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
