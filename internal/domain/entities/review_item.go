package entities

import (
	"math"
	"time"
)

// SM-2 tuning constants.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	DefaultConfidence = 50
	MaxConfidence     = 100

	confidenceGain = 10
	confidenceLoss = 15

	firstInterval  = 1
	secondInterval = 6
)

// Difficulty is an authoring tag shown next to the prompt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ReviewItem is a single learnable fact under spaced repetition.
type ReviewItem struct {
	ID          string     `json:"id"`
	Prompt      string     `json:"prompt"`
	Answer      string     `json:"answer"`
	Explanation string     `json:"explanation,omitempty"`
	Category    string     `json:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`

	// SRS fields.
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"` // nil until the first graded response
	NextReviewAt   time.Time  `json:"nextReviewAt"`             // the item is due when now >= NextReviewAt
	ReviewCount    int        `json:"reviewCount"`              // number of graded responses
	EaseFactor     float64    `json:"easeFactor"`               // interval growth multiplier, never below 1.3
	IntervalDays   int        `json:"intervalDays"`             // days until the next review
	CorrectStreak  int        `json:"correctStreak"`            // consecutive passing responses
	IncorrectCount int        `json:"incorrectCount"`           // total lapses
	Confidence     int        `json:"confidence"`               // 0-100 self-assessment score
}

// NewReviewItem creates an item that is immediately due.
func NewReviewItem(id, prompt, answer string, now time.Time) *ReviewItem {
	return &ReviewItem{
		ID:           id,
		Prompt:       prompt,
		Answer:       answer,
		Difficulty:   DifficultyMedium,
		NextReviewAt: now,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: firstInterval,
		Confidence:   DefaultConfidence,
	}
}

// ResetSchedule puts the item back into the "never reviewed" state, due at now.
// Display fields are kept.
func (it *ReviewItem) ResetSchedule(now time.Time) {
	it.LastReviewedAt = nil
	it.NextReviewAt = now
	it.ReviewCount = 0
	it.EaseFactor = DefaultEaseFactor
	it.IntervalDays = firstInterval
	it.CorrectStreak = 0
	it.IncorrectCount = 0
	it.Confidence = DefaultConfidence
}

// ApplyResponse updates the SM-2 state of the item after a graded response.
//
// The steps run in a fixed order:
//  1. the ease factor is adjusted by quality and floored at MinEaseFactor;
//  2. the interval is reset to one day on a lapse, fixed to 1 and 6 days for
//     the first two passing reviews and grown geometrically afterwards;
//  3. the next review date is counted from now, not from the old due date;
//  4. counters, confidence and the last review timestamp are updated.
func (it *ReviewItem) ApplyResponse(q Quality, now time.Time) error {
	if !q.Valid() {
		return ErrInvalidQuality
	}

	ease := NextEaseFactor(it.EaseFactor, q)
	interval := NextInterval(it.IntervalDays, it.ReviewCount, ease, q)

	it.EaseFactor = ease
	it.IntervalDays = interval
	it.NextReviewAt = now.AddDate(0, 0, interval)

	it.ReviewCount++
	if q.Passed() {
		it.CorrectStreak++
		it.Confidence = clampConfidence(it.Confidence + confidenceGain)
	} else {
		it.CorrectStreak = 0
		it.IncorrectCount++
		it.Confidence = clampConfidence(it.Confidence - confidenceLoss)
	}

	reviewedAt := now
	it.LastReviewedAt = &reviewedAt

	return nil
}

// NextEaseFactor returns ef + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at 1.3.
func NextEaseFactor(ease float64, q Quality) float64 {
	d := float64(QualityPerfect - q)
	next := ease + (0.1 - d*(0.08+d*0.02))
	return math.Max(MinEaseFactor, next)
}

// NextInterval computes the interval in days for a response given the state
// before the response. reviewCount is the number of graded responses so far.
func NextInterval(prevInterval, reviewCount int, ease float64, q Quality) int {
	if !q.Passed() {
		return firstInterval
	}

	switch reviewCount {
	case 0:
		return firstInterval
	case 1:
		return secondInterval
	}

	// math.Round rounds half away from zero, which is half-up for positive intervals.
	next := int(math.Round(float64(prevInterval) * ease))
	if next < firstInterval {
		return firstInterval
	}
	return next
}

// IsDue reports whether the item should be reviewed at now.
func (it *ReviewItem) IsDue(now time.Time) bool {
	return !it.NextReviewAt.After(now)
}

// IsNew reports whether the item has never been graded.
func (it *ReviewItem) IsNew() bool {
	return it.ReviewCount == 0
}

// IsDifficult reports whether the learner has struggled with the item.
func (it *ReviewItem) IsDifficult() bool {
	return it.IncorrectCount > 0 || it.Confidence < DefaultConfidence
}

// DaysUntilDue returns ceil((NextReviewAt - now) / 24h). Overdue items yield
// zero or a negative number.
func (it *ReviewItem) DaysUntilDue(now time.Time) int {
	days := it.NextReviewAt.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

// Normalize repairs fields that violate the item invariants, e.g. after a
// hand-edited import. It never touches display fields.
func (it *ReviewItem) Normalize(now time.Time) {
	if it.EaseFactor < MinEaseFactor {
		it.EaseFactor = DefaultEaseFactor
	}
	if it.IntervalDays < firstInterval {
		it.IntervalDays = firstInterval
	}
	if it.ReviewCount < 0 {
		it.ReviewCount = 0
	}
	if it.CorrectStreak < 0 {
		it.CorrectStreak = 0
	}
	if it.IncorrectCount < 0 {
		it.IncorrectCount = 0
	}
	it.Confidence = clampConfidence(it.Confidence)
	if it.NextReviewAt.IsZero() {
		it.NextReviewAt = now
	}
	if it.Difficulty == "" {
		it.Difficulty = DifficultyMedium
	}
}

// ConfidenceBand groups confidence scores for rendering.
type ConfidenceBand string

const (
	ConfidenceHigh ConfidenceBand = "high"
	ConfidenceGood ConfidenceBand = "good"
	ConfidenceFair ConfidenceBand = "fair"
	ConfidenceLow  ConfidenceBand = "low"
)

// Band returns the confidence band of the item.
func (it *ReviewItem) Band() ConfidenceBand {
	switch {
	case it.Confidence >= 80:
		return ConfidenceHigh
	case it.Confidence >= 60:
		return ConfidenceGood
	case it.Confidence >= 40:
		return ConfidenceFair
	default:
		return ConfidenceLow
	}
}

func clampConfidence(c int) int {
	return min(MaxConfidence, max(0, c))
}
