package entities

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidQuality is returned for a recall quality outside [0,5].
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// Quality is the learner's self-rated recall grade.
type Quality int

const (
	QualityBlackout  Quality = 0 // nothing recalled
	QualityWrong     Quality = 1 // wrong, but familiar once shown
	QualityHard      Quality = 2 // recalled with serious difficulty
	QualityGood      Quality = 3 // recalled with effort
	QualityEasy      Quality = 4 // recalled easily
	QualityPerfect   Quality = 5 // perfect recall
	passingThreshold         = QualityGood
)

// GradeButtons are the qualities offered to the learner after the answer is shown.
var GradeButtons = []Quality{QualityBlackout, QualityHard, QualityGood, QualityEasy, QualityPerfect}

// ParseQuality parses a decimal quality and validates its range.
func ParseQuality(s string) (Quality, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse quality %q: %w", s, ErrInvalidQuality)
	}

	q := Quality(n)
	if !q.Valid() {
		return 0, ErrInvalidQuality
	}

	return q, nil
}

// Valid reports whether q is within [0,5].
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed reports whether the response counts as correct (q >= 3).
func (q Quality) Passed() bool {
	return q >= passingThreshold
}

// Label returns a short human-readable name.
func (q Quality) Label() string {
	switch q {
	case QualityBlackout:
		return "Forgot"
	case QualityWrong:
		return "Wrong"
	case QualityHard:
		return "Hard"
	case QualityGood:
		return "Good"
	case QualityEasy:
		return "Easy"
	case QualityPerfect:
		return "Very easy"
	default:
		return "Unknown"
	}
}
