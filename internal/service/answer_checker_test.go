package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

func TestAnswerChecker_Check(t *testing.T) {
	c := NewAnswerChecker()

	tests := []struct {
		name    string
		attempt string
		answer  string
		verdict AnswerVerdict
		quality entities.Quality
	}{
		{"exact", "goroutine", "goroutine", VerdictExact, entities.QualityPerfect},
		{"drops punctuation", "  Go-Routine! ", "goroutine", VerdictExact, entities.QualityPerfect},
		{"ignores case and spacing", "Buffered   Channel.", "buffered channel", VerdictExact, entities.QualityPerfect},
		{"one typo", "gorutine", "goroutine", VerdictClose, entities.QualityGood},
		{"different", "mutex", "goroutine", VerdictWrong, entities.QualityWrong},
		{"empty attempt", "   ", "goroutine", VerdictWrong, entities.QualityBlackout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Check(tt.attempt, tt.answer)
			assert.Equal(t, tt.verdict, got.Verdict)
			assert.Equal(t, tt.quality, got.Suggested)
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("", ""))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, levenshteinDistance("привет", "привед"))
}
