package service

import (
	"strings"
	"unicode"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// AnswerVerdict describes how a typed attempt compares to the stored answer.
type AnswerVerdict string

const (
	VerdictExact AnswerVerdict = "exact"
	VerdictClose AnswerVerdict = "close"
	VerdictWrong AnswerVerdict = "wrong"
)

// AnswerCheck is the result of comparing a typed attempt with the answer.
type AnswerCheck struct {
	Verdict    AnswerVerdict
	Similarity float64
	Suggested  entities.Quality // a hint only; the learner still grades
}

// AnswerChecker compares typed attempts with fuzzy matching support.
type AnswerChecker struct {
	threshold float64 // similarity threshold (0.0 - 1.0)
}

// NewAnswerChecker creates a new AnswerChecker.
func NewAnswerChecker() *AnswerChecker {
	return &AnswerChecker{
		threshold: 0.8, // 80% similarity required
	}
}

// Check compares attempt with answer.
func (c *AnswerChecker) Check(attempt, answer string) AnswerCheck {
	a := normalize(attempt)
	b := normalize(answer)

	if a == "" {
		return AnswerCheck{Verdict: VerdictWrong, Suggested: entities.QualityBlackout}
	}

	if a == b {
		return AnswerCheck{Verdict: VerdictExact, Similarity: 1, Suggested: entities.QualityPerfect}
	}

	sim := similarity(a, b)
	if sim >= c.threshold {
		return AnswerCheck{Verdict: VerdictClose, Similarity: sim, Suggested: entities.QualityGood}
	}

	return AnswerCheck{Verdict: VerdictWrong, Similarity: sim, Suggested: entities.QualityWrong}
}

// normalize lowercases, drops punctuation and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)

	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// similarity returns 1 - levenshtein(s1, s2)/max(len).
func similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
