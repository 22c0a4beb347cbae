package entities

import (
	"math"
	"time"
)

// SessionStats tracks the responses of one review sitting. It is never persisted.
type SessionStats struct {
	Reviewed  int
	Correct   int
	Incorrect int
	StartedAt time.Time
}

// NewSessionStats starts a fresh session at now.
func NewSessionStats(now time.Time) SessionStats {
	return SessionStats{StartedAt: now}
}

// Record counts one graded response.
func (s *SessionStats) Record(q Quality) {
	s.Reviewed++
	if q.Passed() {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

// Accuracy returns the rounded percentage of correct responses.
func (s SessionStats) Accuracy() int {
	if s.Reviewed == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Reviewed) * 100))
}

// Elapsed returns the time spent in the session so far.
func (s SessionStats) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt)
}
