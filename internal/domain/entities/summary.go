package entities

import "time"

// CollectionSummary aggregates a collection at a point in time.
type CollectionSummary struct {
	Total             int
	Due               int
	New               int
	Difficult         int
	AverageConfidence int // rounded mean over all items
}

// Summarize counts the items of a collection by state.
func Summarize(items []ReviewItem, now time.Time) CollectionSummary {
	var (
		st         CollectionSummary
		confidence int
	)

	for i := range items {
		it := &items[i]
		st.Total++
		confidence += it.Confidence
		if it.IsDue(now) {
			st.Due++
		}
		if it.IsNew() {
			st.New++
		}
		if it.IsDifficult() {
			st.Difficult++
		}
	}

	if st.Total > 0 {
		st.AverageConfidence = (confidence + st.Total/2) / st.Total
	}

	return st
}
