package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilterKind selects a subset of review items.
type FilterKind string

const (
	FilterAll       FilterKind = "all"
	FilterDue       FilterKind = "due"
	FilterNew       FilterKind = "new"
	FilterDifficult FilterKind = "difficult"
)

// ParseFilterKind parses a filter kind; an empty string means FilterAll.
func ParseFilterKind(s string) (FilterKind, error) {
	switch k := FilterKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return FilterAll, nil
	case FilterAll, FilterDue, FilterNew, FilterDifficult:
		return k, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Filter narrows a list of items by kind and category.
type Filter struct {
	Kind     FilterKind
	Category string // empty matches every category
}

// Match reports whether the item passes the filter at now.
func (f Filter) Match(it *ReviewItem, now time.Time) bool {
	if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
		return false
	}

	switch f.Kind {
	case FilterDue:
		return it.IsDue(now)
	case FilterNew:
		return it.IsNew()
	case FilterDifficult:
		return it.IsDifficult()
	default:
		return true
	}
}

// DueItems returns copies of the items with NextReviewAt <= now, earliest
// first. Items due at the same instant keep their collection order.
func DueItems(items []ReviewItem, now time.Time) []ReviewItem {
	due := make([]ReviewItem, 0, len(items))
	for i := range items {
		if items[i].IsDue(now) {
			due = append(due, items[i])
		}
	}

	SortByNextReview(due)
	return due
}

// SortByNextReview stable-sorts items ascending by NextReviewAt.
func SortByNextReview(items []ReviewItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].NextReviewAt.Before(items[j].NextReviewAt)
	})
}
