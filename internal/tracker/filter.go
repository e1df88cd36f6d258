// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"strings"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// StatusFilter selects entries by status. The zero value matches all.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
	FilterFailed    StatusFilter = "failed"
)

// ParseStatusFilter normalizes a user-supplied filter name. Empty means
// all; anything unrecognized reports false.
func ParseStatusFilter(name string) (StatusFilter, bool) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(name))) {
	case "", FilterAll:
		return FilterAll, true
	case FilterPending:
		return FilterPending, true
	case FilterCompleted:
		return FilterCompleted, true
	case FilterFailed:
		return FilterFailed, true
	}
	return FilterAll, false
}

// Filter returns the entries matching both the search term and the
// status filter, in table order. The term is a case-insensitive
// substring match against title or key; an empty term matches
// everything.
func (s *Session) Filter(term string, filter StatusFilter) []types.Entry {
	term = strings.ToLower(strings.TrimSpace(term))

	var out []types.Entry
	for _, e := range s.Table.Entries {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Key), term) {
			continue
		}
		if !s.matchesFilter(e.Key, filter) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Session) matchesFilter(key string, filter StatusFilter) bool {
	switch filter {
	case FilterPending:
		return s.Classify(key) == types.StatusPending
	case FilterCompleted:
		return s.Classify(key) == types.StatusCompleted
	case FilterFailed:
		return s.Classify(key) == types.StatusFailed
	default:
		return true
	}
}
