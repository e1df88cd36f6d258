// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tracker maintains the completion state of a download session.
// A session owns the loaded table and two disjoint key sets (completed,
// failed); a key absent from both is pending. All operations are
// synchronous and idempotent.
// See docs/ARCHITECTURE.md § Status Tracker.
package tracker

import (
	"sort"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Session holds the loaded table and the two progress sets. It is the
// entire in-memory state of a tracking session; every operation is a
// method on it, there is no ambient state.
type Session struct {
	Table *types.Table

	completed map[string]struct{}
	failed    map[string]struct{}
}

// NewSession creates a session for the given table. A nil table is
// treated as empty; the progress sets start empty.
func NewSession(tbl *types.Table) *Session {
	if tbl == nil {
		tbl = &types.Table{}
	}
	return &Session{
		Table:     tbl,
		completed: make(map[string]struct{}),
		failed:    make(map[string]struct{}),
	}
}

// ReplaceTable swaps in a newly loaded table. The progress sets are kept:
// completion state persists across uploads.
func (s *Session) ReplaceTable(tbl *types.Table) {
	if tbl == nil {
		tbl = &types.Table{}
	}
	s.Table = tbl
}

// MarkDone records the key as completed, removing it from the failed set.
func (s *Session) MarkDone(key string) {
	delete(s.failed, key)
	s.completed[key] = struct{}{}
}

// MarkFailed records the key as failed, removing it from the completed set.
func (s *Session) MarkFailed(key string) {
	delete(s.completed, key)
	s.failed[key] = struct{}{}
}

// Unmark removes the key from both sets, returning it to pending.
func (s *Session) Unmark(key string) {
	delete(s.completed, key)
	delete(s.failed, key)
}

// BulkMark applies the status to every key. StatusPending unmarks.
// The operation is total: unknown statuses are ignored.
func (s *Session) BulkMark(keys []string, status types.Status) {
	for _, key := range keys {
		switch status {
		case types.StatusCompleted:
			s.MarkDone(key)
		case types.StatusFailed:
			s.MarkFailed(key)
		case types.StatusPending:
			s.Unmark(key)
		}
	}
}

// Classify reports the status of a key. The sets are disjoint, so the
// order of the checks does not matter.
func (s *Session) Classify(key string) types.Status {
	if _, ok := s.completed[key]; ok {
		return types.StatusCompleted
	}
	if _, ok := s.failed[key]; ok {
		return types.StatusFailed
	}
	return types.StatusPending
}

// PendingKeys returns the keys in neither set, in table order.
func (s *Session) PendingKeys() []string {
	var keys []string
	for _, e := range s.Table.Entries {
		if s.Classify(e.Key) == types.StatusPending {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// CompletedKeys returns the completed set, sorted. The set may contain
// keys not present in the current table; progress outlives uploads.
func (s *Session) CompletedKeys() []string {
	return sortedKeys(s.completed)
}

// FailedKeys returns the failed set, sorted.
func (s *Session) FailedKeys() []string {
	return sortedKeys(s.failed)
}

// Clear empties both progress sets.
func (s *Session) Clear() {
	s.completed = make(map[string]struct{})
	s.failed = make(map[string]struct{})
}

// Snapshot computes the progress summary against the current table.
// Only set members that appear in the table are counted, so a stale
// progress import cannot push the pending count negative.
func (s *Session) Snapshot() types.ProgressSnapshot {
	snap := types.ProgressSnapshot{Total: len(s.Table.Entries)}
	for _, e := range s.Table.Entries {
		switch s.Classify(e.Key) {
		case types.StatusCompleted:
			snap.Completed++
		case types.StatusFailed:
			snap.Failed++
		default:
			snap.Pending++
		}
	}
	if snap.Total > 0 {
		snap.PercentProcessed = float64(snap.Completed+snap.Failed) / float64(snap.Total) * 100
	}
	return snap
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
