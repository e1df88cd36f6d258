// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assign picks the next pending entry for a user. Each anonymous
// user carries an opaque token; the token seeds a deterministic shuffle
// of the pending keys so concurrent users working from the same table
// tend to start on different entries. This is best-effort collision
// avoidance, not a reservation: sessions do not coordinate, and two
// users can still land on the same entry.
// See docs/ARCHITECTURE.md § Assignment.
package assign

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-tracker/internal/tracker"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// NewUserID generates a fresh opaque user token.
func NewUserID() string {
	return uuid.New().String()
}

// Seed derives the shuffle seed from a user token.
func Seed(userID string) int64 {
	h := sha256.Sum256([]byte(userID))
	return int64(binary.BigEndian.Uint64(h[:8]))
}

// Next returns the entry assigned to the user from the session's pending
// set, or false when nothing is pending. The result is deterministic for
// a given (userID, pending set) pair but not stable across pending-set
// changes: marking any entry reshuffles the remainder.
func Next(s *tracker.Session, userID string) (types.Entry, bool) {
	return next(s, userID, "")
}

// NextSkipping behaves like Next but excludes one key from the draw. The
// exclusion is not persisted; a later call without it may assign the
// skipped entry again.
func NextSkipping(s *tracker.Session, userID, skipKey string) (types.Entry, bool) {
	return next(s, userID, skipKey)
}

func next(s *tracker.Session, userID, skipKey string) (types.Entry, bool) {
	pending := s.PendingKeys()
	if skipKey != "" {
		filtered := pending[:0]
		for _, k := range pending {
			if k != skipKey {
				filtered = append(filtered, k)
			}
		}
		pending = filtered
	}
	if len(pending) == 0 {
		return types.Entry{}, false
	}

	r := rand.New(rand.NewSource(Seed(userID)))
	r.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	entry, ok := s.Table.Lookup(pending[0])
	return entry, ok
}
