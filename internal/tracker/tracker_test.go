// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"math/rand"
	"testing"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func testTable(keys ...string) *types.Table {
	tbl := &types.Table{Columns: []string{"Bib Key"}}
	for _, k := range keys {
		tbl.Entries = append(tbl.Entries, types.Entry{Key: k})
	}
	return tbl
}

func TestMarkTransitions(t *testing.T) {
	s := NewSession(testTable("A", "B", "C"))

	s.MarkDone("A")
	if got := s.Classify("A"); got != types.StatusCompleted {
		t.Errorf("after MarkDone, Classify(A) = %v, want completed", got)
	}

	s.MarkFailed("A")
	if got := s.Classify("A"); got != types.StatusFailed {
		t.Errorf("after MarkFailed, Classify(A) = %v, want failed", got)
	}
	if len(s.CompletedKeys()) != 0 {
		t.Errorf("MarkFailed left key in completed set: %v", s.CompletedKeys())
	}

	s.MarkDone("A")
	if got := s.Classify("A"); got != types.StatusCompleted {
		t.Errorf("after re-MarkDone, Classify(A) = %v, want completed", got)
	}
	if len(s.FailedKeys()) != 0 {
		t.Errorf("MarkDone left key in failed set: %v", s.FailedKeys())
	}

	s.Unmark("A")
	if got := s.Classify("A"); got != types.StatusPending {
		t.Errorf("after Unmark, Classify(A) = %v, want pending", got)
	}
}

func TestMarksAreIdempotent(t *testing.T) {
	s := NewSession(testTable("A"))
	for i := 0; i < 3; i++ {
		s.MarkDone("A")
	}
	if got := len(s.CompletedKeys()); got != 1 {
		t.Errorf("completed set size = %d, want 1", got)
	}
	for i := 0; i < 3; i++ {
		s.Unmark("A")
	}
	if got := s.Classify("A"); got != types.StatusPending {
		t.Errorf("Classify(A) = %v, want pending", got)
	}
}

func TestSnapshot(t *testing.T) {
	s := NewSession(testTable("A", "B", "C"))
	s.MarkDone("A")
	s.MarkFailed("B")

	snap := s.Snapshot()
	want := types.ProgressSnapshot{Total: 3, Completed: 1, Failed: 1, Pending: 1}
	want.PercentProcessed = float64(2) / float64(3) * 100
	if snap != want {
		t.Errorf("Snapshot() = %+v, want %+v", snap, want)
	}
	if snap.Done() {
		t.Error("Done() = true with a pending entry")
	}

	s.MarkDone("C")
	if !s.Snapshot().Done() {
		t.Error("Done() = false with all entries processed")
	}
}

func TestSnapshotIgnoresKeysOutsideTable(t *testing.T) {
	s := NewSession(testTable("A", "B"))
	s.MarkDone("A")
	s.MarkDone("stale-key-from-old-table")

	snap := s.Snapshot()
	if snap.Completed != 1 || snap.Pending != 1 {
		t.Errorf("Snapshot() = %+v, want 1 completed / 1 pending", snap)
	}
}

func TestBulkMark(t *testing.T) {
	s := NewSession(testTable("A", "B", "C", "D"))
	s.BulkMark([]string{"A", "B"}, types.StatusCompleted)
	s.BulkMark([]string{"B", "C"}, types.StatusFailed)
	s.BulkMark([]string{"C"}, types.StatusPending)

	wantStatus := map[string]types.Status{
		"A": types.StatusCompleted,
		"B": types.StatusFailed,
		"C": types.StatusPending,
		"D": types.StatusPending,
	}
	for key, want := range wantStatus {
		if got := s.Classify(key); got != want {
			t.Errorf("Classify(%s) = %v, want %v", key, got, want)
		}
	}
}

func TestReplaceTableKeepsProgress(t *testing.T) {
	s := NewSession(testTable("A", "B"))
	s.MarkDone("A")

	s.ReplaceTable(testTable("A", "C"))
	if got := s.Classify("A"); got != types.StatusCompleted {
		t.Errorf("Classify(A) after table replace = %v, want completed", got)
	}
	if got := s.Snapshot().Total; got != 2 {
		t.Errorf("Total after replace = %d, want 2", got)
	}
}

// TestSetsDisjointUnderRandomOps drives the tracker with random operation
// sequences and checks the completed/failed sets never intersect.
func TestSetsDisjointUnderRandomOps(t *testing.T) {
	keys := []string{"A", "B", "C", "D", "E"}
	s := NewSession(testTable(keys...))
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		key := keys[r.Intn(len(keys))]
		switch r.Intn(4) {
		case 0:
			s.MarkDone(key)
		case 1:
			s.MarkFailed(key)
		case 2:
			s.Unmark(key)
		case 3:
			n := r.Intn(len(keys)) + 1
			status := []types.Status{
				types.StatusCompleted, types.StatusFailed, types.StatusPending,
			}[r.Intn(3)]
			s.BulkMark(keys[:n], status)
		}

		completed := map[string]struct{}{}
		for _, k := range s.CompletedKeys() {
			completed[k] = struct{}{}
		}
		for _, k := range s.FailedKeys() {
			if _, ok := completed[k]; ok {
				t.Fatalf("op %d: key %s in both completed and failed sets", i, k)
			}
		}

		snap := s.Snapshot()
		if snap.Completed+snap.Failed+snap.Pending != snap.Total {
			t.Fatalf("op %d: snapshot counts inconsistent: %+v", i, snap)
		}
	}
}
