// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/paper-tracker/internal/tracker"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// VerifyReport lists the corrections a verification pass made.
type VerifyReport struct {
	// Unmarked are completed keys whose PDF was not found; they return
	// to pending.
	Unmarked []string

	// Marked are pending keys whose PDF was found on disk; they become
	// completed.
	Marked []string

	// Verified counts completed keys whose file was present.
	Verified int
}

// Changed reports whether the pass altered the session.
func (r VerifyReport) Changed() bool {
	return len(r.Unmarked) > 0 || len(r.Marked) > 0
}

// Verify reconciles the session's completed set with the PDFs actually
// present in dir: completed entries missing their file are unmarked, and
// pending entries whose file exists are marked done. Failed entries are
// left alone; the user flagged those deliberately.
func Verify(dir string, s *tracker.Session, w io.Writer) (VerifyReport, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return VerifyReport{}, fmt.Errorf("directory %s does not exist", dir)
	}

	exists := func(key string) bool {
		_, err := os.Stat(filepath.Join(dir, key+".pdf"))
		return err == nil
	}

	var report VerifyReport
	for _, key := range s.CompletedKeys() {
		if exists(key) {
			report.Verified++
			continue
		}
		s.Unmark(key)
		report.Unmarked = append(report.Unmarked, key)
		fmt.Fprintf(w, "unmarked %s (file not found)\n", key)
	}

	for _, e := range s.Table.Entries {
		if s.Classify(e.Key) != types.StatusPending || !exists(e.Key) {
			continue
		}
		s.MarkDone(e.Key)
		report.Marked = append(report.Marked, e.Key)
		fmt.Fprintf(w, "marked   %s (file found)\n", e.Key)
	}

	fmt.Fprintf(w, "\nverified %d files, %d unmarked, %d newly marked\n",
		report.Verified, len(report.Unmarked), len(report.Marked))
	return report, nil
}
