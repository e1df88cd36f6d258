// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// ProgressFile is the interchange format for saved progress. The field
// names match the files the web variants of this tool produce, so
// sessions can move between them.
type ProgressFile struct {
	DownloadedKeys []string        `json:"downloaded_keys"`
	FailedKeys     []string        `json:"failed_keys"`
	Timestamp      string          `json:"timestamp"`
	TotalFiles     int             `json:"total_files"`
	Config         *ProgressConfig `json:"config,omitempty"`
}

// ProgressConfig echoes the session settings into the progress file.
type ProgressConfig struct {
	PrioritizeURL bool   `json:"prioritize_url,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

// ExportProgress builds a progress file from the session's current sets.
// Key lists are sorted so repeated exports of the same state are
// byte-identical.
func (s *Session) ExportProgress(cfg *ProgressConfig, now time.Time) ProgressFile {
	return ProgressFile{
		DownloadedKeys: s.CompletedKeys(),
		FailedKeys:     s.FailedKeys(),
		Timestamp:      now.UTC().Format(time.RFC3339),
		TotalFiles:     len(s.Table.Entries),
		Config:         cfg,
	}
}

// WriteProgress marshals the progress file to path as indented JSON.
func (s *Session) WriteProgress(path string, cfg *ProgressConfig, now time.Time) error {
	data, err := json.MarshalIndent(s.ExportProgress(cfg, now), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling progress: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportSummary reports what an import changed.
type ImportSummary struct {
	AddedCompleted int
	AddedFailed    int
}

// Changed reports whether the import added anything.
func (s ImportSummary) Changed() bool {
	return s.AddedCompleted > 0 || s.AddedFailed > 0
}

// ImportProgress merges a progress file into the session. The merge is a
// union: existing marks are never removed. Downloaded keys are applied
// first; a failed key already completed locally stays completed, keeping
// the two sets disjoint. Malformed JSON rejects the whole import and
// leaves the session untouched.
func (s *Session) ImportProgress(data []byte) (ImportSummary, error) {
	var pf ProgressFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return ImportSummary{}, fmt.Errorf("parsing progress file: %w", err)
	}

	var sum ImportSummary
	for _, key := range pf.DownloadedKeys {
		if s.Classify(key) != types.StatusCompleted {
			sum.AddedCompleted++
		}
		s.MarkDone(key)
	}
	for _, key := range pf.FailedKeys {
		switch s.Classify(key) {
		case types.StatusCompleted:
			// Completed wins on conflict.
		case types.StatusFailed:
			// Already failed.
		default:
			s.MarkFailed(key)
			sum.AddedFailed++
		}
	}
	return sum, nil
}

// ReadProgress loads and merges a progress file from path.
func (s *Session) ReadProgress(path string) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading progress file: %w", err)
	}
	return s.ImportProgress(data)
}
