// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Result-export column names appended after the source columns.
const (
	colStatus        = "status"
	colProcessedDate = "processed_date"
)

// WriteResults writes the table back out as CSV with the original
// columns plus a status column and a processed_date timestamp. classify
// maps a key to its status; now stamps every row.
func WriteResults(path string, tbl *types.Table, classify func(string) types.Status, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append(append([]string{}, tbl.Columns...), colStatus, colProcessedDate)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	stamp := now.UTC().Format(time.RFC3339)
	for _, e := range tbl.Entries {
		row := make([]string, 0, len(header))
		for _, col := range tbl.Columns {
			row = append(row, e.Fields[col])
		}
		row = append(row, string(classify(e.Key)), stamp)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", e.Key, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing results: %w", err)
	}
	return f.Close()
}
