// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/table"
)

var resultsCmd = &cobra.Command{
	Use:   "results <file.csv>",
	Short: "Export the annotated table as CSV",
	Long: `Results writes the loaded table back out as CSV with two extra
columns: the entry's status and the export timestamp. Original columns
are preserved, so the file can serve as a final report.`,
	Args: cobra.ExactArgs(1),
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := table.WriteResults(args[0], session.Table, session.Classify, time.Now()); err != nil {
		return err
	}

	fmt.Printf("Wrote %d rows to %s\n", len(session.Table.Entries), args[0])
	return nil
}
