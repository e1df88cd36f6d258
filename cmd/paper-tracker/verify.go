// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/archive"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <pdf-dir>",
	Short: "Reconcile marks with the PDFs actually on disk",
	Long: `Verify checks the download directory against the session: completed
entries whose {key}.pdf is missing return to pending, and pending
entries whose file is already there become completed. Failed entries
are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := archive.Verify(args[0], session, os.Stdout)
	if err != nil {
		return err
	}

	if report.Changed() {
		if err := s.SyncStatus(context.Background(), sessionName(cmd), session); err != nil {
			return err
		}
	}

	fmt.Printf("Verified %d file(s); %d unmarked, %d newly marked done\n",
		report.Verified, len(report.Unmarked), len(report.Marked))
	printSnapshot(session.Snapshot())
	return nil
}
