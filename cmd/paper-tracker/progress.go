// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/tracker"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Export or import portable progress files",
	Long: `Progress files are small JSON documents carrying the completed and
failed key sets. Export one to hand progress to a collaborator or to
back it up; import merges a file into the session without losing marks
made since it was written.`,
}

var progressExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the session's progress to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressExport,
}

var progressImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a progress file into the session",
	Long: `Import merges the file's key sets into the session: keys already
marked here stay marked, and a key the file calls failed is ignored if
this session already completed it. Keys not present in the current
table are skipped. A malformed file changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgressImport,
}

func init() {
	progressCmd.AddCommand(progressExportCmd)
	progressCmd.AddCommand(progressImportCmd)
	rootCmd.AddCommand(progressCmd)
}

func runProgressExport(cmd *cobra.Command, args []string) error {
	s, session, info, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := &tracker.ProgressConfig{
		PrioritizeURL: info.PrioritizeURL,
		UserID:        info.UserID,
	}
	if err := session.WriteProgress(args[0], cfg, time.Now()); err != nil {
		return err
	}

	snap := session.Snapshot()
	fmt.Printf("Exported %d completed and %d failed keys to %s\n",
		snap.Completed, snap.Failed, args[0])
	return nil
}

func runProgressImport(cmd *cobra.Command, args []string) error {
	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := session.ReadProgress(args[0])
	if err != nil {
		return err
	}

	if !summary.Changed() {
		fmt.Println("Nothing new to merge.")
		return nil
	}

	if err := s.SyncStatus(context.Background(), sessionName(cmd), session); err != nil {
		return err
	}

	fmt.Printf("Merged %d completed and %d failed keys from %s\n",
		summary.AddedCompleted, summary.AddedFailed, args[0])
	printSnapshot(session.Snapshot())
	return nil
}
