// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

var markCmd = &cobra.Command{
	Use:   "mark done|failed <keys...>",
	Short: "Mark entries as downloaded or failed",
	Long: `Mark records the outcome of a manual download attempt. An entry is
either done (the PDF was saved) or failed (the download could not be
completed). Marking an entry moves it out of its previous state, so a
failed entry marked done stops being failed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMark,
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <keys...>",
	Short: "Return entries to pending",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnmark,
}

func init() {
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	var status types.Status
	switch args[0] {
	case "done", "completed":
		status = types.StatusCompleted
	case "failed":
		status = types.StatusFailed
	default:
		return fmt.Errorf("unknown outcome %q: use done or failed", args[0])
	}

	return applyMarks(cmd, args[1:], status)
}

func runUnmark(cmd *cobra.Command, args []string) error {
	return applyMarks(cmd, args, types.StatusPending)
}

func applyMarks(cmd *cobra.Command, keys []string, status types.Status) error {
	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	name := sessionName(cmd)

	for _, key := range keys {
		if _, ok := session.Table.Lookup(key); !ok {
			logger.Warn("key not in table, skipping", "key", key)
			continue
		}
		session.BulkMark([]string{key}, status)
		if err := s.SetStatus(ctx, name, key, status); err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", key, status)
	}

	printSnapshot(session.Snapshot())
	return nil
}

func printSnapshot(snap types.ProgressSnapshot) {
	fmt.Printf("Progress: %d/%d processed (%.1f%%), %d completed, %d failed, %d pending\n",
		snap.Completed+snap.Failed, snap.Total, snap.PercentProcessed,
		snap.Completed, snap.Failed, snap.Pending)
}
