// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progress marks, keeping the table",
	Long: `Reset returns every entry to pending. The loaded table is kept;
only the completed and failed sets are cleared. Export a progress file
first if the marks might be needed again.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	snap := session.Snapshot()
	if snap.Completed == 0 && snap.Failed == 0 {
		fmt.Println("No progress to clear.")
		return nil
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Printf("Clear %d completed and %d failed marks? [y/N] ", snap.Completed, snap.Failed)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	session.Clear()
	if err := s.SyncStatus(context.Background(), sessionName(cmd), session); err != nil {
		return err
	}

	fmt.Printf("Cleared; %d entries pending\n", session.Snapshot().Pending)
	return nil
}
