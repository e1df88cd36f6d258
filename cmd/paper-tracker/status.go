// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session progress",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, session, info, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("Session: %s (source %s, loaded %s)\n",
		info.Name, info.Source, info.CreatedAt.Format("2006-01-02"))
	if info.PrioritizeURL {
		fmt.Println("Link mode: URL preferred over DOI")
	}
	printSnapshot(session.Snapshot())

	if failed := session.FailedKeys(); len(failed) > 0 {
		fmt.Println("\nFailed entries:")
		for _, key := range failed {
			entry, _ := session.Table.Lookup(key)
			fmt.Printf("  %s  %s\n", key, entry.Link)
		}
	}
	return nil
}
