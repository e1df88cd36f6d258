// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/assign"
	"github.com/pdiddy/paper-tracker/internal/clip"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next entry assigned to this session's user",
	Long: `Next picks a pending entry for this session's user token. The pick
is deterministic: the same user with the same pending set always gets
the same entry, and different users are spread across the list so
several people can work the same bibliography without colliding.

Use --skip to pass over the current assignment for this invocation
only; the skipped entry stays pending and can come up again.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	nextCmd.Flags().String("skip", "", "key to pass over for this draw")
	nextCmd.Flags().Bool("copy", false, "copy the save-as filename to the clipboard")

	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	skipKey, _ := cmd.Flags().GetString("skip")
	copyName, _ := cmd.Flags().GetBool("copy")

	s, session, info, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var entry types.Entry
	var ok bool
	if skipKey != "" {
		entry, ok = assign.NextSkipping(session, info.UserID, skipKey)
	} else {
		entry, ok = assign.Next(session, info.UserID)
	}
	if !ok {
		snap := session.Snapshot()
		fmt.Printf("All %d entries processed: %d completed, %d failed\n",
			snap.Total, snap.Completed, snap.Failed)
		return nil
	}

	fmt.Printf("Key:   %s\n", entry.Key)
	fmt.Printf("Title: %s\n", entry.Title)
	if entry.DOI != "" {
		fmt.Printf("DOI:   %s\n", entry.DOI)
	}
	fmt.Printf("Link:  %s (%s)\n", entry.Link, entry.LinkKind)
	fmt.Printf("Save as: %s\n", entry.Filename())

	if copyName {
		if err := clip.Copy(entry.Filename()); err != nil {
			logger.Warn("clipboard unavailable", "error", err)
		} else {
			fmt.Println("Filename copied to clipboard")
		}
	}

	printSnapshot(session.Snapshot())
	return nil
}
