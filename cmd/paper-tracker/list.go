// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/tracker"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries with their status and link",
	Long: `List prints the session's entries in table order. Filter by status
with --status and by a case-insensitive title or key substring with
--search; both filters compose.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("status", "", "filter by status: all, pending, completed, failed")
	listCmd.Flags().String("search", "", "filter by title or key substring")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	statusName, _ := cmd.Flags().GetString("status")
	term, _ := cmd.Flags().GetString("search")

	filter, ok := tracker.ParseStatusFilter(statusName)
	if !ok {
		return fmt.Errorf("unknown status filter %q: use all, pending, completed, or failed", statusName)
	}

	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	entries := session.Filter(term, filter)
	if len(entries) == 0 {
		fmt.Println("No matching entries.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-9s  %-40s  %s\n", "Key", "Status", "Title", "Link")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, e := range entries {
		title := e.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-9s  %-40s  %s\n",
			e.Key, session.Classify(e.Key), title, e.Link)
	}
	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}
