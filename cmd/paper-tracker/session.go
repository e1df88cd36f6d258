// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List or delete tracking sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a session and all its progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	infos, err := s.ListSessions(context.Background())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No sessions.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-8s  %s\n", "Name", "Source", "Entries", "Updated")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, info := range infos {
		fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-8d  %s\n",
			info.Name, info.Source, info.EntryCount, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteSession(context.Background(), name); err != nil {
		return err
	}

	descriptor := filepath.Join(s.DataDir(), name+".yaml")
	if err := os.Remove(descriptor); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove session descriptor", "path", descriptor, "error", err)
	}

	fmt.Printf("Deleted session %q\n", name)
	return nil
}
