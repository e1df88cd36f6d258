// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/assign"
	"github.com/pdiddy/paper-tracker/internal/table"
	"github.com/pdiddy/paper-tracker/internal/tracker"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a bibliography table into the session",
	Long: `Load reads a CSV, TSV, or XLSX file, derives a download link for
each row, and stores the table under the active session. Reloading a
file replaces the table but keeps existing progress marks, so an
updated bibliography can be swapped in mid-session.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().Bool("prioritize-url", false, "prefer the URL column over the DOI when both are present")
	loadCmd.Flags().String("key-column", "", "override the unique-identifier column name")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]
	prioritizeURL, _ := cmd.Flags().GetBool("prioritize-url")
	keyColumn, _ := cmd.Flags().GetString("key-column")

	cfg := types.LoaderConfig{
		LinkConfig: types.LinkConfig{PrioritizeURL: prioritizeURL},
		KeyColumn:  keyColumn,
	}

	tbl, report, err := table.Load(path, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if report.Loaded == 0 {
		return fmt.Errorf("no usable rows in %s (%d skipped)", path, len(report.Skipped))
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	name := sessionName(cmd)

	// Keep the user token stable across reloads so deterministic
	// assignment keeps pointing the same person at the same entries.
	userID := assign.NewUserID()
	if _, existing, err := s.LoadSession(ctx, name); err == nil && existing.UserID != "" {
		userID = existing.UserID
	}

	if err := s.SaveTable(ctx, name, filepath.Base(path), userID, cfg.LinkConfig, tbl); err != nil {
		return err
	}

	session, info, err := s.LoadSession(ctx, name)
	if err != nil {
		return err
	}

	descriptor := tracker.SessionFile{
		Name:      name,
		Source:    filepath.Base(path),
		UserID:    info.UserID,
		Config:    cfg,
		Snapshot:  session.Snapshot(),
		Timestamp: time.Now().UTC(),
	}
	descriptorPath := filepath.Join(s.DataDir(), name+".yaml")
	if err := tracker.WriteSessionFile(descriptorPath, descriptor); err != nil {
		logger.Warn("could not write session descriptor", "path", descriptorPath, "error", err)
	}

	fmt.Printf("Loaded %d of %d rows (%s) into session %q\n",
		report.Loaded, report.Total(), report.Encoding, name)
	fmt.Printf("Links: %d DOI, %d URL, %d search\n",
		report.DOILinks, report.URLLinks, report.SearchLinks)
	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped %d row(s); see messages above\n", len(report.Skipped))
	}
	return nil
}
