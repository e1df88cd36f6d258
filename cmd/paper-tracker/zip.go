// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/archive"
)

var zipCmd = &cobra.Command{
	Use:   "zip <pdf-dir>",
	Short: "Pack the completed PDFs into a ZIP archive",
	Long: `Zip collects {key}.pdf for every completed entry from the given
directory into one archive inside that directory. Files that are
marked done but missing on disk are listed, not treated as errors;
run 'paper-tracker verify' first to reconcile marks with the files.`,
	Args: cobra.ExactArgs(1),
	RunE: runZip,
}

func init() {
	zipCmd.Flags().String("name", "papers.zip", "archive file name")

	rootCmd.AddCommand(zipCmd)
}

func runZip(cmd *cobra.Command, args []string) error {
	archiveName, _ := cmd.Flags().GetString("name")

	s, session, _, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	keys := session.CompletedKeys()
	if len(keys) == 0 {
		return fmt.Errorf("no completed entries to pack")
	}

	report, err := archive.Pack(args[0], archiveName, keys, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d files, %d bytes)\n",
		report.ArchivePath, len(report.Included), report.Bytes)
	if report.HasMissing() {
		logger.Warn("some completed entries had no file on disk",
			"missing", len(report.Missing))
		for _, name := range report.Missing {
			fmt.Printf("  missing: %s\n", name)
		}
	}
	return nil
}
