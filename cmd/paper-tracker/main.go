// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-tracker CLI.
// See docs/ARCHITECTURE.md § Command Surface, § Project Structure.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-tracker/internal/store"
	"github.com/pdiddy/paper-tracker/internal/tracker"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// rootCmd is the base command for the paper-tracker CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-tracker",
	Short: "Track manual PDF downloads for a bibliography",
	Long: `paper-tracker manages a manual batch-download workflow: load a
bibliography table (CSV, TSV, or XLSX), derive a download link for each
entry from its DOI or URL, and track which PDFs have been fetched.

Progress lives in a local database, so marks survive restarts. Sessions
can be exported to portable progress files, reconciled against the PDFs
actually on disk, and packed into a ZIP archive when done.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-tracker.yaml or ~/.config/paper-tracker/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the session database (default: .paper-tracker)")
	rootCmd.PersistentFlags().String("session", "", "session name (default: default)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-tracker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-tracker"))
		}
	}

	viper.SetDefault("data_dir", ".paper-tracker")
	viper.SetDefault("session", "default")

	viper.SetEnvPrefix("PAPER_TRACKER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// dataDir resolves the data directory from the flag, environment, or
// config file, in that order.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	return viper.GetString("data_dir")
}

// sessionName resolves the active session name.
func sessionName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("session"); name != "" {
		return name
	}
	return viper.GetString("session")
}

// openStore opens the session store for the resolved data directory.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	return store.Open(types.StoreConfig{DataDir: dataDir(cmd)})
}

// loadSession opens the store and rebuilds the active session. The
// caller owns the returned store and must Close it.
func loadSession(cmd *cobra.Command) (*store.Store, *tracker.Session, *store.SessionInfo, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	session, info, err := s.LoadSession(context.Background(), sessionName(cmd))
	if err != nil {
		s.Close()
		return nil, nil, nil, fmt.Errorf("%w (run 'paper-tracker load' first)", err)
	}
	return s, session, info, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
