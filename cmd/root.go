// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for sqb, the shortcode query
// builder. It expands [shortcode-query] tags in page content against a site
// database, previews the SQL a tag would run, strips tags from comments and
// serves a live preview of content pages. Commands are built with Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqb/cli/internal/config"
	apperrors "sqb/cli/internal/errors"
	"sqb/cli/internal/logging"
)

// Version is set at build time with -ldflags "-X sqb/cli/cmd.Version=...".
var Version = "0.0.0-dev"

var (
	showVersion bool
	verbose     bool
	dsnFlag     string

	// cfg and logger are populated before any subcommand runs.
	cfg    = config.Default()
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sqb",
	Short: "Shortcode query builder: render [shortcode-query] tags as HTML",
	Long: `sqb turns [shortcode-query] tags in page content into SELECT statements,
runs them against the site database and renders the rows as HTML tables,
lists or JSON.

The database is taken from --dsn, SQB_DSN, DATABASE_URL, the config file or
the OS keychain (see 'sqb connect'), in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.NewLogger(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("sqb %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.ConnectFailed, apperrors.QueryFailed, apperrors.UnsupportedDatabase:
			fmt.Fprintln(os.Stderr, logging.FormatDatabaseError(err))
		default:
			fmt.Fprintln(os.Stderr, logging.PresentError("sqb", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Database connection string (overrides env, config and keychain)")
}
