// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqb/cli/internal/config"
)

// disconnectCmd removes the DSN saved by connect.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove the saved database connection",
	Long: `The disconnect command deletes the database DSN stored in the OS keychain by
'sqb connect' and clears the connection marker in the config file.

A DSN given through --dsn, SQB_DSN, DATABASE_URL or db.dsn in the config
file is not affected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := openKeychain()
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "❌ Secure storage is not available on this system.")
			return err
		}
		if err := km.ClearDB(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "❌ Failed to remove the saved connection.")
			return err
		}

		if err := config.SetProvided(false); err != nil {
			logger.Warn("could not record disconnect in config", zap.Error(err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Saved database connection removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
