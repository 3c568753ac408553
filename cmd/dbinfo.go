// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sqb/cli/internal/dsn"
	"sqb/cli/internal/logging"
)

// dbinfoCmd represents the dbinfo command for displaying database connection information.
// It shows the current database connection string with the password masked for security.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show current database connection string",
	Long: `The dbinfo command displays the database connection string (DSN) that render
and serve would use, with the password masked, and where it was found.
This helps verify which database you're connected to without exposing
sensitive credentials.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, source, err := resolveDSN(dsnFlag, cfg)
		if err != nil {
			if errors.Is(err, errNoDSN) {
				pterm.Println("⚠️  No database connection configured")
				pterm.Println("   Please run: sqb connect")
				return nil
			}
			return err
		}

		pterm.Printfln("Using DSN from %s", source)
		pterm.Println()

		body := logging.Mask(raw)
		if info, perr := dsn.ParseInfo(raw); perr == nil {
			body += fmt.Sprintf("\n\nType:     %s\nDatabase: %s\nPrefix:   %s",
				info.Type, dsn.DatabaseName(raw), cfg.TablePrefix)
		} else {
			body += "\n\n" + pterm.Yellow(logging.Mask(perr.Error()))
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(body)
		pterm.Println()
		pterm.Println("To update this connection, run: sqb connect")
		pterm.Println()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
