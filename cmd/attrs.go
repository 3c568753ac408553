// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sqb/cli/internal/render"
	"sqb/cli/internal/shortcode"
)

var attrsHTML bool

// attrsCmd lists the attributes a shortcode accepts.
var attrsCmd = &cobra.Command{
	Use:   "attrs",
	Short: "List shortcode attributes with defaults and descriptions",
	Long: `The attrs command lists every attribute the shortcode accepts, its default
value and a short description. With --html it prints the help panel that
replaces a tag with invalid attributes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := shortcode.DefaultSchema()
		if attrsHTML {
			fmt.Fprintln(cmd.OutOrStdout(), render.HelpFor(cfg.Shortcode.Tag, schema, nil))
			return nil
		}

		data := pterm.TableData{{"Attribute", "Default", "Description"}}
		for _, d := range schema.Definitions() {
			data = append(data, []string{d.Name, d.Default, d.Description})
		}
		pterm.DefaultSection.Println("[" + cfg.Shortcode.Tag + "] attributes")
		return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
	},
}

func init() {
	rootCmd.AddCommand(attrsCmd)
	attrsCmd.Flags().BoolVar(&attrsHTML, "html", false, "Print the HTML help panel instead of a table")
}
