// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"sqb/cli/internal/shortcode"
)

var stripOutput string

// stripCmd removes shortcode-query tags from comment text.
var stripCmd = &cobra.Command{
	Use:   "strip [file]",
	Short: "Remove shortcode-query tags from comment text",
	Long: `The strip command removes every [shortcode-query ...] tag, including enclosing
and escaped forms, from text read from a file or stdin. Apply it to user
comments before they are stored so commenters cannot run queries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), stripOutput, shortcode.Strip(text, cfg.Shortcode.Tag))
	},
}

func init() {
	rootCmd.AddCommand(stripCmd)
	stripCmd.Flags().StringVarP(&stripOutput, "output", "o", "", "Write stripped text to this file instead of stdout")
}
