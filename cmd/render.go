// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderOutput string

// renderCmd expands every shortcode in a content file.
var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Expand shortcode-query tags in page content",
	Long: `The render command reads page content from a file (or stdin), replaces every
[shortcode-query ...] tag with the HTML produced by its query and writes the
result to stdout or --output.

Tags with invalid attributes are replaced by the help panel. A failing query
aborts the whole render.

Example:
  echo '[shortcode-query table="#_posts" cols="post_title" limit="5" wrapper="ul"]' | sqb render`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		eng, exec, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := exec.Close(); cerr != nil {
				logger.Debug("close database", zap.Error(cerr))
			}
		}()

		out, err := eng.ExpandContent(ctx, content)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), renderOutput, out)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write rendered content to this file instead of stdout")
}
