// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sqb/cli/internal/shortcode"
)

// buildCmd prints the statement a shortcode would run.
var buildCmd = &cobra.Command{
	Use:   "build <name=value>... | build '[shortcode-query ...]'",
	Short: "Print the SELECT statement a shortcode produces",
	Long: `The build command validates shortcode attributes and prints the SELECT
statement they produce, without connecting to a database. Attributes are
given either as name=value arguments or as one complete tag.

Examples:
  sqb build table='#_posts' cols=ID,post_title "where=post_status = 'publish'" limit=5
  sqb build '[shortcode-query table="#_users" order-by="user_login"]'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := attrsFromArgs(args, cfg.Shortcode.Tag)
		if err != nil {
			return err
		}

		stmt, _, err := newEngine(nil).Plan(raw)
		if err != nil {
			var verr *shortcode.ValidationError
			if errors.As(err, &verr) {
				pterm.Error.Println("Some attributes are not correct.")
				for _, msg := range verr.Messages {
					pterm.Println("   " + msg)
				}
				pterm.Println("   Run 'sqb attrs' to list the accepted attributes.")
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), stmt)
		return nil
	},
}

// attrsFromArgs reads a complete tag when the first argument starts with
// "[" and name=value pairs otherwise.
func attrsFromArgs(args []string, tag string) (shortcode.RawAttrs, error) {
	if strings.HasPrefix(strings.TrimSpace(args[0]), "[") {
		text := strings.Join(args, " ")
		matches := shortcode.Scan(text, tag)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no [%s] tag found in %q", tag, text)
		}
		return matches[0].Attrs, nil
	}

	raw := make(shortcode.RawAttrs, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q is not name=value", arg)
		}
		raw = append(raw, shortcode.Attr{Name: name, Value: value})
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
