// Package main is the entry point for the sqb CLI application.
// It renders shortcode-query tags in page content against a site database.
package main

import (
	"sqb/cli/cmd"
)

// main is the entry point for the sqb CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
