// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import "strings"

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape converts the five HTML special characters to entities, single and
// double quotes included, like htmlspecialchars with ENT_QUOTES. Other
// characters, non-ASCII letters among them, pass through unchanged.
func Escape(s string) string {
	return entityReplacer.Replace(s)
}
