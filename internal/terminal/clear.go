// Package terminal provides utilities for terminal operations such as clearing
// an interactive prompt once it has been answered.
package terminal

import (
	"os"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// defaultWidth is assumed when stdout is not a terminal.
const defaultWidth = 80

// LinesFor returns how many terminal rows text of textLength characters
// occupies at the given width. It is at least 1.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		return 1
	}
	return lines
}

// ClearPreviousLines removes a prompt and the answer typed after it.
// textLength is the prompt plus input length; the cursor is expected on the
// empty line below, where Enter left it.
func ClearPreviousLines(textLength int) {
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	cursor.ClearLinesUp(LinesFor(textLength, width))
	cursor.StartOfLine()
}
