// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

// spinnerFrames are plain ASCII so the spinner renders on every console.
var spinnerFrames = []string{"-", "\\", "|", "/"}

// startInlineSpinner animates frames followed by text on a single line until
// the returned function is called. The cursor is hidden while it runs and the
// line is cleared when it stops. Calling stop more than once is safe.
func startInlineSpinner(w io.Writer, text string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	var once sync.Once

	cursor.Hide()
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], text)
				i++
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}
