// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

// Fit reconciles items against a target length n. Extra items are dropped;
// when items are short, fill is asked for the padding given the number of
// missing entries. fill may return fewer entries than asked for.
func Fit[T any](items []T, n int, fill func(missing int) []T) []T {
	if n < 0 {
		n = 0
	}
	switch {
	case len(items) > n:
		return items[:n:n]
	case len(items) < n:
		out := make([]T, len(items), n)
		copy(out, items)
		return append(out, fill(n-len(items))...)
	}
	return items
}

// Repeat returns a fill function padding with copies of v.
func Repeat[T any](v T) func(missing int) []T {
	return func(missing int) []T {
		out := make([]T, missing)
		for i := range out {
			out[i] = v
		}
		return out
	}
}
