package terminal

import "testing"

func TestLinesFor(t *testing.T) {
	tests := []struct {
		name   string
		length int
		width  int
		want   int
	}{
		{"empty", 0, 80, 1},
		{"short", 10, 80, 1},
		{"exact fit", 80, 80, 1},
		{"wraps once", 81, 80, 2},
		{"long dsn prompt", 250, 100, 3},
		{"unknown width", 100, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinesFor(tt.length, tt.width); got != tt.want {
				t.Errorf("LinesFor(%d, %d) = %d, want %d", tt.length, tt.width, got, tt.want)
			}
		})
	}
}
