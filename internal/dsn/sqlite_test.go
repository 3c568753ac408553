// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import "testing"

func TestSQLiteResolver(t *testing.T) {
	resolver := NewSQLiteResolver()

	tests := []struct {
		name           string
		dsn            string
		wantPath       string
		wantNormalized string
		wantConn       string
		expectError    bool
	}{
		{
			name:           "absolute path",
			dsn:            "sqlite:///var/lib/site.db",
			wantPath:       "/var/lib/site.db",
			wantNormalized: "sqlite:///var/lib/site.db",
			wantConn:       "/var/lib/site.db",
		},
		{
			name:           "relative path",
			dsn:            "sqlite://site.db",
			wantPath:       "site.db",
			wantNormalized: "sqlite://site.db",
			wantConn:       "site.db",
		},
		{
			name:           "in memory",
			dsn:            "sqlite::memory:",
			wantPath:       ":memory:",
			wantNormalized: "sqlite://:memory:",
			wantConn:       ":memory:",
		},
		{
			name:           "file uri with params",
			dsn:            "file:site.db?mode=ro",
			wantPath:       "site.db",
			wantNormalized: "sqlite://site.db?mode=ro",
			wantConn:       "file:site.db?mode=ro",
		},
		{
			name:        "empty path",
			dsn:         "sqlite://",
			expectError: true,
		},
		{
			name:        "wrong scheme",
			dsn:         "mysql://u:p@h/db",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := resolver.Parse(tt.dsn)
			if tt.expectError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", info.Path, tt.wantPath)
			}

			normalized, err := resolver.Normalize(info)
			if err != nil {
				t.Fatalf("normalize failed: %v", err)
			}
			if normalized != tt.wantNormalized {
				t.Errorf("Normalize() = %q, want %q", normalized, tt.wantNormalized)
			}

			conn, err := resolver.ConnString(info)
			if err != nil {
				t.Fatalf("ConnString() error = %v", err)
			}
			if conn != tt.wantConn {
				t.Errorf("ConnString() = %q, want %q", conn, tt.wantConn)
			}
		})
	}
}
