// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"strings"
	"testing"

	apperrors "sqb/cli/internal/errors"
)

func TestParseDatabaseError(t *testing.T) {
	tests := []struct {
		msg  string
		want DBErrorType
	}{
		{"dial tcp 127.0.0.1:5432: connect: connection refused", DBErrorNetwork},
		{`pq: password authentication failed for user "wp"`, DBErrorAuth},
		{"Error 1045: Access denied for user 'wp'@'localhost'", DBErrorAuth},
		{"context deadline exceeded", DBErrorTimeout},
		{"SQL logic error: no such table: wp_events (1)", DBErrorMissingObject},
		{`ERROR: relation "wp_events" does not exist (SQLSTATE 42P01)`, DBErrorMissingObject},
		{"Error 1146: Table 'wordpress.wp_x' doesn't exist", DBErrorMissingObject},
		{`ERROR: syntax error at or near "FROM"`, DBErrorSyntax},
		{"unsupported_database: no executor for this DSN", DBErrorUnsupported},
		{"something odd", DBErrorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := ParseDatabaseError(tt.msg); got != tt.want {
				t.Errorf("ParseDatabaseError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDatabaseError(t *testing.T) {
	if FormatDatabaseError(nil) != "" {
		t.Error("nil error should format as empty string")
	}

	err := apperrors.Wrap(apperrors.ConnectFailed, "open postgres://wp:hunter2@db/site",
		errors.New("dial tcp: connection refused"))
	out := FormatDatabaseError(err)

	if !strings.Contains(out, "Connection Failed") {
		t.Errorf("missing title in %q", out)
	}
	if !strings.Contains(out, "could not be reached") {
		t.Errorf("missing network hint in %q", out)
	}
	if strings.Contains(out, "hunter2") {
		t.Errorf("password leaked in %q", out)
	}
}

func TestPresentError_MasksDSN(t *testing.T) {
	if PresentError("connect", nil) != "" {
		t.Error("nil error should present as empty string")
	}
	got := PresentError("connect", errors.New("postgres://a:b@h/db refused"))
	if got != "connect: postgres://*:*@h/db refused" {
		t.Errorf("PresentError() = %q", got)
	}
}
