// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	apperrors "sqb/cli/internal/errors"
)

// DBErrorType represents the category of a database failure
type DBErrorType int

const (
	DBErrorUnknown DBErrorType = iota
	DBErrorNetwork
	DBErrorAuth
	DBErrorTimeout
	DBErrorMissingObject
	DBErrorSyntax
	DBErrorUnsupported
)

// ParseDatabaseError categorizes a database error message
func ParseDatabaseError(errMsg string) DBErrorType {
	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "unsupported_database"), strings.Contains(lower, "is not supported"),
		strings.Contains(lower, "unknown database type"):
		return DBErrorUnsupported
	case strings.Contains(lower, "password authentication failed"), strings.Contains(lower, "access denied"),
		strings.Contains(lower, "authentication"):
		return DBErrorAuth
	case strings.Contains(lower, "deadline"), strings.Contains(lower, "timeout"), strings.Contains(lower, "timed out"):
		return DBErrorTimeout
	case strings.Contains(lower, "connection refused"), strings.Contains(lower, "no such host"),
		strings.Contains(lower, "connection reset"), strings.Contains(lower, "dial tcp"):
		return DBErrorNetwork
	case strings.Contains(lower, "no such table"), strings.Contains(lower, "does not exist"),
		strings.Contains(lower, "doesn't exist"), strings.Contains(lower, "no such column"),
		strings.Contains(lower, "unknown column"):
		return DBErrorMissingObject
	case strings.Contains(lower, "syntax error"), strings.Contains(lower, "error in your sql syntax"):
		return DBErrorSyntax
	}
	return DBErrorUnknown
}

// FormatDatabaseError formats a connect or query failure in a user-friendly way.
// Credentials in the error text are masked.
func FormatDatabaseError(err error) string {
	if err == nil {
		return ""
	}
	errMsg := Mask(err.Error())
	errType := ParseDatabaseError(errMsg)

	var builder strings.Builder

	title := "Database Error"
	switch apperrors.KindOf(err) {
	case apperrors.ConnectFailed:
		title = "Connection Failed"
	case apperrors.QueryFailed:
		title = "Shortcode Query Failed"
	}
	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(title))
	builder.WriteString("\n\n")

	switch errType {
	case DBErrorNetwork:
		builder.WriteString("The database server could not be reached.\n")
		builder.WriteString("Check that:\n")
		builder.WriteString("  • The host and port in your DSN are correct\n")
		builder.WriteString("  • The database server is running\n")
		builder.WriteString("  • No firewall blocks the connection\n")

	case DBErrorAuth:
		builder.WriteString("The database rejected the credentials.\n")
		builder.WriteString("Run 'sqb connect' to store a DSN with a valid user and password.\n")

	case DBErrorTimeout:
		builder.WriteString("The database did not answer in time.\n")
		builder.WriteString("Large tables without a limit attribute can take a while to read.\n")

	case DBErrorMissingObject:
		builder.WriteString("The query refers to a table or column that does not exist.\n")
		builder.WriteString("Check the table and cols attributes, and the configured table prefix for #_.\n")

	case DBErrorSyntax:
		builder.WriteString("The database could not parse the generated statement.\n")
		builder.WriteString("Run 'sqb build' with the same attributes to see the SQL.\n")

	case DBErrorUnsupported:
		builder.WriteString("This database type is not supported.\n")
		builder.WriteString("Use a postgres://, mysql:// or sqlite:// DSN.\n")

	default:
		builder.WriteString("The database reported an error.\n")
	}

	builder.WriteString("\n")
	builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + errMsg))
	return builder.String()
}

// PresentDatabaseError displays a formatted database error
func PresentDatabaseError(err error) {
	fmt.Println()
	fmt.Println(FormatDatabaseError(err))
	fmt.Println()
}
