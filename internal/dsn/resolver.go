// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

const supportedSchemes = "use postgres://, mysql:// or sqlite://"

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DBTypePostgreSQL
	case strings.HasPrefix(lower, "mysql://"):
		return DBTypeMySQL
	case strings.HasPrefix(lower, "sqlite:"), strings.HasPrefix(lower, "file:"):
		return DBTypeSQLite
	case strings.HasPrefix(lower, "oracle://"):
		return DBTypeOracle
	}
	return DBTypeUnknown
}

// resolverFor picks the resolver for the DSN's scheme.
func resolverFor(dsn string) (Resolver, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid database connection string")
	}

	switch DetectDBType(dsn) {
	case DBTypePostgreSQL:
		return NewPostgreSQLResolver(), nil
	case DBTypeMySQL:
		return NewMySQLResolver(), nil
	case DBTypeSQLite:
		return NewSQLiteResolver(), nil
	case DBTypeOracle:
		return nil, NewParseError(dsn, "Oracle is not supported", supportedSchemes)
	default:
		return nil, NewParseError(dsn, "unknown database type", supportedSchemes)
	}
}

// Parse parses a DSN string and returns its canonical URL form.
// This is the form stored in the keychain and config.
func Parse(dsn string) (string, error) {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return "", err
	}

	info, err := resolver.Parse(dsn)
	if err != nil {
		return "", err
	}

	return resolver.Normalize(info)
}

// Resolve parses a DSN and produces everything needed to open a connection.
func Resolve(dsn string) (*Target, error) {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return nil, err
	}

	info, err := resolver.Parse(dsn)
	if err != nil {
		return nil, err
	}

	normalized, err := resolver.Normalize(info)
	if err != nil {
		return nil, err
	}
	conn, err := resolver.ConnString(info)
	if err != nil {
		return nil, err
	}

	return &Target{
		Type:       info.Type,
		Normalized: normalized,
		ConnString: conn,
		Info:       info,
	}, nil
}

// Validate validates a DSN string without normalizing it
func Validate(dsn string) error {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return err
	}
	return resolver.Validate(dsn)
}

// ParseInfo parses a DSN string and returns detailed DSN info
// Useful for inspecting connection details
func ParseInfo(dsn string) (*DSNInfo, error) {
	resolver, err := resolverFor(dsn)
	if err != nil {
		return nil, err
	}
	return resolver.Parse(dsn)
}

// DatabaseName returns a short label for the database a DSN points at.
func DatabaseName(dsn string) string {
	info, err := ParseInfo(dsn)
	if err != nil {
		return "unknown"
	}
	if info.Type == DBTypeSQLite {
		return info.Path
	}
	return info.Database
}
