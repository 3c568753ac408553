// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net/url"
	"strings"
)

// SQLiteResolver handles sqlite:// and file: DSNs.
//
//	sqlite:///var/lib/site.db   absolute path
//	sqlite://site.db            relative path
//	sqlite::memory:             in-memory database
//	file:site.db?mode=ro        SQLite URI, passed through
type SQLiteResolver struct{}

// NewSQLiteResolver creates a new SQLite resolver
func NewSQLiteResolver() *SQLiteResolver {
	return &SQLiteResolver{}
}

// Parse parses a SQLite DSN
func (r *SQLiteResolver) Parse(dsn string) (*DSNInfo, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid SQLite path")
	}

	var rest string
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		rest = dsn[len("sqlite://"):]
	case strings.HasPrefix(lower, "sqlite:"):
		rest = dsn[len("sqlite:"):]
	case strings.HasPrefix(lower, "file:"):
		rest = dsn[len("file:"):]
	default:
		return nil, NewParseError(dsn, "missing or invalid scheme", "use sqlite:// or file:")
	}

	info := &DSNInfo{
		Type:     DBTypeSQLite,
		Params:   make(map[string]string),
		Original: dsn,
	}

	path, query, _ := strings.Cut(rest, "?")
	info.Path = strings.TrimSpace(path)
	if info.Path == "" {
		return nil, NewParseError(dsn, "missing database path", "format should be sqlite:///path/to/site.db")
	}
	info.Database = info.Path

	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return nil, NewParseError(dsn, "invalid query parameters", err.Error())
		}
		for key, vals := range values {
			if len(vals) > 0 {
				info.Params[key] = vals[0]
			}
		}
	}

	return info, nil
}

// Normalize converts DSN info to a canonical sqlite:// URL
func (r *SQLiteResolver) Normalize(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}
	var builder strings.Builder
	builder.WriteString("sqlite://")
	builder.WriteString(info.Path)
	writeParams(&builder, info.Params)
	return builder.String(), nil
}

// ConnString returns the bare path, or a file: URI when parameters are set.
func (r *SQLiteResolver) ConnString(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}
	if len(info.Params) == 0 {
		return info.Path, nil
	}
	var builder strings.Builder
	builder.WriteString("file:")
	builder.WriteString(info.Path)
	writeParams(&builder, info.Params)
	return builder.String(), nil
}

// Validate checks if the DSN is valid for SQLite
func (r *SQLiteResolver) Validate(dsn string) error {
	_, err := r.Parse(dsn)
	return err
}
