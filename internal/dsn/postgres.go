// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// PostgreSQLResolver handles PostgreSQL DSN parsing and normalization.
// Passwords with unencoded special characters are accepted.
type PostgreSQLResolver struct{}

// NewPostgreSQLResolver creates a new PostgreSQL resolver
func NewPostgreSQLResolver() *PostgreSQLResolver {
	return &PostgreSQLResolver{}
}

// Parse parses a PostgreSQL DSN string and returns normalized DSN info
func (r *PostgreSQLResolver) Parse(dsn string) (*DSNInfo, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid PostgreSQL connection string")
	}

	// Detect scheme (postgres:// or postgresql://)
	scheme := ""
	remainder := dsn
	if strings.HasPrefix(dsn, "postgresql://") {
		scheme = "postgresql"
		remainder = strings.TrimPrefix(dsn, "postgresql://")
	} else if strings.HasPrefix(dsn, "postgres://") {
		scheme = "postgres"
		remainder = strings.TrimPrefix(dsn, "postgres://")
	} else {
		return nil, NewParseError(dsn, "missing or invalid scheme", "use postgres:// or postgresql://")
	}

	// Try standard URL parsing first
	parsed, err := url.Parse(dsn)
	if err == nil && parsed.User != nil {
		// Standard parsing worked - extract info
		return extractFromURL(parsed, dsn, DBTypePostgreSQL, "5432", scheme)
	}

	// Standard parsing failed - likely due to special characters in password
	return manualParse(remainder, dsn, DBTypePostgreSQL, "5432", scheme)
}

// extractFromURL extracts DSN info from a successfully parsed URL
func extractFromURL(parsed *url.URL, originalDSN string, dbType DBType, defaultPort, scheme string) (*DSNInfo, error) {
	info := &DSNInfo{
		Type:     dbType,
		Host:     parsed.Hostname(),
		Port:     parsed.Port(),
		User:     parsed.User.Username(),
		Database: strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")),
		Params:   make(map[string]string),
		Original: originalDSN,
	}

	password, _ := parsed.User.Password()
	info.Password = password

	// Extract query parameters
	for key, values := range parsed.Query() {
		if len(values) > 0 {
			info.Params[key] = values[0]
		}
	}

	if info.Port == "" {
		info.Port = defaultPort
	}

	if err := requireServerFields(info, originalDSN, scheme); err != nil {
		return nil, err
	}

	return info, nil
}

// manualParse manually parses a DSN when standard URL parsing fails
// This handles cases where special characters in password aren't URL-encoded
func manualParse(remainder, originalDSN string, dbType DBType, defaultPort, scheme string) (*DSNInfo, error) {
	// Pattern: [user[:password]@]host[:port]/database[?params]
	format := "format should be " + scheme + "://user:password@host:port/database"

	info := &DSNInfo{
		Type:     dbType,
		Port:     defaultPort,
		Params:   make(map[string]string),
		Original: originalDSN,
	}

	// Split by @ to separate auth and host
	atIndex := strings.Index(remainder, "@")
	if atIndex == -1 {
		return nil, NewParseError(originalDSN, "missing @ separator", format)
	}

	authPart := remainder[:atIndex]
	hostAndDB := remainder[atIndex+1:]

	// Parse auth part (user:password)
	colonIndex := strings.Index(authPart, ":")
	if colonIndex == -1 {
		info.User = authPart
		info.Password = ""
	} else {
		info.User = authPart[:colonIndex]
		info.Password = authPart[colonIndex+1:]
	}

	// Parse host and database
	// Format: host[:port]/database[?params]
	slashIndex := strings.Index(hostAndDB, "/")
	if slashIndex == -1 {
		return nil, NewParseError(originalDSN, "missing / before database name", format)
	}

	hostPart := hostAndDB[:slashIndex]
	dbAndParams := hostAndDB[slashIndex+1:]

	// Parse host:port
	if strings.Contains(hostPart, ":") {
		parts := strings.SplitN(hostPart, ":", 2)
		info.Host = parts[0]
		info.Port = parts[1]
	} else {
		info.Host = hostPart
	}

	// Parse database and params
	questionIndex := strings.Index(dbAndParams, "?")
	if questionIndex == -1 {
		info.Database = strings.TrimSpace(dbAndParams)
	} else {
		info.Database = strings.TrimSpace(dbAndParams[:questionIndex])
		paramStr := dbAndParams[questionIndex+1:]

		// Parse query parameters
		for _, param := range strings.Split(paramStr, "&") {
			if kv := strings.SplitN(param, "=", 2); len(kv) == 2 {
				info.Params[kv[0]] = kv[1]
			}
		}
	}

	if err := requireServerFields(info, originalDSN, scheme); err != nil {
		return nil, err
	}

	return info, nil
}

// requireServerFields checks the fields every client/server DSN needs.
func requireServerFields(info *DSNInfo, originalDSN, scheme string) error {
	format := scheme + "://user:password@host/database"
	if strings.TrimSpace(info.User) == "" {
		return NewParseError(originalDSN, "missing username", "provide username in format "+format)
	}
	if strings.TrimSpace(info.Host) == "" {
		return NewParseError(originalDSN, "missing host", "provide host in format "+format)
	}
	if strings.TrimSpace(info.Database) == "" {
		return NewParseError(originalDSN, "missing database name", "provide database in format "+format)
	}
	return nil
}

// writeParams appends query parameters in key order.
func writeParams(builder *strings.Builder, params map[string]string) {
	if len(params) == 0 {
		return
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	builder.WriteString("?")
	for i, key := range keys {
		if i > 0 {
			builder.WriteString("&")
		}
		builder.WriteString(url.QueryEscape(key))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(params[key]))
	}
}

// Normalize converts DSN info to a properly formatted connection string
func (r *PostgreSQLResolver) Normalize(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}

	// Build normalized DSN with proper URL encoding
	var builder strings.Builder

	// Use postgresql:// as canonical scheme
	builder.WriteString("postgresql://")

	// Encode username and password
	if info.User != "" {
		builder.WriteString(url.QueryEscape(info.User))
		if info.Password != "" {
			builder.WriteString(":")
			builder.WriteString(url.QueryEscape(info.Password))
		}
		builder.WriteString("@")
	}

	// Add host
	builder.WriteString(info.Host)

	if info.Port != "" {
		builder.WriteString(":")
		builder.WriteString(info.Port)
	}

	// Add database
	builder.WriteString("/")
	builder.WriteString(info.Database)

	writeParams(&builder, info.Params)

	return builder.String(), nil
}

// ConnString returns the normalized URL; pgx accepts it as is.
func (r *PostgreSQLResolver) ConnString(info *DSNInfo) (string, error) {
	return r.Normalize(info)
}

// Validate checks if the DSN is valid for PostgreSQL
func (r *PostgreSQLResolver) Validate(dsn string) error {
	info, err := r.Parse(dsn)
	if err != nil {
		return err
	}
	return validatePort(dsn, info.Port)
}

var reNumeric = regexp.MustCompile(`^\d+$`)

// validatePort rejects non-numeric ports.
func validatePort(dsn, port string) error {
	if port != "" && !reNumeric.MatchString(port) {
		return NewParseError(dsn, fmt.Sprintf("invalid port number: %s", port), "port must be numeric")
	}
	return nil
}
