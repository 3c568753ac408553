// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQLResolver handles mysql:// DSNs, the usual home of a WordPress site
// database. The driver wants its own user:pass@tcp(host:port)/db format, so
// ConnString translates the URL through mysql.Config.
type MySQLResolver struct{}

// NewMySQLResolver creates a new MySQL resolver
func NewMySQLResolver() *MySQLResolver {
	return &MySQLResolver{}
}

// Parse parses a mysql:// DSN
func (r *MySQLResolver) Parse(dsn string) (*DSNInfo, error) {
	if dsn == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a valid MySQL connection string")
	}
	if !strings.HasPrefix(dsn, "mysql://") {
		return nil, NewParseError(dsn, "missing or invalid scheme", "use mysql://")
	}

	parsed, err := url.Parse(dsn)
	if err == nil && parsed.User != nil {
		return extractFromURL(parsed, dsn, DBTypeMySQL, "3306", "mysql")
	}
	return manualParse(strings.TrimPrefix(dsn, "mysql://"), dsn, DBTypeMySQL, "3306", "mysql")
}

// Normalize converts DSN info to a canonical mysql:// URL
func (r *MySQLResolver) Normalize(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}

	var builder strings.Builder
	builder.WriteString("mysql://")
	if info.User != "" {
		builder.WriteString(url.QueryEscape(info.User))
		if info.Password != "" {
			builder.WriteString(":")
			builder.WriteString(url.QueryEscape(info.Password))
		}
		builder.WriteString("@")
	}
	builder.WriteString(info.Host)
	if info.Port != "" {
		builder.WriteString(":")
		builder.WriteString(info.Port)
	}
	builder.WriteString("/")
	builder.WriteString(info.Database)
	writeParams(&builder, info.Params)

	return builder.String(), nil
}

// ConnString formats the DSN the way go-sql-driver/mysql parses it.
// Column values stay in text form; parseTime is only set when the DSN asks.
func (r *MySQLResolver) ConnString(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}

	cfg := mysql.NewConfig()
	cfg.User = info.User
	cfg.Passwd = info.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(info.Host, info.Port)
	cfg.DBName = info.Database
	if len(info.Params) > 0 {
		cfg.Params = make(map[string]string, len(info.Params))
		for key, value := range info.Params {
			cfg.Params[key] = value
		}
	}

	// Round-trip through the driver's parser so unknown or malformed
	// options are reported here rather than at connect time.
	formatted := cfg.FormatDSN()
	if _, err := mysql.ParseDSN(formatted); err != nil {
		return "", NewParseError(info.Original, err.Error(), "check the mysql:// query parameters")
	}
	return formatted, nil
}

// Validate checks if the DSN is valid for MySQL
func (r *MySQLResolver) Validate(dsn string) error {
	info, err := r.Parse(dsn)
	if err != nil {
		return err
	}
	if err := validatePort(dsn, info.Port); err != nil {
		return err
	}
	_, err = r.ConnString(info)
	return err
}
