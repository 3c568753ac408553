// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"sqb/cli/internal/dsn"
	"sqb/cli/internal/errors"
)

// Open resolves rawDSN, connects to the database and verifies the connection
// with a ping. The caller owns the returned Executor and must Close it.
func Open(ctx context.Context, rawDSN string, logger *zap.Logger) (Executor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	target, err := dsn.Resolve(rawDSN)
	if err != nil {
		switch dsn.DetectDBType(rawDSN) {
		case dsn.DBTypeOracle, dsn.DBTypeUnknown:
			return nil, errors.Wrap(errors.UnsupportedDatabase, "no executor for this DSN", err)
		}
		return nil, errors.Wrap(errors.ConfigInvalid, "invalid DSN", err)
	}

	var exec Executor
	switch target.Type {
	case dsn.DBTypePostgreSQL:
		pool, err := pgxpool.New(ctx, target.ConnString)
		if err != nil {
			return nil, errors.Wrap(errors.ConnectFailed, "open PostgreSQL pool", err)
		}
		exec = NewPoolExecutor(pool, logger)
	case dsn.DBTypeMySQL:
		db, err := sql.Open("mysql", target.ConnString)
		if err != nil {
			return nil, errors.Wrap(errors.ConnectFailed, "open MySQL database", err)
		}
		exec = NewDBExecutor(db, dsn.DBTypeMySQL, logger)
	case dsn.DBTypeSQLite:
		db, err := sql.Open("sqlite", target.ConnString)
		if err != nil {
			return nil, errors.Wrap(errors.ConnectFailed, "open SQLite database", err)
		}
		// Each connection to :memory: is its own database.
		if strings.Contains(target.ConnString, ":memory:") {
			db.SetMaxOpenConns(1)
		}
		exec = NewDBExecutor(db, dsn.DBTypeSQLite, logger)
	default:
		return nil, errors.New(errors.UnsupportedDatabase, "no executor for "+string(target.Type))
	}

	if err := exec.Ping(ctx); err != nil {
		_ = exec.Close()
		return nil, errors.Wrap(errors.ConnectFailed, "ping "+string(target.Type), err)
	}

	logger.Debug("database connected",
		zap.String("type", string(target.Type)),
		zap.String("database", dsn.DatabaseName(target.Normalized)))
	return exec, nil
}
