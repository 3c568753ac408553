// Package sqlexec runs shortcode queries against the site database and hands
// back normalized rows for rendering. PostgreSQL goes through a pgx connection
// pool; MySQL and SQLite go through database/sql.
//
// Key features include:
//   - One Querier interface for every backend
//   - Column order preserved, duplicate column names collapsed
//   - Driver values reduced to plain scalars (UUIDs, byte slices, timestamps)
//   - Debug logging of every statement through zap
package sqlexec

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sqb/cli/internal/dsn"
	"sqb/cli/internal/errors"
)

// Querier runs one read query and returns its rows.
type Querier interface {
	Query(ctx context.Context, sql string) (*Result, error)
}

// Executor is a Querier bound to an open database.
type Executor interface {
	Querier
	Ping(ctx context.Context) error
	Type() dsn.DBType
	Close() error
}

// PoolExecutor executes queries using a pgx connection pool.
type PoolExecutor struct {
	// Pool is the PostgreSQL connection pool
	Pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPoolExecutor creates a PoolExecutor from an existing pgx pool.
func NewPoolExecutor(pool *pgxpool.Pool, logger *zap.Logger) *PoolExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PoolExecutor{Pool: pool, logger: logger}
}

// Query runs sql and collects every row.
func (e *PoolExecutor) Query(ctx context.Context, sql string) (*Result, error) {
	start := time.Now()
	rows, err := e.Pool.Query(ctx, sql)
	if err != nil {
		return nil, errors.Wrap(errors.QueryFailed, "shortcode query failed", err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	c := newCollector(names)

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(errors.QueryFailed, "read row", err)
		}
		c.add(vals)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.QueryFailed, "shortcode query failed", err)
	}

	res := c.result()
	e.logger.Debug("query executed",
		zap.String("sql", sql),
		zap.Int("rows", len(res.Rows)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

// Ping checks that the pool can reach the server.
func (e *PoolExecutor) Ping(ctx context.Context) error {
	return e.Pool.Ping(ctx)
}

// Type reports PostgreSQL.
func (e *PoolExecutor) Type() dsn.DBType { return dsn.DBTypePostgreSQL }

// Close releases the pool.
func (e *PoolExecutor) Close() error {
	e.Pool.Close()
	return nil
}

// DBExecutor executes queries through database/sql.
type DBExecutor struct {
	DB     *sql.DB
	dbType dsn.DBType
	logger *zap.Logger
}

// NewDBExecutor wraps an open *sql.DB.
func NewDBExecutor(db *sql.DB, dbType dsn.DBType, logger *zap.Logger) *DBExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBExecutor{DB: db, dbType: dbType, logger: logger}
}

// Query runs sql and collects every row.
func (e *DBExecutor) Query(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.QueryFailed, "shortcode query failed", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.QueryFailed, "read columns", err)
	}
	c := newCollector(names)

	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(errors.QueryFailed, "read row", err)
		}
		c.add(vals)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.QueryFailed, "shortcode query failed", err)
	}

	res := c.result()
	e.logger.Debug("query executed",
		zap.String("sql", query),
		zap.String("db", string(e.dbType)),
		zap.Int("rows", len(res.Rows)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

// Ping checks the database connection.
func (e *DBExecutor) Ping(ctx context.Context) error {
	return e.DB.PingContext(ctx)
}

// Type reports the database flavour.
func (e *DBExecutor) Type() dsn.DBType { return e.dbType }

// Close closes the underlying *sql.DB.
func (e *DBExecutor) Close() error {
	return e.DB.Close()
}
