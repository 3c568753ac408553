// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqb/cli/internal/dsn"
	"sqb/cli/internal/errors"
)

func openMemory(t *testing.T) *DBExecutor {
	t.Helper()

	exec, err := Open(context.Background(), "sqlite::memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = exec.Close() })

	db, ok := exec.(*DBExecutor)
	require.True(t, ok, "sqlite should open a *DBExecutor")

	_, err = db.DB.Exec(`
		CREATE TABLE wp_posts (id INTEGER PRIMARY KEY, post_title TEXT, score REAL, body BLOB);
		INSERT INTO wp_posts VALUES (1, 'Hello', 1.5, x'6869');
		INSERT INTO wp_posts VALUES (2, 'World', NULL, NULL);
	`)
	require.NoError(t, err)
	return db
}

func TestDBExecutor_Query(t *testing.T) {
	exec := openMemory(t)
	assert.Equal(t, dsn.DBTypeSQLite, exec.Type())

	res, err := exec.Query(context.Background(), "SELECT id, post_title, score, body FROM wp_posts ORDER BY id")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "post_title", "score", "body"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, []any{int64(1), "Hello", 1.5, "hi"}, res.Rows[0])
	assert.Equal(t, []any{int64(2), "World", nil, nil}, res.Rows[1])
	assert.False(t, res.Empty())
}

func TestDBExecutor_DuplicateColumns(t *testing.T) {
	exec := openMemory(t)

	res, err := exec.Query(context.Background(), "SELECT id, post_title AS t, id FROM wp_posts WHERE id = 1")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "t"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, []any{int64(1), "Hello"}, res.Rows[0])
}

func TestDBExecutor_NoRows(t *testing.T) {
	exec := openMemory(t)

	res, err := exec.Query(context.Background(), "SELECT id FROM wp_posts WHERE id > 100")
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, []string{"id"}, res.Columns)
}

func TestDBExecutor_QueryError(t *testing.T) {
	exec := openMemory(t)

	_, err := exec.Query(context.Background(), "SELECT * FROM wp_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.QueryFailed))
}

func TestOpen_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		kind errors.Kind
	}{
		{"oracle", "oracle://u:p@localhost/db", errors.UnsupportedDatabase},
		{"unknown scheme", "mongodb://localhost/db", errors.UnsupportedDatabase},
		{"malformed postgres", "postgres://localhost", errors.ConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.dsn, nil)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}
}

func TestResultEmpty(t *testing.T) {
	var nilResult *Result
	assert.True(t, nilResult.Empty())
	assert.True(t, (&Result{Columns: []string{"a"}}).Empty())
}
