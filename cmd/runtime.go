// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"sqb/cli/internal/config"
	"sqb/cli/internal/engine"
	"sqb/cli/internal/keychain"
	"sqb/cli/internal/logging"
	"sqb/cli/internal/shortcode"
	"sqb/cli/internal/sqlexec"
)

// errNoDSN is returned when no source provides a connection string.
var errNoDSN = errors.New("no database connection configured; run 'sqb connect' or pass --dsn")

// DSN sources, in lookup order.
const (
	sourceFlag        = "--dsn flag"
	sourceSQBEnv      = "SQB_DSN environment variable"
	sourceDatabaseURL = "DATABASE_URL environment variable"
	sourceConfig      = "config file"
	sourceKeychain    = "OS keychain"
)

// openKeychain returns the credential store used by connect and disconnect.
var openKeychain = keychain.GetManager

// keychainDSN loads the DSN saved by 'sqb connect'.
var keychainDSN = func() (string, error) {
	km, err := openKeychain()
	if err != nil {
		return "", err
	}
	return km.LoadDBDSN()
}

// resolveDSN returns the first non-empty DSN and where it came from.
func resolveDSN(flag string, c config.Config) (string, string, error) {
	candidates := []struct {
		source string
		value  string
	}{
		{sourceFlag, flag},
		{sourceSQBEnv, os.Getenv("SQB_DSN")},
		{sourceDatabaseURL, os.Getenv("DATABASE_URL")},
		{sourceConfig, c.DB.DSN},
	}
	for _, cand := range candidates {
		if v := strings.TrimSpace(cand.value); v != "" {
			return v, cand.source, nil
		}
	}

	v, err := keychainDSN()
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			logger.Debug("keychain unavailable", zap.Error(err))
		}
		return "", "", errNoDSN
	}
	if strings.TrimSpace(v) == "" {
		return "", "", errNoDSN
	}
	return strings.TrimSpace(v), sourceKeychain, nil
}

// newEngine builds an engine over q from the loaded configuration.
func newEngine(q sqlexec.Querier) *engine.Engine {
	return engine.New(
		shortcode.NewResolver(cfg.TablePrefix),
		q,
		engine.WithTag(cfg.Shortcode.Tag),
		engine.WithLogger(logger),
	)
}

// openEngine connects to the configured database and returns an engine
// over it. The caller closes the executor.
func openEngine(ctx context.Context) (*engine.Engine, sqlexec.Executor, error) {
	raw, source, err := resolveDSN(dsnFlag, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("using database", zap.String("source", source), logging.DSN(raw))

	exec, err := sqlexec.Open(ctx, raw, logger)
	if err != nil {
		return nil, nil, err
	}
	return newEngine(exec), exec, nil
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(in)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

// writeOutput writes s to path, or to out when path is empty.
func writeOutput(out io.Writer, path, s string) error {
	if path == "" {
		_, err := io.WriteString(out, s)
		return err
	}
	return os.WriteFile(path, []byte(s), 0o644)
}
