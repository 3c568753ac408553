// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"sqb/cli/internal/config"
	"sqb/cli/internal/dsn"
	"sqb/cli/internal/keychain"
	"sqb/cli/internal/shortcode"
)

// isolate points config at a temp dir, clears DSN env vars and stubs the
// keychain so tests never touch the user's real credentials.
func isolate(t *testing.T, stored string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SQB_DSN", "")
	t.Setenv("DATABASE_URL", "")

	prev := keychainDSN
	keychainDSN = func() (string, error) {
		if stored == "" {
			return "", keychain.ErrNotFound
		}
		return stored, nil
	}
	t.Cleanup(func() { keychainDSN = prev })
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dsnFlag, renderOutput, stripOutput, attrsHTML = "", "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveDSN(t *testing.T) {
	withConfig := config.Default()
	withConfig.DB.DSN = "sqlite://from-config.db"

	tests := []struct {
		name       string
		flag       string
		sqbEnv     string
		dbURL      string
		cfg        config.Config
		stored     string
		wantDSN    string
		wantSource string
		wantErr    error
	}{
		{
			name:       "flag wins",
			flag:       "sqlite://flag.db",
			sqbEnv:     "sqlite://env.db",
			cfg:        withConfig,
			stored:     "sqlite://keychain.db",
			wantDSN:    "sqlite://flag.db",
			wantSource: sourceFlag,
		},
		{
			name:       "SQB_DSN before DATABASE_URL",
			sqbEnv:     "sqlite://env.db",
			dbURL:      "sqlite://url.db",
			wantDSN:    "sqlite://env.db",
			wantSource: sourceSQBEnv,
		},
		{
			name:       "DATABASE_URL",
			dbURL:      " sqlite://url.db ",
			cfg:        withConfig,
			wantDSN:    "sqlite://url.db",
			wantSource: sourceDatabaseURL,
		},
		{
			name:       "config before keychain",
			cfg:        withConfig,
			stored:     "sqlite://keychain.db",
			wantDSN:    "sqlite://from-config.db",
			wantSource: sourceConfig,
		},
		{
			name:       "keychain",
			stored:     "sqlite://keychain.db",
			wantDSN:    "sqlite://keychain.db",
			wantSource: sourceKeychain,
		},
		{
			name:    "nothing configured",
			wantErr: errNoDSN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, tt.stored)
			t.Setenv("SQB_DSN", tt.sqbEnv)
			t.Setenv("DATABASE_URL", tt.dbURL)

			got, source, err := resolveDSN(tt.flag, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDSN, got)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestResolveDSN_KeychainUnavailable(t *testing.T) {
	isolate(t, "")
	keychainDSN = func() (string, error) { return "", errors.New("dbus: no session bus") }

	_, _, err := resolveDSN("", config.Default())
	assert.ErrorIs(t, err, errNoDSN)
}

func TestAttrsFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    shortcode.RawAttrs
		wantErr bool
	}{
		{
			name: "pairs",
			args: []string{"table=#_posts", "where=post_status = 'publish'"},
			want: shortcode.RawAttrs{{Name: "table", Value: "#_posts"}, {Name: "where", Value: "post_status = 'publish'"}},
		},
		{
			name: "value containing equals",
			args: []string{"where=a=b"},
			want: shortcode.RawAttrs{{Name: "where", Value: "a=b"}},
		},
		{
			name: "complete tag",
			args: []string{`[shortcode-query table="#_users" limit=3]`},
			want: shortcode.RawAttrs{{Name: "table", Value: "#_users"}, {Name: "limit", Value: "3"}},
		},
		{
			name:    "bare word",
			args:    []string{"posts"},
			wantErr: true,
		},
		{
			name:    "tag with other name",
			args:    []string{`[other table="x"]`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := attrsFromArgs(tt.args, shortcode.DefaultTag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadInputAndWriteOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(in, []byte("from file"), 0o600))

	got, err := readInput(strings.NewReader("from stdin"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readInput(strings.NewReader("from stdin"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readInput(strings.NewReader("from stdin"), []string{in})
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, "", "to stdout"))
	assert.Equal(t, "to stdout", buf.String())

	out := filepath.Join(dir, "out.html")
	require.NoError(t, writeOutput(&buf, out, "to file"))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "to file", string(b))
}

func TestBuildCommand(t *testing.T) {
	isolate(t, "")

	out, err := run(t, "", "build", "table=#_posts", "cols=ID, post_title", "limit=5")
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT ID, post_title FROM wp_posts LIMIT 5\n", out)
}

func TestBuildCommand_CustomPrefix(t *testing.T) {
	isolate(t, "")
	t.Setenv("SQB_TABLE_PREFIX", "blog_")

	out, err := run(t, "", "build", `[shortcode-query table="#_users" order-by="user_login"]`)
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT * FROM blog_users ORDER BY user_login\n", out)
}

func TestBuildCommand_InvalidAttributes(t *testing.T) {
	isolate(t, "")

	_, err := run(t, "", "build", "tabel=posts")
	var verr *shortcode.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestStripCommand(t *testing.T) {
	isolate(t, "")

	out, err := run(t, `Great! [shortcode-query table="wp_users"] Bye`, "strip")
	require.NoError(t, err)
	assert.Equal(t, "Great!  Bye", out)
}

func TestAttrsCommand_HTML(t *testing.T) {
	isolate(t, "")

	out, err := run(t, "", "attrs", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "&lbrack;shortcode-query &lt;attributes&gt;=...&rbrack;")
	assert.NotContains(t, out, "Errors from Plugin")
}

func TestRenderCommand_SQLite(t *testing.T) {
	isolate(t, "")

	path := filepath.Join(t.TempDir(), "site.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE wp_events (id INTEGER PRIMARY KEY, name TEXT);
		INSERT INTO wp_events (id, name) VALUES (1, 'Workshop'), (2, 'Seminar');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	content := `<h1>Events</h1>[shortcode-query table="#_events" cols="name" order-by="name DESC" wrapper="ul"]`
	out, err := run(t, content, "render", "--dsn", "sqlite://"+path)
	require.NoError(t, err)
	assert.Equal(t, `<h1>Events</h1><ul class="shortcode-query-builder"><li>Workshop</li><li>Seminar</li></ul>`, out)
}

func TestRenderCommand_NoDSN(t *testing.T) {
	isolate(t, "")

	_, err := run(t, "[shortcode-query table=x]", "render")
	assert.ErrorIs(t, err, errNoDSN)
}

func TestVersionFlag(t *testing.T) {
	isolate(t, "")
	showVersion = false
	t.Cleanup(func() { showVersion = false })

	_, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.True(t, showVersion)
}

func TestCheckDSN(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "postgres normalized", raw: "postgres://wp:secret@db/site", want: "postgresql://wp:secret@db:5432/site"},
		{name: "sqlite", raw: "sqlite:///tmp/site.db", want: "sqlite:///tmp/site.db"},
		{name: "non-numeric port", raw: "mysql://wp:secret@db:abc/wordpress", wantErr: true},
		{name: "unsupported", raw: "oracle://u:p@h/db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkDSN(tt.raw)
			if tt.wantErr {
				var parseErr *dsn.ParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisconnectCommand(t *testing.T) {
	isolate(t, "")
	km := keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil))
	require.NoError(t, km.SaveDBDSN("sqlite:///tmp/site.db"))

	prev := openKeychain
	openKeychain = func() (*keychain.Manager, error) { return km, nil }
	t.Cleanup(func() { openKeychain = prev })

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "sqb")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`{"db": {"provided": true}}`), 0o600))

	out, err := run(t, "", "disconnect")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved database connection removed")

	_, err = km.LoadDBDSN()
	assert.ErrorIs(t, err, keychain.ErrNotFound)

	loaded, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.False(t, loaded.DB.Provided)

	// Disconnecting twice is fine.
	_, err = run(t, "", "disconnect")
	require.NoError(t, err)
}
