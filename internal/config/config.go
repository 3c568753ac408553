// Package config loads and stores CLI configuration in the XDG config dir.
// Settings come from config.json, overridden by SQB_* environment variables
// (SQB_TABLE_PREFIX, SQB_SERVER_ADDR, ...). The database DSN may be kept here
// for local setups, but `sqb connect` stores it in the OS keychain instead.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "sqb/cli/internal/errors"
	"sqb/cli/internal/shortcode"
	"sqb/cli/internal/xdg"
)

// FileName is the config file name inside the config directory.
const FileName = "config.json"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "SQB"

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel    string          `mapstructure:"log_level" json:"log_level"`
	TablePrefix string          `mapstructure:"table_prefix" json:"table_prefix"`
	Shortcode   ShortcodeConfig `mapstructure:"shortcode" json:"shortcode"`
	DB          DBConfig        `mapstructure:"db" json:"db"`
	Server      ServerConfig    `mapstructure:"server" json:"server"`
}

// ShortcodeConfig holds shortcode settings.
type ShortcodeConfig struct {
	Tag string `mapstructure:"tag" json:"tag"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	DSN string `mapstructure:"dsn" json:"dsn,omitempty"`
	// Provided records that a DSN was saved to the keychain.
	Provided bool `mapstructure:"provided" json:"provided"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" json:"addr"`
	PagesDir       string        `mapstructure:"pages_dir" json:"pages_dir"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"-"`
}

// MarshalJSON writes the timeout in its string form ("10s").
func (s ServerConfig) MarshalJSON() ([]byte, error) {
	type plain ServerConfig
	return json.Marshal(struct {
		plain
		RequestTimeout string `json:"request_timeout"`
	}{plain(s), s.RequestTimeout.String()})
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		TablePrefix: "wp_",
		Shortcode:   ShortcodeConfig{Tag: shortcode.DefaultTag},
		Server: ServerConfig{
			Addr:           ":8080",
			PagesDir:       "pages",
			RequestTimeout: 10 * time.Second,
		},
	}
}

// newViper returns a viper instance with defaults. With env set, SQB_*
// variables override file values.
func newViper(env bool) *viper.Viper {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("json")
	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("table_prefix", d.TablePrefix)
	v.SetDefault("shortcode.tag", d.Shortcode.Tag)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.provided", false)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.pages_dir", d.Server.PagesDir)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout.String())
	return v
}

// Load reads configuration from the XDG config dir; a missing file yields
// defaults plus environment overrides.
func Load() (Config, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, "resolve config dir", err)
	}
	return LoadFrom(dir)
}

// LoadFrom reads configuration from dir.
func LoadFrom(dir string) (Config, error) {
	return load(dir, true)
}

func load(dir string, env bool) (Config, error) {
	v := newViper(env)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, "read "+filepath.Join(dir, FileName), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, "decode config", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

var reTag = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate checks settings that would otherwise fail late.
func (c Config) Validate() error {
	if !reTag.MatchString(c.Shortcode.Tag) {
		return apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("shortcode.tag %q must use letters, digits, - or _", c.Shortcode.Tag))
	}
	if c.Server.RequestTimeout <= 0 {
		return apperrors.New(apperrors.ConfigInvalid, "server.request_timeout must be positive")
	}
	return nil
}

// SetProvided records in the config file whether a DSN is stored in the
// keychain. The rest of the file is rewritten as stored, without environment
// overrides, so SQB_* values (a DSN in SQB_DB_DSN included) never leak into it.
func SetProvided(provided bool) error {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return apperrors.Wrap(apperrors.ConfigInvalid, "resolve config dir", err)
	}
	return SetProvidedIn(dir, provided)
}

// SetProvidedIn is SetProvided for the config file in dir.
func SetProvidedIn(dir string, provided bool) error {
	c, err := load(dir, false)
	if err != nil {
		return err
	}
	c.DB.Provided = provided
	return SaveTo(filepath.Join(dir, FileName), c)
}

// SaveTo writes configuration to p with 0600 permissions.
func SaveTo(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
