// Package config loads mclog settings from defaults, an optional YAML file
// and MCLOG_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mclog/mclog-go/internal/safefile"
)

// DefaultPath is read when Load is given no path and the file exists.
const DefaultPath = "mclog.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MCLOG_"

// maxConfigSize bounds the config file (256KB).
const maxConfigSize = 256 * 1024

// Output formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// Config is the resolved run configuration.
type Config struct {
	// Root holds one directory per source.
	Root string `yaml:"root" env:"ROOT"`

	// OutputDir receives the CSV tables.
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// Formats selects the writers: csv, sqlite.
	Formats []string `yaml:"formats" env:"FORMATS" envSeparator:","`

	// SQLitePath is the database file; relative paths are under OutputDir.
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`

	// Timezone is the IANA zone log clocks are read in.
	Timezone string `yaml:"timezone" env:"TIMEZONE"`

	// AdvancementYear keeps only record-file advancements from that year; 0 keeps all.
	AdvancementYear int `yaml:"advancement_year" env:"ADVANCEMENT_YEAR"`

	// RulesFile is an optional rule file with extra patterns and exclusions.
	RulesFile string `yaml:"rules_file" env:"RULES_FILE"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:       "files",
		OutputDir:  "data",
		Formats:    []string{FormatCSV},
		SQLitePath: "mclog.db",
		Timezone:   "UTC",
		LogLevel:   "info",
		LogFormat:  LogText,
	}
}

// Load resolves the configuration. An empty path reads DefaultPath when it
// exists; a non-empty path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := safefile.ReadAll(path, maxConfigSize)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate rejects unknown formats, zones and log settings.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root is required"))
	}
	if len(c.Formats) == 0 {
		errs = append(errs, errors.New("at least one output format is required"))
	}
	for _, f := range c.Formats {
		if f != FormatCSV && f != FormatSQLite {
			errs = append(errs, fmt.Errorf("unknown output format %q (want %s or %s)", f, FormatCSV, FormatSQLite))
		}
	}
	if c.HasFormat(FormatCSV) && strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("output_dir is required for csv output"))
	}
	if c.HasFormat(FormatSQLite) && strings.TrimSpace(c.SQLitePath) == "" {
		errs = append(errs, errors.New("sqlite_path is required for sqlite output"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.AdvancementYear < 0 {
		errs = append(errs, fmt.Errorf("advancement_year must be non-negative, got %d", c.AdvancementYear))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != LogText && c.LogFormat != LogJSON {
		errs = append(errs, fmt.Errorf("unknown log format %q (want %s or %s)", c.LogFormat, LogText, LogJSON))
	}
	return errors.Join(errs...)
}

// HasFormat reports whether format is selected.
func (c *Config) HasFormat(format string) bool {
	return slices.Contains(c.Formats, format)
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DatabasePath returns SQLitePath, joined to OutputDir when relative.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.SQLitePath) || c.OutputDir == "" {
		return c.SQLitePath
	}
	return filepath.Join(c.OutputDir, c.SQLitePath)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
