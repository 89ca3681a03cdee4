package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mclog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("data", "mclog.db"), cfg.DatabasePath())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
root: /srv/minecraft
output_dir: out
formats: [csv, sqlite]
sqlite_path: /tmp/stats.db
timezone: Asia/Taipei
advancement_year: 2024
rules_file: rules.yaml
log_level: debug
log_format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Root:            "/srv/minecraft",
		OutputDir:       "out",
		Formats:         []string{FormatCSV, FormatSQLite},
		SQLitePath:      "/tmp/stats.db",
		Timezone:        "Asia/Taipei",
		AdvancementYear: 2024,
		RulesFile:       "rules.yaml",
		LogLevel:        "debug",
		LogFormat:       LogJSON,
	}, cfg)
	assert.Equal(t, "/tmp/stats.db", cfg.DatabasePath())
	assert.True(t, cfg.HasFormat(FormatSQLite))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "root: logs\n"))
	require.NoError(t, err)
	assert.Equal(t, "logs", cfg.Root)
	assert.Equal(t, "data", cfg.OutputDir)
	assert.Equal(t, []string{FormatCSV}, cfg.Formats)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "root: from-file\nformats: [csv]\n")
	t.Setenv("MCLOG_ROOT", "from-env")
	t.Setenv("MCLOG_FORMATS", "csv,sqlite")
	t.Setenv("MCLOG_ADVANCEMENT_YEAR", "2023")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Root)
	assert.Equal(t, []string{FormatCSV, FormatSQLite}, cfg.Formats)
	assert.Equal(t, 2023, cfg.AdvancementYear)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("MCLOG_ADVANCEMENT_YEAR", "soon")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown_field", "roots: x\n", "field roots not found"},
		{"unknown_format", "formats: [parquet]\n", `unknown output format "parquet"`},
		{"bad_timezone", "timezone: Mars/Olympus\n", "invalid timezone"},
		{"bad_level", "log_level: loud\n", "invalid log level"},
		{"bad_log_format", "log_format: xml\n", "unknown log format"},
		{"negative_year", "advancement_year: -1\n", "advancement_year"},
		{"no_formats", "formats: []\n", "at least one output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{Formats: []string{"xml"}, LogLevel: "loud", LogFormat: "xml", Timezone: "UTC"}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"root is required", "unknown output format", "invalid log level", "unknown log format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
