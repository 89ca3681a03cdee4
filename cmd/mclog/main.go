// Command mclog builds playtime, death, chat and advancement tables from
// Minecraft server logs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mclog/mclog-go/internal/config"
	"github.com/mclog/mclog-go/internal/output"
	"github.com/mclog/mclog-go/pkg/mclog"
)

var (
	// global flags
	configPath string
	verbose    bool
	rootDir    string

	// root command flags
	outputDir string
)

var rootCmd = &cobra.Command{
	Use:   "mclog",
	Short: "Build player activity tables from Minecraft server logs",
	Long: `Read the rotated logs of one or more Minecraft servers and write
sessions, deaths, chat messages, advancements, servers and player names as
CSV files and/or a SQLite database.

The data root holds one directory per server:

  files/
    survival/
      logs/2024-01-15-1.log.gz
      advancements/<uuid>.json

Settings come from mclog.yaml (or --config), then MCLOG_* environment
variables, then flags.

Examples:
  # Ingest ./files into ./data
  mclog

  # Different root and output directory
  mclog --root /srv/mc/backups --output-dir out

  # Print statistics instead of writing tables
  mclog stats --top 5`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runIngest,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default: "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "",
		"Data root with one directory per server (overrides config)")

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"Directory for output tables (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file and environment, then applies flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if rootDir != "" {
		cfg.Root = rootDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the slog logger selected by the config.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == config.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// ingestOptions translates the config into ingest options.
func ingestOptions(cfg *config.Config, logger *slog.Logger) ([]mclog.IngestOption, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	opts := []mclog.IngestOption{
		mclog.WithLogger(logger),
		mclog.WithLocation(loc),
		mclog.WithAdvancementYear(cfg.AdvancementYear),
	}

	ruleOpts, err := loadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	return append(opts, ruleOpts...), nil
}

// newWriter returns the writers for the configured formats.
func newWriter(cfg *config.Config) (output.Writer, error) {
	var w output.Multi
	if cfg.HasFormat(config.FormatCSV) {
		w = append(w, &output.CSVWriter{Dir: cfg.OutputDir})
	}
	if cfg.HasFormat(config.FormatSQLite) {
		path := cfg.DatabasePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		w = append(w, &output.SQLiteWriter{Path: path})
	}
	return w, nil
}

// ingest runs the configured ingest with extra options appended.
func ingest(ctx context.Context, cmd *cobra.Command, extra ...mclog.IngestOption) (*config.Config, *mclog.Tables, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	opts, err := ingestOptions(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	tables, err := mclog.Ingest(ctx, cfg.Root, append(opts, extra...)...)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, tables, logger, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, tables, logger, err := ingest(ctx, cmd)
	if err != nil {
		return err
	}

	w, err := newWriter(cfg)
	if err != nil {
		return err
	}
	if err := w.Write(ctx, tables); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("wrote tables",
		"formats", cfg.Formats,
		"output_dir", cfg.OutputDir,
		"servers", len(tables.Servers),
		"sessions", len(tables.Sessions),
		"deaths", len(tables.Deaths),
		"messages", len(tables.Messages),
		"advancements", len(tables.Advancements))
	return nil
}
