package mclog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/mclog/mclog-go/internal/decoder"
	"github.com/mclog/mclog-go/internal/logfinder"
	"github.com/mclog/mclog-go/internal/parser"
)

// Ingest processes every source directory under root, in name order, and
// returns the combined tables.
//
// Returns ErrRootNotFound if root is missing and ErrNoSources if it holds
// no source directories. Unreadable files or logs directories inside a
// source are logged and skipped. The context is checked between files and between lines.
func Ingest(ctx context.Context, root string, opts ...IngestOption) (*Tables, error) {
	cfg := applyIngestOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sources, err := logfinder.FindSources(root)
	if err != nil {
		return nil, err
	}

	all := &Tables{}
	for _, src := range sources {
		t, err := ingestSource(ctx, src.Dir, src.Name, cfg)
		if err != nil {
			return nil, err
		}
		all.Append(t)
	}
	return all, nil
}

// IngestSource processes a single source directory. name is used as the
// server name in every record; when empty the directory's base name is used.
func IngestSource(ctx context.Context, dir, name string, opts ...IngestOption) (*Tables, error) {
	cfg := applyIngestOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = filepath.Base(dir)
	}
	return ingestSource(ctx, dir, name, cfg)
}

func ingestSource(ctx context.Context, dir, name string, cfg *ingestConfig) (*Tables, error) {
	log := cfg.logger.With("source", name)

	records, present, err := readAdvancements(dir, name, cfg)
	if err != nil {
		log.Warn("advancement records unavailable", "error", err)
	}

	files, err := logfinder.LogFiles(dir, cfg.location, cfg.firstStamp)
	if err != nil {
		// An unlistable logs directory leaves the source with no events.
		log.Warn("skipping unreadable logs directory", "error", &FileError{Op: "list", Path: dir, Err: err})
		files = nil
	}
	if len(files) == 0 {
		log.Info("no log files")
	}

	sc := newSourceContext(name, cfg, !present)
	for _, lf := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sc.processFile(ctx, lf); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("skipping log file", "file", lf.Name, "error", err)
		}
	}

	t := sc.finish()
	t.Advancements = append(t.Advancements, records...)
	log.Info("source processed",
		"files", len(files),
		"lines_kept", sc.linesKept,
		"lines_dropped", sc.linesDropped,
		"sessions", len(t.Sessions),
		"deaths", len(t.Deaths),
		"messages", len(t.Messages),
		"advancements", len(t.Advancements),
	)
	return t, nil
}

// processFile feeds every line of lf to the source context. Lines already
// processed stay processed when a read error ends the file early.
func (s *sourceContext) processFile(ctx context.Context, lf logfinder.LogFile) error {
	f, err := decoder.Open(lf.Path, s.cfg.encodings...)
	if err != nil {
		return err
	}
	s.cfg.logger.Debug("reading log file", "source", s.name, "file", lf.Name, "encoding", f.Encoding().Name)

	for line, err := range f.Lines() {
		if err != nil {
			return err
		}
		if err := s.processLine(ctx, lf.Date, line); err != nil {
			return err
		}
	}
	if n := f.SkippedLines(); n > 0 {
		s.cfg.logger.Debug("skipped oversized lines", "source", s.name, "file", lf.Name, "lines", n, "max_bytes", decoder.MaxLineBytes)
	}
	return nil
}

// firstStamp returns the time of day of the first timestamped line of a log
// file, for same-day ordering.
func (c *ingestConfig) firstStamp(path string) (time.Duration, bool) {
	var clock time.Duration
	_, ok, err := decoder.FirstMatch(path, func(line string) bool {
		d, ok := parser.Clock(line)
		clock = d
		return ok
	}, c.encodings...)
	if err != nil {
		c.logger.Debug("no first timestamp", "path", path, "error", err)
		return 0, false
	}
	return clock, ok
}
