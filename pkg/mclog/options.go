package mclog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mclog/mclog-go/internal/decoder"
)

// IngestOption configures Ingest and IngestSource using the functional
// options pattern.
type IngestOption func(*ingestConfig)

// ingestConfig holds internal configuration for an ingest run.
type ingestConfig struct {
	logger          *slog.Logger
	parser          Parser
	exclusions      []Excluder
	location        *time.Location
	advancementYear int
	includeRawLine  bool
	encodings       []decoder.Encoding
	hook            EventHook
}

// defaultIngestConfig returns an ingestConfig with sensible defaults.
func defaultIngestConfig() *ingestConfig {
	return &ingestConfig{
		logger:     discardLogger,
		parser:     DefaultParser{},
		exclusions: []Excluder{DefaultExclusions()},
		location:   time.UTC,
	}
}

// applyIngestOptions applies functional options to an ingestConfig.
func applyIngestOptions(opts []IngestOption) *ingestConfig {
	cfg := defaultIngestConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option values.
func (c *ingestConfig) validate() error {
	if c.location == nil {
		return fmt.Errorf("location must not be nil")
	}
	if c.advancementYear < 0 {
		return fmt.Errorf("advancement year must be non-negative, got %d", c.advancementYear)
	}
	return nil
}

// excluder combines every configured exclusion list.
func (c *ingestConfig) excluder() Excluder {
	return anyExcluder(c.exclusions)
}

// WithLogger sets a logger for progress and warnings.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) IngestOption {
	return func(c *ingestConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithParser sets a custom parser for log lines.
// If p is nil, this option has no effect (the default parser remains active).
func WithParser(p Parser) IngestOption {
	return func(c *ingestConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithParsers tries the given parsers in order before falling back to the
// default parser. The first parser that matches a line wins.
func WithParsers(parsers ...Parser) IngestOption {
	return func(c *ingestConfig) {
		if len(parsers) > 0 {
			chain := append([]Parser{}, parsers...)
			chain = append(chain, DefaultParser{})
			c.parser = &ParserChain{Parsers: chain}
		}
	}
}

// WithExclusions adds death exclusion lists on top of the defaults.
func WithExclusions(ex ...Excluder) IngestOption {
	return func(c *ingestConfig) {
		c.exclusions = append(c.exclusions, ex...)
	}
}

// WithLocation sets the time zone log timestamps are interpreted in.
// Default: UTC.
func WithLocation(loc *time.Location) IngestOption {
	return func(c *ingestConfig) {
		c.location = loc
	}
}

// WithAdvancementYear keeps only record-file advancements completed in year.
// 0 (default) keeps every year.
func WithAdvancementYear(year int) IngestOption {
	return func(c *ingestConfig) {
		c.advancementYear = year
	}
}

// WithIncludeRawLine keeps the original line in Event.RawLine for events
// passed to an EventHook. Default: false.
func WithIncludeRawLine(include bool) IngestOption {
	return func(c *ingestConfig) {
		c.includeRawLine = include
	}
}

// WithEncodings overrides the decoder's encoding priority order.
func WithEncodings(encs ...decoder.Encoding) IngestOption {
	return func(c *ingestConfig) {
		c.encodings = encs
	}
}

// EventHook receives every event that survived filtering and attribution,
// with Timestamp and PlayerID filled in.
type EventHook func(source string, ev Event)

// WithEventHook registers fn to observe kept events as they are produced.
func WithEventHook(fn EventHook) IngestOption {
	return func(c *ingestConfig) {
		c.hook = fn
	}
}
