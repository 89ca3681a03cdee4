// Package mclog extracts gameplay records from rotated Minecraft server logs.
//
// A data root holds one directory per server (a "source"):
//
//	root/
//	  survival/
//	    logs/2024-01-15-1.log.gz
//	    advancements/<uuid>.json
//
// Ingest walks every source in name order and, for each one, decodes its
// log files in chronological order, keeps the lines that concern known
// players, and turns them into sessions, deaths, chat messages and
// advancements. Per-source state (name mappings, the relevance set, open
// sessions) never leaks from one source into the next.
//
// # Basic Usage
//
//	tables, err := mclog.Ingest(ctx, "files",
//	    mclog.WithLocation(time.UTC),
//	    mclog.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range tables.Sessions {
//	    fmt.Println(s.Server, s.ID, s.Duration)
//	}
//
// # Custom Lines
//
// Servers running plugins often log joins or chat differently. Extra
// recognizers can be supplied with WithParsers; they are tried before the
// built-in DefaultParser. The pattern subpackage builds such parsers from a
// YAML rule file.
//
// # Attribution
//
// Display names are mapped to stable ids from the server's login lines.
// Names are resolved at the time an event is seen; names that were never
// mapped are kept as they are. Chat, deaths and log advancements are only
// recorded while the acting player has an open session.
package mclog

import (
	"io"
	"log/slog"
)

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
