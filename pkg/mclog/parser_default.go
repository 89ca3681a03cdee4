package mclog

import (
	"context"

	"github.com/mclog/mclog-go/internal/parser"
)

// DefaultParser recognizes the vanilla server log lines: identity mappings,
// the startup banner, joins, quits, chat, advancements and death candidates.
type DefaultParser struct{}

// ParseLine implements the Parser interface.
func (DefaultParser) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	ev, err := parser.Parse(line)
	if err != nil {
		return ParseResult{}, err
	}
	if ev == nil {
		return ParseResult{Matched: false}, nil
	}
	return ParseResult{Event: *ev, Matched: true}, nil
}

// Ensure DefaultParser implements Parser.
var _ Parser = DefaultParser{}
