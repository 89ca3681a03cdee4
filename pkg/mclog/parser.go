package mclog

import (
	"context"
	"errors"
)

// ParseResult represents the result of parsing a log line.
type ParseResult struct {
	// Event is the parsed event. Only meaningful when Matched is true.
	Event Event

	// Matched indicates whether the parser recognized the line.
	Matched bool
}

// Parser is the interface for log line parsers.
// Implementations include DefaultParser (built-in server events) and
// pattern.RegexParser (user-defined YAML rules).
type Parser interface {
	// ParseLine parses a single log line.
	// Returns ParseResult with Matched=true if the line was recognized.
	// Returns error only for malformed lines, not for unrecognized ones.
	ParseLine(ctx context.Context, line string) (ParseResult, error)
}

// ParserFunc is an adapter to allow ordinary functions to be used as Parsers.
type ParserFunc func(ctx context.Context, line string) (ParseResult, error)

// ParseLine implements the Parser interface.
func (f ParserFunc) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	return f(ctx, line)
}

// ChainMode specifies how ParserChain handles parser errors.
type ChainMode int

const (
	// ChainFirst stops at the first parser that matches or fails (default).
	ChainFirst ChainMode = iota

	// ChainSkipErrors skips parsers that return errors and keeps looking for
	// a match. Errors are returned joined, alongside any match.
	ChainSkipErrors
)

// ParserChain tries parsers in order; the first match wins.
type ParserChain struct {
	Mode    ChainMode
	Parsers []Parser
}

// ParseLine implements the Parser interface.
func (c *ParserChain) ParseLine(ctx context.Context, line string) (ParseResult, error) {
	var errs []error

	for _, p := range c.Parsers {
		if err := ctx.Err(); err != nil {
			return ParseResult{}, err
		}

		// Skip nil parsers
		if p == nil {
			continue
		}

		result, err := p.ParseLine(ctx, line)
		if err != nil {
			if c.Mode == ChainSkipErrors {
				errs = append(errs, err)
				continue
			}
			return ParseResult{}, err
		}
		if result.Matched {
			return result, errors.Join(errs...)
		}
	}

	return ParseResult{}, errors.Join(errs...)
}
