package pattern

import (
	"context"
	"fmt"
	"regexp"

	"github.com/mclog/mclog-go/internal/parser"
	"github.com/mclog/mclog-go/pkg/mclog"
	"github.com/mclog/mclog-go/pkg/mclog/event"
)

// Named capture groups that fill event fields.
const (
	GroupPlayer      = "player"
	GroupUUID        = "uuid"
	GroupMessage     = "message"
	GroupAdvancement = "advancement"
)

// RegexParser is a mclog.Parser built from the patterns of a rule file.
// Patterns are tried in file order and the first match wins.
//
// RegexParser is safe for concurrent use by multiple goroutines.
type RegexParser struct {
	patterns []*compiledPattern
}

type compiledPattern struct {
	id        string
	eventType event.Type
	regex     *regexp.Regexp

	// Submatch indexes of the known groups, -1 when absent.
	player, uuid, message, advancement int
}

// NewRegexParser compiles the patterns of rf.
//
// Returns a *PatternError for an invalid regex, or for a pattern that lacks
// the groups its event type needs: player for every type except
// server_ready, and uuid as well for identity.
func NewRegexParser(rf *RuleFile) (*RegexParser, error) {
	if rf == nil {
		return nil, fmt.Errorf("rule file is nil")
	}

	patterns := make([]*compiledPattern, 0, len(rf.Patterns))
	for i, p := range rf.Patterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, &PatternError{
				Section: "patterns",
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
				Cause:   err,
			}
		}

		cp := &compiledPattern{
			id:          p.ID,
			eventType:   event.Type(p.EventType),
			regex:       re,
			player:      re.SubexpIndex(GroupPlayer),
			uuid:        re.SubexpIndex(GroupUUID),
			message:     re.SubexpIndex(GroupMessage),
			advancement: re.SubexpIndex(GroupAdvancement),
		}
		if missing := cp.missingGroups(); len(missing) > 0 {
			return nil, &PatternError{
				Section: "patterns",
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("%s pattern needs named groups %v", cp.eventType, missing),
			}
		}
		patterns = append(patterns, cp)
	}

	return &RegexParser{patterns: patterns}, nil
}

// NewRegexParserFromFile loads a rule file and builds a RegexParser from it.
func NewRegexParserFromFile(path string) (*RegexParser, error) {
	rf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewRegexParser(rf)
}

func (cp *compiledPattern) missingGroups() []string {
	var missing []string
	if cp.eventType != event.ServerReady && cp.player < 0 {
		missing = append(missing, GroupPlayer)
	}
	if cp.eventType == event.Identity && cp.uuid < 0 {
		missing = append(missing, GroupUUID)
	}
	return missing
}

// Len returns the number of compiled patterns.
func (p *RegexParser) Len() int {
	return len(p.patterns)
}

// IDs returns the pattern ids in match order.
func (p *RegexParser) IDs() []string {
	ids := make([]string, len(p.patterns))
	for i, cp := range p.patterns {
		ids[i] = cp.id
	}
	return ids
}

// ParseLine implements the mclog.Parser interface.
// The event carries no timestamp; the ingest fills it from the line's clock.
func (p *RegexParser) ParseLine(ctx context.Context, line string) (mclog.ParseResult, error) {
	for _, cp := range p.patterns {
		m := cp.regex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		ev := event.Event{
			Type:        cp.eventType,
			PlayerName:  group(m, cp.player),
			Message:     group(m, cp.message),
			Advancement: group(m, cp.advancement),
		}
		if raw := group(m, cp.uuid); raw != "" {
			id, err := parser.NormalizeID(raw)
			if err != nil {
				return mclog.ParseResult{}, fmt.Errorf("pattern %q: %w", cp.id, err)
			}
			ev.PlayerID = id
		}
		return mclog.ParseResult{Event: ev, Matched: true}, nil
	}
	return mclog.ParseResult{Matched: false}, nil
}

func group(m []string, i int) string {
	if i < 0 || i >= len(m) {
		return ""
	}
	return m[i]
}

// Ensure RegexParser implements mclog.Parser.
var _ mclog.Parser = (*RegexParser)(nil)
