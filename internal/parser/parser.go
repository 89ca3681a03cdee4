// Package parser provides server log line parsing functionality.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mclog/mclog-go/pkg/mclog/event"
)

// matcher tries to build an event from a line. It returns (nil, nil) when the
// line is not its shape.
type matcher func(line string) (*event.Event, error)

// matchers are evaluated in order; the first non-nil result wins.
var matchers = []matcher{
	parseServerReady,
	parseIdentity,
	parseJoin,
	parseQuit,
	parseChat,
	parseAdvancement,
	parseDeath,
}

// Parse parses a server log line into an Event.
// The returned event carries no timestamp; see Clock.
//
// Returns:
//   - (*Event, nil): Successfully parsed
//   - (nil, nil): Not a recognized event pattern
//   - (nil, error): Malformed line (reserved; the built-in patterns never fail)
func Parse(line string) (*event.Event, error) {
	// Trim trailing CR for Windows CRLF compatibility
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, nil
	}

	for _, m := range matchers {
		ev, err := m(line)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			return ev, nil
		}
	}
	return nil, nil
}

// Clock extracts the time of day from the leading bracket token of a line.
func Clock(line string) (time.Duration, bool) {
	match := clockPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	s, _ := strconv.Atoi(match[3])
	if h > 23 || m > 59 || s > 59 {
		return 0, false
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, true
}

// Killer extracts the killer's display name from a death message.
func Killer(message string) (string, bool) {
	match := killerPattern.FindStringSubmatch(message)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// NormalizeID validates a stable identifier and returns its canonical form.
func NormalizeID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid player uuid %q: %w", raw, err)
	}
	return id.String(), nil
}

func parseServerReady(line string) (*event.Event, error) {
	if !serverReadyPattern.MatchString(line) {
		return nil, nil
	}
	return &event.Event{Type: event.ServerReady}, nil
}

func parseIdentity(line string) (*event.Event, error) {
	match := identityPattern.FindStringSubmatch(line)
	if match == nil {
		match = identityAltPattern.FindStringSubmatch(line)
	}
	if match == nil {
		return nil, nil
	}

	// Ids that are not canonical UUIDs are kept as logged so the mapping
	// still registers.
	id, err := NormalizeID(match[2])
	if err != nil {
		id = match[2]
	}
	return &event.Event{
		Type:       event.Identity,
		PlayerName: match[1],
		PlayerID:   id,
	}, nil
}

func parseJoin(line string) (*event.Event, error) {
	match := joinPattern.FindStringSubmatch(line)
	if match == nil {
		match = joinAltPattern.FindStringSubmatch(line)
	}
	if match == nil {
		return nil, nil
	}
	return &event.Event{Type: event.Join, PlayerName: match[1]}, nil
}

func parseQuit(line string) (*event.Event, error) {
	if match := quitPattern.FindStringSubmatch(line); match != nil {
		return &event.Event{
			Type:       event.Quit,
			PlayerName: match[1],
			Message:    strings.TrimSpace(match[2]),
		}, nil
	}
	if match := quitAltPattern.FindStringSubmatch(line); match != nil {
		return &event.Event{Type: event.Quit, PlayerName: match[1]}, nil
	}
	return nil, nil
}

func parseChat(line string) (*event.Event, error) {
	match := chatPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}
	return &event.Event{
		Type:       event.Chat,
		PlayerName: match[1],
		Message:    match[2],
	}, nil
}

func parseAdvancement(line string) (*event.Event, error) {
	for _, p := range advancementPatterns {
		if match := p.FindStringSubmatch(line); match != nil {
			return &event.Event{
				Type:        event.Advancement,
				PlayerName:  match[1],
				Advancement: match[2],
			}, nil
		}
	}
	return nil, nil
}

func parseDeath(line string) (*event.Event, error) {
	match := deathPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}
	return &event.Event{
		Type:       event.Death,
		PlayerName: match[1],
		Message:    match[2],
	}, nil
}
