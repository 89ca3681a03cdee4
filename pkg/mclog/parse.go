package mclog

import (
	"time"

	"github.com/mclog/mclog-go/internal/parser"
)

// ParseLine parses a single server log line into an Event.
// The event's Timestamp is left zero; use LineClock for the time of day.
//
// Return values:
//   - (*Event, nil): Successfully parsed event
//   - (nil, nil): Line doesn't match any known event pattern (not an error)
//   - (nil, error): Line partially matches but is malformed
//
// Example:
//
//	ev, err := mclog.ParseLine("[10:00:00] [Server thread/INFO]: Alice left the game")
//	if err == nil && ev != nil {
//	    fmt.Println(ev.Type, ev.PlayerName) // quit Alice
//	}
func ParseLine(line string) (*Event, error) {
	return parser.Parse(line)
}

// LineClock returns the time of day carried by the line's leading bracket token.
func LineClock(line string) (time.Duration, bool) {
	return parser.Clock(line)
}
