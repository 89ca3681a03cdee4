// Package event defines the event model produced by log line parsers.
package event

import "time"

// Type identifies the kind of a parsed log line.
type Type string

// Built-in event types.
const (
	// Identity is a display name to stable identifier announcement.
	Identity Type = "identity"
	// ServerReady is the startup-completion banner. It closes every open session.
	ServerReady Type = "server_ready"
	// Join opens a session.
	Join Type = "join"
	// Quit closes a session.
	Quit Type = "quit"
	// Chat is a player chat message.
	Chat Type = "chat"
	// Advancement is an advancement or achievement announcement.
	Advancement Type = "advancement"
	// Death is a candidate death message. Exclusions are applied downstream.
	Death Type = "death"
)

// Types lists every built-in type in dispatch priority order.
var Types = []Type{Identity, ServerReady, Join, Quit, Chat, Advancement, Death}

// Valid reports whether t is a built-in type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Event is a single typed observation extracted from a log line.
//
// Timestamp is zero when the line carried no time token. Parsers only know
// the time of day; the ingest driver combines it with the file's date.
type Event struct {
	Type        Type      `json:"type"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
	PlayerName  string    `json:"player_name,omitempty"`
	PlayerID    string    `json:"player_id,omitempty"`
	Message     string    `json:"message,omitempty"`
	Advancement string    `json:"advancement,omitempty"`
	RawLine     string    `json:"raw_line,omitempty"`
}
