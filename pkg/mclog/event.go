package mclog

import "github.com/mclog/mclog-go/pkg/mclog/event"

// Event is a typed observation extracted from a log line.
type Event = event.Event

// EventType identifies the kind of an Event.
type EventType = event.Type

// Event types, re-exported for callers that only import mclog.
const (
	EventIdentity    = event.Identity
	EventServerReady = event.ServerReady
	EventJoin        = event.Join
	EventQuit        = event.Quit
	EventChat        = event.Chat
	EventAdvancement = event.Advancement
	EventDeath       = event.Death
)
