package mclog

import (
	"sort"
	"time"
)

// Death is an attributed death. By holds the killer's stable id when the
// message names a mapped player, otherwise the raw death message.
type Death struct {
	Server    string
	ID        string
	By        string
	Timestamp time.Time
}

// Message is an attributed chat message.
type Message struct {
	Server    string
	ID        string
	Content   string
	Timestamp time.Time
}

// Advancement is a completed advancement, from the log or from the
// per-player advancement records.
type Advancement struct {
	Server    string
	ID        string
	Name      string
	Timestamp time.Time
}

// Server is the observed lifetime of a source: the earliest and latest
// timestamps on any kept line. Both are zero for a source with no
// timestamped lines.
type Server struct {
	Name    string
	Created time.Time
	Closed  time.Time
}

// PlayerName is the latest display name of a stable id.
type PlayerName struct {
	ID   string
	Name string
}

// Tables collects every record produced by a run.
type Tables struct {
	Sessions         []Session
	Deaths           []Death
	Messages         []Message
	Advancements     []Advancement
	Servers          []Server
	NameObservations []NameObservation
}

// Append adds other's rows after t's.
func (t *Tables) Append(other *Tables) {
	if other == nil {
		return
	}
	t.Sessions = append(t.Sessions, other.Sessions...)
	t.Deaths = append(t.Deaths, other.Deaths...)
	t.Messages = append(t.Messages, other.Messages...)
	t.Advancements = append(t.Advancements, other.Advancements...)
	t.Servers = append(t.Servers, other.Servers...)
	t.NameObservations = append(t.NameObservations, other.NameObservations...)
}

// PlayerNames returns the latest display name per stable id, sorted by id.
func (t *Tables) PlayerNames() []PlayerName {
	latest := LatestNames(t.NameObservations)
	out := make([]PlayerName, 0, len(latest))
	for id, name := range latest {
		out = append(out, PlayerName{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
