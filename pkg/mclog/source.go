package mclog

import (
	"context"
	"time"

	"github.com/mclog/mclog-go/internal/parser"
)

// sourceContext is the state of one source while its logs are processed.
// A new one is created per source.
type sourceContext struct {
	cfg      *ingestConfig
	name     string
	excluder Excluder

	resolver  *Resolver
	relevance *Relevance
	tracker   *Tracker

	// logAdvancements is false when the source has advancement records,
	// which then replace advancements announced in the log.
	logAdvancements bool

	tables       Tables
	first, last  time.Time
	linesKept    int
	linesDropped int
}

func newSourceContext(name string, cfg *ingestConfig, logAdvancements bool) *sourceContext {
	return &sourceContext{
		cfg:             cfg,
		name:            name,
		excluder:        cfg.excluder(),
		resolver:        NewResolver(),
		relevance:       NewRelevance(),
		tracker:         NewTracker(name),
		logAdvancements: logAdvancements,
	}
}

// stamp combines the file's date with the line's time of day.
func stamp(date time.Time, clock time.Duration) time.Time {
	h := int(clock / time.Hour)
	m := int(clock % time.Hour / time.Minute)
	s := int(clock % time.Minute / time.Second)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, date.Location())
}

// processLine runs one decoded line of a file dated date through the
// classifier and, when kept, the identity, session and attribution steps.
// Only a cancelled context is returned as an error; lines the parser
// rejects are logged and dropped.
func (s *sourceContext) processLine(ctx context.Context, date time.Time, line string) error {
	res, err := s.cfg.parser.ParseLine(ctx, line)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.cfg.logger.Debug("skipping malformed line", "source", s.name, "error", err)
		res = ParseResult{}
	}

	var ev *Event
	if res.Matched {
		ev = &res.Event
	}

	class := s.relevance.Classify(line, ev)
	if class == ClassIrrelevant {
		s.linesDropped++
		return nil
	}
	s.linesKept++

	var ts time.Time
	if clock, ok := parser.Clock(line); ok {
		ts = stamp(date, clock)
		s.observe(ts)
	}

	if ev == nil {
		return nil
	}

	if ev.Type == EventIdentity {
		s.resolver.RecordMapping(ev.PlayerName, ev.PlayerID, ts)
		ev.Timestamp = ts
		s.emit(line, ev)
		return nil
	}
	if ts.IsZero() {
		return nil
	}
	ev.Timestamp = ts
	if ev.PlayerName != "" {
		ev.PlayerID = s.resolver.Resolve(ev.PlayerName)
	}

	switch ev.Type {
	case EventServerReady:
		s.tables.Sessions = append(s.tables.Sessions, s.tracker.CloseAll(ts)...)
	case EventJoin:
		s.tracker.Join(ev.PlayerID, ts)
	case EventQuit:
		sess, ok := s.tracker.Quit(ev.PlayerID, ts)
		if !ok {
			return nil
		}
		s.tables.Sessions = append(s.tables.Sessions, sess)
	case EventChat:
		if !s.tracker.IsOpen(ev.PlayerID) {
			return nil
		}
		s.tables.Messages = append(s.tables.Messages, Message{
			Server:    s.name,
			ID:        ev.PlayerID,
			Content:   ev.Message,
			Timestamp: ts,
		})
	case EventAdvancement:
		if !s.logAdvancements || !s.tracker.IsOpen(ev.PlayerID) {
			return nil
		}
		s.tables.Advancements = append(s.tables.Advancements, Advancement{
			Server:    s.name,
			ID:        ev.PlayerID,
			Name:      ev.Advancement,
			Timestamp: ts,
		})
	case EventDeath:
		if s.excluder.Excludes(ev.Message) || !s.tracker.IsOpen(ev.PlayerID) {
			return nil
		}
		s.tables.Deaths = append(s.tables.Deaths, Death{
			Server:    s.name,
			ID:        ev.PlayerID,
			By:        s.killedBy(ev.Message),
			Timestamp: ts,
		})
	default:
		return nil
	}

	s.emit(line, ev)
	return nil
}

// killedBy returns the killer's id when the message names a mapped player,
// otherwise the message itself.
func (s *sourceContext) killedBy(message string) string {
	if killer, ok := parser.Killer(message); ok {
		if id, ok := s.resolver.Lookup(killer); ok {
			return id
		}
	}
	return message
}

func (s *sourceContext) observe(ts time.Time) {
	if s.first.IsZero() || ts.Before(s.first) {
		s.first = ts
	}
	if ts.After(s.last) {
		s.last = ts
	}
}

func (s *sourceContext) emit(line string, ev *Event) {
	if s.cfg.hook == nil {
		return
	}
	out := *ev
	if s.cfg.includeRawLine {
		out.RawLine = line
	}
	s.cfg.hook(s.name, out)
}

// finish closes sessions still open at the last observed timestamp and
// returns the source's tables.
func (s *sourceContext) finish() *Tables {
	if s.tracker.OpenCount() > 0 {
		s.tables.Sessions = append(s.tables.Sessions, s.tracker.CloseAll(s.last)...)
	}
	s.tables.Servers = []Server{{Name: s.name, Created: s.first, Closed: s.last}}
	s.tables.NameObservations = s.resolver.Observations()
	return &s.tables
}
