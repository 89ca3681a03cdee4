package mclog

import "time"

// Session is one contiguous on-line interval of a player on a source.
type Session struct {
	Server   string
	ID       string
	Start    time.Time
	Duration time.Duration
}

// openSession is the tracker's per-player state while a session is open.
type openSession struct {
	id    string
	start time.Time
}

// Tracker is the per-source session state machine.
//
// Each id is either absent or open. A join while open moves the start time
// forward to the new join: servers log a login line and a "joined the game"
// line for the same connection, and a reconnect after a missed quit line
// should not be counted as one long session.
type Tracker struct {
	server string
	open   []openSession
	index  map[string]int
}

// NewTracker returns a tracker for the given source name.
func NewTracker(server string) *Tracker {
	return &Tracker{server: server, index: make(map[string]int)}
}

// Join opens a session for id at ts, or restarts the open one.
func (t *Tracker) Join(id string, ts time.Time) {
	if i, ok := t.index[id]; ok {
		t.open[i].start = ts
		return
	}
	t.index[id] = len(t.open)
	t.open = append(t.open, openSession{id: id, start: ts})
}

// Quit closes id's session at ts. It reports false when id had no open
// session (a duplicate or late quit line).
func (t *Tracker) Quit(id string, ts time.Time) (Session, bool) {
	i, ok := t.index[id]
	if !ok {
		return Session{}, false
	}
	s := t.open[i]
	t.remove(i)
	return t.closed(s, ts), true
}

// IsOpen reports whether id currently has an open session.
func (t *Tracker) IsOpen(id string) bool {
	_, ok := t.index[id]
	return ok
}

// OpenCount returns the number of open sessions.
func (t *Tracker) OpenCount() int {
	return len(t.open)
}

// CloseAll force-closes every open session at ts, in join order, and
// leaves the tracker empty.
func (t *Tracker) CloseAll(ts time.Time) []Session {
	if len(t.open) == 0 {
		return nil
	}
	out := make([]Session, 0, len(t.open))
	for _, s := range t.open {
		out = append(out, t.closed(s, ts))
	}
	t.open = t.open[:0]
	clear(t.index)
	return out
}

// closed builds the finished session. A close time before the start (clock
// skew, midnight roll-over inside one file) yields a zero duration.
func (t *Tracker) closed(s openSession, end time.Time) Session {
	d := end.Sub(s.start)
	if d < 0 {
		d = 0
	}
	return Session{Server: t.server, ID: s.id, Start: s.start, Duration: d}
}

func (t *Tracker) remove(i int) {
	delete(t.index, t.open[i].id)
	copy(t.open[i:], t.open[i+1:])
	t.open = t.open[:len(t.open)-1]
	for j := i; j < len(t.open); j++ {
		t.index[t.open[j].id] = j
	}
}
