// Package stats aggregates ingest tables into rankings and totals.
package stats

import (
	"cmp"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mclog/mclog-go/pkg/mclog"
)

// MinRateHours is the play time a player or server needs before per-hour
// rates are ranked.
const MinRateHours = 1.0

// Totals are run-wide counts.
type Totals struct {
	PlayHours     float64 `json:"play_hours"`
	PlayDays      float64 `json:"play_days"`
	Deaths        int     `json:"deaths"`
	Messages      int     `json:"messages"`
	Advancements  int     `json:"advancements"`
	ActivePlayers int     `json:"active_players"`
}

// PlayerCount is a per-player count.
type PlayerCount struct {
	Player string `json:"player"`
	Count  int    `json:"count"`
}

// PlayerHours is a per-player play time.
type PlayerHours struct {
	Player string  `json:"player"`
	Hours  float64 `json:"hours"`
}

// Rate is a count per hour of play time, for a player or a server.
type Rate struct {
	Name    string  `json:"name"`
	PerHour float64 `json:"per_hour"`
	Total   int     `json:"total"`
	Hours   float64 `json:"hours"`
}

// ServerCount is a per-server count.
type ServerCount struct {
	Server string `json:"server"`
	Count  int    `json:"count"`
}

// ServerSpan is a server's observed lifetime.
type ServerSpan struct {
	Server  string    `json:"server"`
	Created time.Time `json:"created,omitzero"`
	Closed  time.Time `json:"closed,omitzero"`
}

// Peak is the highest number of players online at once on a server.
type Peak struct {
	Server  string    `json:"server"`
	Players int       `json:"players"`
	At      time.Time `json:"at"`
	Names   []string  `json:"names"`
}

// HourHours is the play time that fell within one hour of the day.
type HourHours struct {
	Hour  int     `json:"hour"`
	Hours float64 `json:"hours"`
}

// WeekdayHours is the play time that fell on one day of the week.
type WeekdayHours struct {
	Weekday string  `json:"weekday"`
	Hours   float64 `json:"hours"`
}

// DayHours is the play time that fell on one calendar date.
type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// ServerHours is a server's total play time.
type ServerHours struct {
	Server string  `json:"server"`
	Hours  float64 `json:"hours"`
	Days   float64 `json:"days"`
}

// namer maps stable ids to display names. Ids without a recorded name are
// unmapped display names already and are shown as is.
type namer map[string]string

func newNamer(t *mclog.Tables) namer {
	n := make(namer)
	for _, p := range t.PlayerNames() {
		n[p.ID] = p.Name
	}
	return n
}

func (n namer) name(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return id
}

// round rounds to the given number of decimals.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func hours(d time.Duration) float64 {
	return d.Hours()
}

// IsPlayerID reports whether by holds a stable id, i.e. the death was a
// kill by a known player.
func IsPlayerID(by string) bool {
	return len(by) == 36 && uuid.Validate(by) == nil
}

// ComputeTotals returns run-wide totals.
func ComputeTotals(t *mclog.Tables) Totals {
	var total time.Duration
	active := make(map[string]struct{})
	for _, s := range t.Sessions {
		total += s.Duration
		active[s.ID] = struct{}{}
	}
	h := hours(total)
	return Totals{
		PlayHours:     round(h, 1),
		PlayDays:      round(h/24, 1),
		Deaths:        len(t.Deaths),
		Messages:      len(t.Messages),
		Advancements:  len(t.Advancements),
		ActivePlayers: len(active),
	}
}

// ActivePlayers returns the names of everyone with at least one session,
// sorted by name.
func ActivePlayers(t *mclog.Tables) []string {
	n := newNamer(t)
	seen := make(map[string]struct{})
	var names []string
	for _, s := range t.Sessions {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		names = append(names, n.name(s.ID))
	}
	sort.Strings(names)
	return names
}

// ServerTimeline returns server lifetimes ordered by creation; servers with
// no timestamps come last.
func ServerTimeline(t *mclog.Tables) []ServerSpan {
	out := make([]ServerSpan, len(t.Servers))
	for i, s := range t.Servers {
		out[i] = ServerSpan{Server: s.Name, Created: s.Created, Closed: s.Closed}
	}
	slices.SortStableFunc(out, func(a, b ServerSpan) int {
		switch {
		case a.Created.IsZero() != b.Created.IsZero():
			if a.Created.IsZero() {
				return 1
			}
			return -1
		case !a.Created.Equal(b.Created):
			return a.Created.Compare(b.Created)
		}
		return cmp.Compare(a.Server, b.Server)
	})
	return out
}

// PlaytimeRanking ranks players by total play time.
func PlaytimeRanking(t *mclog.Tables) []PlayerHours {
	n := newNamer(t)
	total := make(map[string]time.Duration)
	for _, s := range t.Sessions {
		total[s.ID] += s.Duration
	}
	out := make([]PlayerHours, 0, len(total))
	for id, d := range total {
		out = append(out, PlayerHours{Player: n.name(id), Hours: round(hours(d), 1)})
	}
	slices.SortFunc(out, func(a, b PlayerHours) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})
	return out
}

// VarietyRanking ranks players by the number of servers they played on.
func VarietyRanking(t *mclog.Tables) []PlayerCount {
	servers := make(map[string]map[string]struct{})
	for _, s := range t.Sessions {
		if servers[s.ID] == nil {
			servers[s.ID] = make(map[string]struct{})
		}
		servers[s.ID][s.Server] = struct{}{}
	}
	counts := make(map[string]int, len(servers))
	for id, set := range servers {
		counts[id] = len(set)
	}
	return rankPlayers(newNamer(t), counts)
}

// DeathRanking ranks players by deaths.
func DeathRanking(t *mclog.Tables) []PlayerCount {
	counts := make(map[string]int)
	for _, d := range t.Deaths {
		counts[d.ID]++
	}
	return rankPlayers(newNamer(t), counts)
}

// PvPRanking ranks players by kills of other known players.
func PvPRanking(t *mclog.Tables) []PlayerCount {
	counts := make(map[string]int)
	for _, d := range t.Deaths {
		if IsPlayerID(d.By) {
			counts[d.By]++
		}
	}
	return rankPlayers(newNamer(t), counts)
}

// ChatRanking ranks players by messages sent.
func ChatRanking(t *mclog.Tables) []PlayerCount {
	counts := make(map[string]int)
	for _, m := range t.Messages {
		counts[m.ID]++
	}
	return rankPlayers(newNamer(t), counts)
}

// AdvancementRanking ranks players by advancements completed.
func AdvancementRanking(t *mclog.Tables) []PlayerCount {
	counts := make(map[string]int)
	for _, a := range t.Advancements {
		counts[a.ID]++
	}
	return rankPlayers(newNamer(t), counts)
}

// DeathRateRanking ranks players with at least MinRateHours of play by
// deaths per hour.
func DeathRateRanking(t *mclog.Tables) []Rate {
	counts := make(map[string]int)
	for _, d := range t.Deaths {
		counts[d.ID]++
	}
	return rates(counts, playerTime(t), newNamer(t).name)
}

// ChatRateRanking ranks players with at least MinRateHours of play by
// messages per hour.
func ChatRateRanking(t *mclog.Tables) []Rate {
	counts := make(map[string]int)
	for _, m := range t.Messages {
		counts[m.ID]++
	}
	return rates(counts, playerTime(t), newNamer(t).name)
}

// DangerousServers ranks servers with at least MinRateHours of play by
// deaths per hour.
func DangerousServers(t *mclog.Tables) []Rate {
	counts := make(map[string]int)
	for _, d := range t.Deaths {
		counts[d.Server]++
	}
	return rates(counts, serverTime(t), func(s string) string { return s })
}

// ServerChatRanking ranks servers by messages.
func ServerChatRanking(t *mclog.Tables) []ServerCount {
	counts := make(map[string]int)
	for _, m := range t.Messages {
		counts[m.Server]++
	}
	return rankServers(counts)
}

// PlayersPerServer ranks servers by distinct players with a session.
func PlayersPerServer(t *mclog.Tables) []ServerCount {
	players := make(map[string]map[string]struct{})
	for _, s := range t.Sessions {
		if players[s.Server] == nil {
			players[s.Server] = make(map[string]struct{})
		}
		players[s.Server][s.ID] = struct{}{}
	}
	counts := make(map[string]int, len(players))
	for server, set := range players {
		counts[server] = len(set)
	}
	return rankServers(counts)
}

// PeakConcurrent finds, per server, the largest number of overlapping
// sessions and when it was first reached. Servers are sorted by name.
func PeakConcurrent(t *mclog.Tables) []Peak {
	type change struct {
		at    time.Time
		delta int
		id    string
	}
	byServer := make(map[string][]change)
	for _, s := range t.Sessions {
		byServer[s.Server] = append(byServer[s.Server],
			change{at: s.Start, delta: 1, id: s.ID},
			change{at: s.Start.Add(s.Duration), delta: -1, id: s.ID},
		)
	}

	n := newNamer(t)
	var out []Peak
	for server, changes := range byServer {
		// Leaves sort before joins at the same instant.
		slices.SortStableFunc(changes, func(a, b change) int {
			if c := a.at.Compare(b.at); c != 0 {
				return c
			}
			return cmp.Compare(a.delta, b.delta)
		})

		online := make(map[string]int)
		peak := Peak{Server: server}
		for _, c := range changes {
			online[c.id] += c.delta
			if online[c.id] <= 0 {
				delete(online, c.id)
			}
			if len(online) > peak.Players {
				peak.Players = len(online)
				peak.At = c.at
				peak.Names = peak.Names[:0]
				for id := range online {
					peak.Names = append(peak.Names, n.name(id))
				}
				sort.Strings(peak.Names)
			}
		}
		if peak.Players > 0 {
			out = append(out, peak)
		}
	}
	slices.SortFunc(out, func(a, b Peak) int { return cmp.Compare(a.Server, b.Server) })
	return out
}

// ServerPlaytime ranks servers by total play time.
func ServerPlaytime(t *mclog.Tables) []ServerHours {
	played := serverTime(t)
	out := make([]ServerHours, 0, len(played))
	for server, d := range played {
		h := hours(d)
		out = append(out, ServerHours{Server: server, Hours: round(h, 1), Days: round(h/24, 1)})
	}
	slices.SortFunc(out, func(a, b ServerHours) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return cmp.Compare(a.Server, b.Server)
	})
	return out
}

// ServerChatRateRanking ranks servers with at least MinRateHours of play by
// messages per hour.
func ServerChatRateRanking(t *mclog.Tables) []Rate {
	counts := make(map[string]int)
	for _, m := range t.Messages {
		counts[m.Server]++
	}
	return rates(counts, serverTime(t), func(s string) string { return s })
}

// HourlyPlaytime spreads session time over the 24 hours of the day in each
// session's own location. All 24 hours are returned.
func HourlyPlaytime(t *mclog.Tables) []HourHours {
	var byHour [24]time.Duration
	for _, s := range t.Sessions {
		spread(s, func(at time.Time, d time.Duration) {
			byHour[at.Hour()] += d
		})
	}
	out := make([]HourHours, 24)
	for h, d := range byHour {
		out[h] = HourHours{Hour: h, Hours: round(hours(d), 1)}
	}
	return out
}

// WeekdayPlaytime spreads session time over the days of the week, Monday
// first. All seven days are returned.
func WeekdayPlaytime(t *mclog.Tables) []WeekdayHours {
	var byDay [7]time.Duration
	for _, s := range t.Sessions {
		spread(s, func(at time.Time, d time.Duration) {
			byDay[at.Weekday()] += d
		})
	}
	out := make([]WeekdayHours, 0, 7)
	for i := range 7 {
		wd := time.Weekday((i + 1) % 7)
		out = append(out, WeekdayHours{Weekday: wd.String(), Hours: round(hours(byDay[wd]), 1)})
	}
	return out
}

// DailyPlaytime spreads session time over calendar dates. Only dates with
// play are returned, oldest first.
func DailyPlaytime(t *mclog.Tables) []DayHours {
	byDate := make(map[string]time.Duration)
	for _, s := range t.Sessions {
		spread(s, func(at time.Time, d time.Duration) {
			byDate[at.Format(time.DateOnly)] += d
		})
	}
	out := make([]DayHours, 0, len(byDate))
	for date, d := range byDate {
		out = append(out, DayHours{Date: date, Hours: round(hours(d), 1)})
	}
	slices.SortFunc(out, func(a, b DayHours) int { return cmp.Compare(a.Date, b.Date) })
	return out
}

// spread calls fn for each piece of s cut at wall-clock hour boundaries.
func spread(s mclog.Session, fn func(at time.Time, d time.Duration)) {
	at, end := s.Start, s.Start.Add(s.Duration)
	for at.Before(end) {
		next := time.Date(at.Year(), at.Month(), at.Day(), at.Hour()+1, 0, 0, 0, at.Location())
		if next.After(end) {
			next = end
		}
		fn(at, next.Sub(at))
		at = next
	}
}

func playerTime(t *mclog.Tables) map[string]time.Duration {
	total := make(map[string]time.Duration)
	for _, s := range t.Sessions {
		total[s.ID] += s.Duration
	}
	return total
}

func serverTime(t *mclog.Tables) map[string]time.Duration {
	total := make(map[string]time.Duration)
	for _, s := range t.Sessions {
		total[s.Server] += s.Duration
	}
	return total
}

func rankPlayers(n namer, counts map[string]int) []PlayerCount {
	out := make([]PlayerCount, 0, len(counts))
	for id, c := range counts {
		out = append(out, PlayerCount{Player: n.name(id), Count: c})
	}
	slices.SortFunc(out, func(a, b PlayerCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})
	return out
}

func rankServers(counts map[string]int) []ServerCount {
	out := make([]ServerCount, 0, len(counts))
	for server, c := range counts {
		out = append(out, ServerCount{Server: server, Count: c})
	}
	slices.SortFunc(out, func(a, b ServerCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Server, b.Server)
	})
	return out
}

func rates(counts map[string]int, played map[string]time.Duration, name func(string) string) []Rate {
	var out []Rate
	for key, c := range counts {
		h := hours(played[key])
		if h < MinRateHours {
			continue
		}
		out = append(out, Rate{
			Name:    name(key),
			PerHour: round(float64(c)/h, 2),
			Total:   c,
			Hours:   round(h, 1),
		})
	}
	slices.SortFunc(out, func(a, b Rate) int {
		if c := cmp.Compare(b.PerHour, a.PerHour); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
