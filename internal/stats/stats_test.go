package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mclog/mclog-go/pkg/mclog"
)

const (
	aliceID = "11111111-1111-1111-1111-111111111111"
	bobID   = "22222222-2222-2222-2222-222222222222"
)

var base = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func fixture() *mclog.Tables {
	return &mclog.Tables{
		Sessions: []mclog.Session{
			{Server: "survival", ID: aliceID, Start: base, Duration: 2 * time.Hour},
			{Server: "creative", ID: aliceID, Start: base, Duration: 30 * time.Minute},
			{Server: "survival", ID: bobID, Start: base.Add(time.Hour), Duration: 30 * time.Minute},
			{Server: "survival", ID: "Steve", Start: base.Add(90 * time.Minute), Duration: time.Hour},
		},
		Deaths: []mclog.Death{
			{Server: "survival", ID: aliceID, By: bobID},
			{Server: "survival", ID: aliceID, By: "fell from a high place"},
			{Server: "survival", ID: bobID, By: aliceID},
			{Server: "survival", ID: "Steve", By: bobID},
		},
		Messages: []mclog.Message{
			{Server: "survival", ID: aliceID},
			{Server: "survival", ID: bobID},
			{Server: "creative", ID: bobID},
			{Server: "creative", ID: bobID},
		},
		Advancements: []mclog.Advancement{
			{Server: "survival", ID: aliceID, Name: "a"},
		},
		Servers: []mclog.Server{
			{Name: "creative", Created: base.Add(time.Hour), Closed: base.Add(2 * time.Hour)},
			{Name: "empty"},
			{Name: "survival", Created: base, Closed: base.Add(3 * time.Hour)},
		},
		NameObservations: []mclog.NameObservation{
			{ID: aliceID, Name: "Alice", Timestamp: base},
			{ID: bobID, Name: "Bob", Timestamp: base},
		},
	}
}

func TestComputeTotals(t *testing.T) {
	got := ComputeTotals(fixture())
	assert.Equal(t, Totals{
		PlayHours:     4,
		PlayDays:      0.2,
		Deaths:        4,
		Messages:      4,
		Advancements:  1,
		ActivePlayers: 3,
	}, got)
}

func TestActivePlayers(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob", "Steve"}, ActivePlayers(fixture()))
}

func TestServerTimeline(t *testing.T) {
	got := ServerTimeline(fixture())
	require.Len(t, got, 3)
	assert.Equal(t, "survival", got[0].Server)
	assert.Equal(t, "creative", got[1].Server)
	assert.Equal(t, "empty", got[2].Server)
}

func TestPlaytimeRanking(t *testing.T) {
	assert.Equal(t, []PlayerHours{
		{Player: "Alice", Hours: 2.5},
		{Player: "Steve", Hours: 1},
		{Player: "Bob", Hours: 0.5},
	}, PlaytimeRanking(fixture()))
}

func TestCountRankings(t *testing.T) {
	tb := fixture()

	assert.Equal(t, []PlayerCount{{"Alice", 2}, {"Bob", 1}, {"Steve", 1}}, DeathRanking(tb))
	assert.Equal(t, []PlayerCount{{"Bob", 2}, {"Alice", 1}}, PvPRanking(tb))
	assert.Equal(t, []PlayerCount{{"Bob", 3}, {"Alice", 1}}, ChatRanking(tb))
	assert.Equal(t, []PlayerCount{{"Alice", 1}}, AdvancementRanking(tb))
	assert.Equal(t, []PlayerCount{{"Alice", 2}, {"Bob", 1}, {"Steve", 1}}, VarietyRanking(tb))
	assert.Equal(t, []ServerCount{{"survival", 3}, {"creative", 1}}, PlayersPerServer(tb))
	assert.Equal(t, []ServerCount{{"creative", 2}, {"survival", 2}}, ServerChatRanking(tb))
}

func TestRates(t *testing.T) {
	tb := fixture()

	// Bob has only half an hour and is left out.
	assert.Equal(t, []Rate{
		{Name: "Steve", PerHour: 1, Total: 1, Hours: 1},
		{Name: "Alice", PerHour: 0.8, Total: 2, Hours: 2.5},
	}, DeathRateRanking(tb))

	assert.Equal(t, []Rate{
		{Name: "Alice", PerHour: 0.4, Total: 1, Hours: 2.5},
	}, ChatRateRanking(tb))

	assert.Equal(t, []Rate{
		{Name: "survival", PerHour: 1.14, Total: 4, Hours: 3.5},
	}, DangerousServers(tb))

	// creative has half an hour and is left out.
	assert.Equal(t, []Rate{
		{Name: "survival", PerHour: 0.57, Total: 2, Hours: 3.5},
	}, ServerChatRateRanking(tb))
}

func TestServerPlaytime(t *testing.T) {
	assert.Equal(t, []ServerHours{
		{Server: "survival", Hours: 3.5, Days: 0.1},
		{Server: "creative", Hours: 0.5, Days: 0},
	}, ServerPlaytime(fixture()))
}

func TestHourlyPlaytime(t *testing.T) {
	got := HourlyPlaytime(fixture())
	require.Len(t, got, 24)

	// Alice's two-hour session is split between 10:00 and 11:00.
	assert.Equal(t, HourHours{Hour: 10, Hours: 1.5}, got[10])
	assert.Equal(t, HourHours{Hour: 11, Hours: 2}, got[11])
	assert.Equal(t, HourHours{Hour: 12, Hours: 0.5}, got[12])
	assert.Equal(t, HourHours{Hour: 9}, got[9])
}

func TestPlaytime_CrossesMidnight(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC)
	tb := &mclog.Tables{Sessions: []mclog.Session{
		{Server: "survival", ID: aliceID, Start: sunday, Duration: 90 * time.Minute},
	}}

	weekdays := WeekdayPlaytime(tb)
	require.Len(t, weekdays, 7)
	assert.Equal(t, WeekdayHours{Weekday: "Monday", Hours: 1}, weekdays[0])
	assert.Equal(t, WeekdayHours{Weekday: "Sunday", Hours: 0.5}, weekdays[6])

	assert.Equal(t, []DayHours{
		{Date: "2024-01-07", Hours: 0.5},
		{Date: "2024-01-08", Hours: 1},
	}, DailyPlaytime(tb))

	hourly := HourlyPlaytime(tb)
	assert.Equal(t, 0.5, hourly[23].Hours)
	assert.Equal(t, 1.0, hourly[0].Hours)
}

func TestPlaytime_UsesSessionLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	tb := &mclog.Tables{Sessions: []mclog.Session{
		{Server: "survival", ID: aliceID, Start: time.Date(2024, 1, 1, 10, 0, 0, 0, ist), Duration: time.Hour},
	}}

	hourly := HourlyPlaytime(tb)
	assert.Equal(t, 1.0, hourly[10].Hours)
	assert.Zero(t, hourly[11].Hours)
}

func TestPeakConcurrent(t *testing.T) {
	got := PeakConcurrent(fixture())
	require.Len(t, got, 2)

	assert.Equal(t, Peak{Server: "creative", Players: 1, At: base, Names: []string{"Alice"}}, got[0])

	// Alice 10:00-12:00, Bob 11:00-11:30, Steve 11:30-12:30: Bob leaves as
	// Steve joins, so the peak is two.
	assert.Equal(t, "survival", got[1].Server)
	assert.Equal(t, 2, got[1].Players)
	assert.Equal(t, base.Add(time.Hour), got[1].At)
	assert.Equal(t, []string{"Alice", "Bob"}, got[1].Names)
}

func TestIsPlayerID(t *testing.T) {
	assert.True(t, IsPlayerID(aliceID))
	assert.False(t, IsPlayerID("was slain by Zombie"))
	assert.False(t, IsPlayerID("urn:uuid:"+aliceID))
	assert.False(t, IsPlayerID(""))
}

func TestCompute_Top(t *testing.T) {
	r := Compute(fixture(), 1)
	assert.Len(t, r.Playtime, 1)
	assert.Len(t, r.Deaths, 1)
	assert.Len(t, r.PlayersPerServer, 2, "server breakdowns are not cut")
	assert.Len(t, r.ServerPlaytime, 2)
	assert.Len(t, r.Hourly, 24)
	assert.Len(t, r.Weekdays, 7)
	assert.Len(t, r.Daily, 1)

	r = Compute(fixture(), 0)
	assert.Len(t, r.Playtime, 3)
}

func TestCompute_Empty(t *testing.T) {
	r := Compute(&mclog.Tables{}, 10)
	assert.Equal(t, Totals{}, r.Totals)
	assert.Empty(t, r.Playtime)
	assert.Empty(t, r.PeakConcurrent)
	assert.Empty(t, r.Daily)
	assert.Len(t, r.Hourly, 24)
}
