package stats

import "github.com/mclog/mclog-go/pkg/mclog"

// Report bundles every statistic for printing.
type Report struct {
	Totals           Totals         `json:"totals"`
	Timeline         []ServerSpan   `json:"timeline"`
	ActivePlayers    []string       `json:"active_players"`
	Playtime         []PlayerHours  `json:"playtime"`
	Variety          []PlayerCount  `json:"variety"`
	Deaths           []PlayerCount  `json:"deaths"`
	DeathRates       []Rate         `json:"death_rates"`
	DangerousServers []Rate         `json:"dangerous_servers"`
	PvP              []PlayerCount  `json:"pvp"`
	Chat             []PlayerCount  `json:"chat"`
	ChatRates        []Rate         `json:"chat_rates"`
	ServerChat       []ServerCount  `json:"server_chat"`
	ServerChatRates  []Rate         `json:"server_chat_rates"`
	ServerPlaytime   []ServerHours  `json:"server_playtime"`
	Advancements     []PlayerCount  `json:"advancements"`
	PlayersPerServer []ServerCount  `json:"players_per_server"`
	PeakConcurrent   []Peak         `json:"peak_concurrent"`
	Hourly           []HourHours    `json:"hourly"`
	Weekdays         []WeekdayHours `json:"weekdays"`
	Daily            []DayHours     `json:"daily"`
}

// Compute builds a Report. Rankings are cut to the first top entries when
// top is positive.
func Compute(t *mclog.Tables, top int) Report {
	return Report{
		Totals:           ComputeTotals(t),
		Timeline:         ServerTimeline(t),
		ActivePlayers:    ActivePlayers(t),
		Playtime:         limit(PlaytimeRanking(t), top),
		Variety:          limit(VarietyRanking(t), top),
		Deaths:           limit(DeathRanking(t), top),
		DeathRates:       limit(DeathRateRanking(t), top),
		DangerousServers: limit(DangerousServers(t), top),
		PvP:              limit(PvPRanking(t), top),
		Chat:             limit(ChatRanking(t), top),
		ChatRates:        limit(ChatRateRanking(t), top),
		ServerChat:       limit(ServerChatRanking(t), top),
		ServerChatRates:  limit(ServerChatRateRanking(t), top),
		ServerPlaytime:   ServerPlaytime(t),
		Advancements:     limit(AdvancementRanking(t), top),
		PlayersPerServer: PlayersPerServer(t),
		PeakConcurrent:   PeakConcurrent(t),
		Hourly:           HourlyPlaytime(t),
		Weekdays:         WeekdayPlaytime(t),
		Daily:            DailyPlaytime(t),
	}
}

func limit[S ~[]E, E any](s S, top int) S {
	if top > 0 && len(s) > top {
		return s[:top]
	}
	return s
}
