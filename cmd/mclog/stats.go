package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mclog/mclog-go/internal/stats"
)

var (
	// stats flags
	statsFormat string
	statsTop    int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print playtime, death, chat and advancement statistics",
	Long: `Run the ingest and print aggregate statistics instead of writing tables.

Examples:
  # Top 10 of every ranking
  mclog stats

  # Top 3, as one JSON object
  mclog stats --top 3 --format jsonl`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "pretty",
		"Output format: jsonl, pretty")
	statsCmd.Flags().IntVarP(&statsTop, "top", "n", 10,
		"Entries per ranking (0 = all)")

	_ = statsCmd.RegisterFlagCompletionFunc("format", fixedCompletion(formatNames()))

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if !ValidFormats[statsFormat] {
		return fmt.Errorf("unknown format: %s", statsFormat)
	}
	if statsTop < 0 {
		return fmt.Errorf("--top must be non-negative, got %d", statsTop)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, tables, _, err := ingest(ctx, cmd)
	if err != nil {
		return err
	}
	return OutputReport(statsFormat, stats.Compute(tables, statsTop), cmd.OutOrStdout())
}

// OutputReport writes a report in the specified format to the writer.
func OutputReport(format string, r stats.Report, out io.Writer) error {
	switch format {
	case "jsonl":
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "pretty":
		return outputReportPretty(r, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// reportWriter keeps the first write error so sections can be written
// without checking each line.
type reportWriter struct {
	out io.Writer
	err error
}

func (w *reportWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

func (w *reportWriter) section(title string, n int) bool {
	w.printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	if n == 0 {
		w.printf("  (none)\n")
		return false
	}
	return true
}

func outputReportPretty(r stats.Report, out io.Writer) error {
	w := &reportWriter{out: out}

	t := r.Totals
	w.printf("Total play time: %.1f h (%.1f days)\n", t.PlayHours, t.PlayDays)
	w.printf("Active players:  %d\n", t.ActivePlayers)
	w.printf("Deaths:          %d\n", t.Deaths)
	w.printf("Messages:        %d\n", t.Messages)
	w.printf("Advancements:    %d\n", t.Advancements)

	if w.section("Servers", len(r.Timeline)) {
		for _, s := range r.Timeline {
			w.printf("  %-20s %s .. %s\n", s.Server, formatTime(s.Created), formatTime(s.Closed))
		}
	}
	if w.section("Play time", len(r.Playtime)) {
		for i, p := range r.Playtime {
			w.printf("  %2d. %-20s %8.1f h\n", i+1, p.Player, p.Hours)
		}
	}
	if w.section("Play time per server", len(r.ServerPlaytime)) {
		for i, s := range r.ServerPlaytime {
			w.printf("  %2d. %-20s %8.1f h (%.1f days)\n", i+1, s.Server, s.Hours, s.Days)
		}
	}
	playerCounts(w, "Servers played", r.Variety)
	playerCounts(w, "Deaths", r.Deaths)
	rates(w, "Deaths per hour", r.DeathRates)
	rates(w, "Most dangerous servers (deaths per hour)", r.DangerousServers)
	playerCounts(w, "Player kills", r.PvP)
	playerCounts(w, "Chat messages", r.Chat)
	rates(w, "Messages per hour", r.ChatRates)
	serverCounts(w, "Chat messages per server", r.ServerChat)
	rates(w, "Messages per hour per server", r.ServerChatRates)
	playerCounts(w, "Advancements", r.Advancements)
	serverCounts(w, "Players per server", r.PlayersPerServer)
	if w.section("Peak concurrent players", len(r.PeakConcurrent)) {
		for _, p := range r.PeakConcurrent {
			w.printf("  %-20s %3d at %s (%s)\n", p.Server, p.Players, formatTime(p.At), strings.Join(p.Names, ", "))
		}
	}
	// Daily totals are left to the JSON report.
	if t.PlayHours > 0 {
		if w.section("Play time by weekday", len(r.Weekdays)) {
			for _, d := range r.Weekdays {
				w.printf("  %-10s %8.1f h\n", d.Weekday, d.Hours)
			}
		}
		if w.section("Play time by hour", len(r.Hourly)) {
			for _, h := range r.Hourly {
				w.printf("  %02d:00 %8.1f h\n", h.Hour, h.Hours)
			}
		}
	}
	return w.err
}

func playerCounts(w *reportWriter, title string, rows []stats.PlayerCount) {
	if !w.section(title, len(rows)) {
		return
	}
	for i, r := range rows {
		w.printf("  %2d. %-20s %8d\n", i+1, r.Player, r.Count)
	}
}

func serverCounts(w *reportWriter, title string, rows []stats.ServerCount) {
	if !w.section(title, len(rows)) {
		return
	}
	for i, r := range rows {
		w.printf("  %2d. %-20s %8d\n", i+1, r.Server, r.Count)
	}
}

func rates(w *reportWriter, title string, rows []stats.Rate) {
	if !w.section(title, len(rows)) {
		return
	}
	for i, r := range rows {
		w.printf("  %2d. %-20s %8.2f  (%d in %.1f h)\n", i+1, r.Name, r.PerHour, r.Total, r.Hours)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}
