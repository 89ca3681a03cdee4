package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mclog/mclog-go/pkg/mclog"
)

var (
	// events flags
	eventsFormat  string
	eventTypes    []string
	excludeTypes  []string
	eventsSources []string
	includeRaw    bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the events kept by the ingest",
	Long: `Run the ingest and print every event it keeps, in log order.

Only events that survive the relevance filter and session attribution are
printed, so the output matches what ends up in the tables.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # All events as JSON Lines
  mclog events

  # Only deaths and advancements, human-readable
  mclog events --types death,advancement --format pretty

  # One server, with raw log lines
  mclog events --server survival --raw

  # Pipe to jq for filtering
  mclog events | jq 'select(.type == "chat")'`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	eventsCmd.Flags().StringSliceVarP(&eventTypes, "types", "t", nil,
		"Event types to show (comma-separated: join,quit,chat,death,...)")
	eventsCmd.Flags().StringSliceVar(&excludeTypes, "exclude-types", nil,
		"Event types to hide (comma-separated)")
	eventsCmd.Flags().StringSliceVarP(&eventsSources, "server", "s", nil,
		"Servers to show (comma-separated directory names)")
	eventsCmd.Flags().BoolVar(&includeRaw, "raw", false,
		"Include raw log lines in output")

	_ = eventsCmd.RegisterFlagCompletionFunc("format", fixedCompletion(formatNames()))
	_ = eventsCmd.RegisterFlagCompletionFunc("types", fixedCompletion(ValidEventTypeNames()))
	_ = eventsCmd.RegisterFlagCompletionFunc("exclude-types", fixedCompletion(ValidEventTypeNames()))

	rootCmd.AddCommand(eventsCmd)
}

// eventFilter decides which hooked events are printed.
type eventFilter struct {
	include map[mclog.EventType]bool
	exclude map[mclog.EventType]bool
	servers map[string]bool
}

func newEventFilter(types, excludes []string, servers []string) (*eventFilter, error) {
	inc, err := NormalizeEventTypes(types)
	if err != nil {
		return nil, fmt.Errorf("--types: %w", err)
	}
	exc, err := NormalizeEventTypes(excludes)
	if err != nil {
		return nil, fmt.Errorf("--exclude-types: %w", err)
	}
	if err := RejectOverlap(inc, exc); err != nil {
		return nil, err
	}

	f := &eventFilter{
		include: make(map[mclog.EventType]bool, len(inc)),
		exclude: make(map[mclog.EventType]bool, len(exc)),
		servers: make(map[string]bool, len(servers)),
	}
	for _, t := range inc {
		f.include[t] = true
	}
	for _, t := range exc {
		f.exclude[t] = true
	}
	for _, s := range servers {
		f.servers[s] = true
	}
	return f, nil
}

func (f *eventFilter) keep(server string, ev mclog.Event) bool {
	if len(f.servers) > 0 && !f.servers[server] {
		return false
	}
	if len(f.include) > 0 && !f.include[ev.Type] {
		return false
	}
	return !f.exclude[ev.Type]
}

// printHook returns a hook that prints kept events and remembers the first
// write error, after which printing stops.
func printHook(format string, filter *eventFilter, out io.Writer, errp *error) mclog.EventHook {
	return func(server string, ev mclog.Event) {
		if *errp != nil || !filter.keep(server, ev) {
			return
		}
		if err := OutputEvent(format, server, ev, out); err != nil {
			*errp = fmt.Errorf("output error: %w", err)
		}
	}
}

func runEvents(cmd *cobra.Command, args []string) error {
	if !ValidFormats[eventsFormat] {
		return fmt.Errorf("unknown format: %s", eventsFormat)
	}
	filter, err := newEventFilter(eventTypes, excludeTypes, eventsSources)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var outErr error
	_, _, _, err = ingest(ctx, cmd,
		mclog.WithIncludeRawLine(includeRaw),
		mclog.WithEventHook(printHook(eventsFormat, filter, cmd.OutOrStdout(), &outErr)))
	if err != nil {
		return err
	}
	return outErr
}
