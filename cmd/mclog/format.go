package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mclog/mclog-go/pkg/mclog"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// timeLayout is the pretty timestamp layout.
const timeLayout = "2006-01-02 15:04:05"

// serverEvent is an event tagged with the server it was read from.
type serverEvent struct {
	Server string `json:"server"`
	mclog.Event
}

// OutputEvent writes an event in the specified format to the writer.
func OutputEvent(format, server string, event mclog.Event, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(server, event, out)
	case "pretty":
		return OutputPretty(server, event, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes an event as JSON Lines format.
func OutputJSON(server string, event mclog.Event, out io.Writer) error {
	data, err := json.Marshal(serverEvent{Server: server, Event: event})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an event in human-readable format.
func OutputPretty(server string, event mclog.Event, out io.Writer) error {
	ts := "-"
	if !event.Timestamp.IsZero() {
		ts = event.Timestamp.Format(timeLayout)
	}
	prefix := fmt.Sprintf("[%s] %s", ts, server)

	var err error
	switch event.Type {
	case mclog.EventIdentity:
		_, err = fmt.Fprintf(out, "%s = %s is %s\n", prefix, event.PlayerName, event.PlayerID)
	case mclog.EventServerReady:
		_, err = fmt.Fprintf(out, "%s # server ready\n", prefix)
	case mclog.EventJoin:
		_, err = fmt.Fprintf(out, "%s + %s joined\n", prefix, event.PlayerName)
	case mclog.EventQuit:
		_, err = fmt.Fprintf(out, "%s - %s left\n", prefix, event.PlayerName)
	case mclog.EventChat:
		_, err = fmt.Fprintf(out, "%s <%s> %s\n", prefix, event.PlayerName, event.Message)
	case mclog.EventAdvancement:
		_, err = fmt.Fprintf(out, "%s * %s made the advancement [%s]\n", prefix, event.PlayerName, event.Advancement)
	case mclog.EventDeath:
		_, err = fmt.Fprintf(out, "%s x %s %s\n", prefix, event.PlayerName, event.Message)
	default:
		_, err = fmt.Fprintf(out, "%s ? %s\n", prefix, event.Type)
	}

	return err
}
