package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mclog/mclog-go/pkg/mclog"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

const aliceID = "069a79f4-44e9-4726-a5be-fca90e38aaf5"

func TestOutputJSON(t *testing.T) {
	event := mclog.Event{
		Type:       mclog.EventJoin,
		Timestamp:  time.Date(2024, 1, 15, 12, 30, 45, 0, time.UTC),
		PlayerName: "Alice",
		PlayerID:   aliceID,
	}

	var buf bytes.Buffer
	err := OutputJSON("survival", event, &buf)
	if err != nil {
		t.Fatalf("OutputJSON() error = %v", err)
	}

	// Verify it's valid JSON
	var decoded struct {
		Server string `json:"server"`
		mclog.Event
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("OutputJSON() produced invalid JSON: %v", err)
	}

	if decoded.Server != "survival" {
		t.Errorf("decoded.Server = %q, want %q", decoded.Server, "survival")
	}
	if decoded.PlayerName != "Alice" {
		t.Errorf("decoded.PlayerName = %q, want %q", decoded.PlayerName, "Alice")
	}
	if decoded.PlayerID != aliceID {
		t.Errorf("decoded.PlayerID = %q, want %q", decoded.PlayerID, aliceID)
	}
}

func TestOutputJSON_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputJSON("survival", mclog.Event{Type: mclog.EventServerReady}, &buf); err != nil {
		t.Fatalf("OutputJSON() error = %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{"server":"survival","type":"server_ready"}`
	if got != want {
		t.Errorf("OutputJSON() = %s, want %s", got, want)
	}
}

func TestOutputPretty(t *testing.T) {
	ts := time.Date(2024, 1, 15, 12, 30, 45, 0, time.UTC)
	tests := []struct {
		name     string
		event    mclog.Event
		contains string
	}{
		{
			name:     "identity",
			event:    mclog.Event{Type: mclog.EventIdentity, Timestamp: ts, PlayerName: "Alice", PlayerID: aliceID},
			contains: "= Alice is " + aliceID,
		},
		{
			name:     "server_ready",
			event:    mclog.Event{Type: mclog.EventServerReady, Timestamp: ts},
			contains: "# server ready",
		},
		{
			name:     "join",
			event:    mclog.Event{Type: mclog.EventJoin, Timestamp: ts, PlayerName: "Alice"},
			contains: "+ Alice joined",
		},
		{
			name:     "quit",
			event:    mclog.Event{Type: mclog.EventQuit, Timestamp: ts, PlayerName: "Alice"},
			contains: "- Alice left",
		},
		{
			name:     "chat",
			event:    mclog.Event{Type: mclog.EventChat, Timestamp: ts, PlayerName: "Alice", Message: "hi all"},
			contains: "<Alice> hi all",
		},
		{
			name:     "advancement",
			event:    mclog.Event{Type: mclog.EventAdvancement, Timestamp: ts, PlayerName: "Alice", Advancement: "Stone Age"},
			contains: "* Alice made the advancement [Stone Age]",
		},
		{
			name:     "death",
			event:    mclog.Event{Type: mclog.EventDeath, Timestamp: ts, PlayerName: "Alice", Message: "fell from a high place"},
			contains: "x Alice fell from a high place",
		},
		{
			name:     "unknown_type",
			event:    mclog.Event{Type: "custom", Timestamp: ts},
			contains: "? custom",
		},
		{
			name:     "no_timestamp",
			event:    mclog.Event{Type: mclog.EventIdentity, PlayerName: "Alice", PlayerID: aliceID},
			contains: "[-] survival = Alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := OutputPretty("survival", tt.event, &buf)
			if err != nil {
				t.Fatalf("OutputPretty() error = %v", err)
			}

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("OutputPretty() = %q, want to contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestOutputEvent(t *testing.T) {
	event := mclog.Event{
		Type:       mclog.EventJoin,
		Timestamp:  time.Date(2024, 1, 15, 12, 30, 45, 0, time.UTC),
		PlayerName: "Alice",
	}

	tests := []struct {
		format    string
		wantErr   bool
		checkFunc func(string) bool
	}{
		{
			format:  "jsonl",
			wantErr: false,
			checkFunc: func(s string) bool {
				return strings.Contains(s, `"player_name":"Alice"`)
			},
		},
		{
			format:  "pretty",
			wantErr: false,
			checkFunc: func(s string) bool {
				return strings.Contains(s, "+ Alice joined")
			},
		},
		{
			format:  "unknown",
			wantErr: true,
			checkFunc: func(s string) bool {
				return true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := OutputEvent(tt.format, "survival", event, &buf)

			if (err != nil) != tt.wantErr {
				t.Errorf("OutputEvent() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && !tt.checkFunc(buf.String()) {
				t.Errorf("OutputEvent() output check failed: %q", buf.String())
			}
		})
	}
}

// TestOutputEvent_Golden tests output formats using golden files.
// Run with -update-golden to update the golden files.
func TestOutputEvent_Golden(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		event  mclog.Event
	}{
		{
			name:   "pretty_join",
			format: "pretty",
			event: mclog.Event{
				Type:       mclog.EventJoin,
				Timestamp:  fixedTime,
				PlayerName: "Alice",
			},
		},
		{
			name:   "pretty_death",
			format: "pretty",
			event: mclog.Event{
				Type:       mclog.EventDeath,
				Timestamp:  fixedTime,
				PlayerName: "Alice",
				Message:    "was slain by Bob",
			},
		},
		{
			name:   "jsonl_chat",
			format: "jsonl",
			event: mclog.Event{
				Type:       mclog.EventChat,
				Timestamp:  fixedTime,
				PlayerName: "Alice",
				PlayerID:   aliceID,
				Message:    "hello",
			},
		},
	}

	// Support both flag and env var for updating golden files
	update := *updateGolden || os.Getenv("UPDATE_GOLDEN") != ""

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := OutputEvent(tt.format, "survival", tt.event, &buf); err != nil {
				t.Fatalf("OutputEvent() error = %v", err)
			}

			golden := filepath.Join("testdata", "golden", tt.name+".golden")

			if update {
				if err := os.MkdirAll(filepath.Dir(golden), 0755); err != nil {
					t.Fatalf("failed to create golden dir: %v", err)
				}
				if err := os.WriteFile(golden, buf.Bytes(), 0644); err != nil {
					t.Fatalf("failed to write golden file: %v", err)
				}
				t.Logf("updated golden file: %s", golden)
				return
			}

			expected, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("failed to read golden file %s: %v\nRun with -update-golden to create it", golden, err)
			}

			got := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
			want := bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))

			if !bytes.Equal(got, want) {
				t.Errorf("output mismatch for %s:\ngot:\n%s\nwant:\n%s", golden, got, want)
			}
		})
	}
}
