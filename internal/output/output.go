// Package output persists ingest tables as CSV files or a SQLite database.
package output

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mclog/mclog-go/pkg/mclog"
)

// Writer persists a full set of tables, replacing any previous output.
type Writer interface {
	Write(ctx context.Context, t *mclog.Tables) error
}

// table describes one output table. Cell values are string, int64 or nil.
type table struct {
	name    string
	columns []string
	rows    func(t *mclog.Tables) [][]any
}

// tables lists every output table in write order.
var tables = []table{
	{
		name:    "player_names",
		columns: []string{"uuid", "player_name"},
		rows: func(t *mclog.Tables) [][]any {
			names := t.PlayerNames()
			out := make([][]any, len(names))
			for i, n := range names {
				out[i] = []any{n.ID, n.Name}
			}
			return out
		},
	},
	{
		name:    "servers",
		columns: []string{"server_name", "created_timestamp", "closed_timestamp"},
		rows: func(t *mclog.Tables) [][]any {
			out := make([][]any, len(t.Servers))
			for i, s := range t.Servers {
				out[i] = []any{s.Name, unix(s.Created), unix(s.Closed)}
			}
			return out
		},
	},
	{
		name:    "sessions",
		columns: []string{"server_name", "uuid", "join_timestamp", "play_time"},
		rows: func(t *mclog.Tables) [][]any {
			out := make([][]any, len(t.Sessions))
			for i, s := range t.Sessions {
				out[i] = []any{s.Server, s.ID, unix(s.Start), int64(s.Duration / time.Second)}
			}
			return out
		},
	},
	{
		name:    "deaths",
		columns: []string{"server_name", "uuid", "by", "timestamp"},
		rows: func(t *mclog.Tables) [][]any {
			out := make([][]any, len(t.Deaths))
			for i, d := range t.Deaths {
				out[i] = []any{d.Server, d.ID, d.By, unix(d.Timestamp)}
			}
			return out
		},
	},
	{
		name:    "messages",
		columns: []string{"server_name", "uuid", "content", "timestamp"},
		rows: func(t *mclog.Tables) [][]any {
			out := make([][]any, len(t.Messages))
			for i, m := range t.Messages {
				out[i] = []any{m.Server, m.ID, m.Content, unix(m.Timestamp)}
			}
			return out
		},
	},
	{
		name:    "advancements",
		columns: []string{"server_name", "uuid", "advancement_name", "timestamp"},
		rows: func(t *mclog.Tables) [][]any {
			out := make([][]any, len(t.Advancements))
			for i, a := range t.Advancements {
				out[i] = []any{a.Server, a.ID, a.Name, unix(a.Timestamp)}
			}
			return out
		},
	},
}

// TableNames returns the output table names in write order.
func TableNames() []string {
	names := make([]string, len(tables))
	for i, tb := range tables {
		names[i] = tb.name
	}
	return names
}

// unix returns Unix seconds, or nil for the zero time.
func unix(ts time.Time) any {
	if ts.IsZero() {
		return nil
	}
	return ts.Unix()
}

func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Multi writes to every writer in order and stops at the first failure.
type Multi []Writer

// Write implements Writer.
func (m Multi) Write(ctx context.Context, t *mclog.Tables) error {
	for _, w := range m {
		if err := w.Write(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
