package output

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mclog/mclog-go/pkg/mclog"
)

//go:embed schema.sql
var schema string

// SQLiteWriter recreates the tables in the SQLite database at Path inside a
// single transaction, so readers see either the old or the new run.
type SQLiteWriter struct {
	Path string
}

// Write implements Writer.
func (w *SQLiteWriter) Write(ctx context.Context, t *mclog.Tables) (err error) {
	if strings.TrimSpace(w.Path) == "" {
		return fmt.Errorf("sqlite path is required")
	}
	db, err := openDB(w.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	for _, tb := range tables {
		if err = insertTable(ctx, tx, tb, t); err != nil {
			return fmt.Errorf("insert %s: %w", tb.name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func openDB(path string) (*sql.DB, error) {
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

func insertTable(ctx context.Context, tx *sql.Tx, tb table, t *mclog.Tables) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tb.columns)), ", ")
	cols := make([]string, len(tb.columns))
	for i, c := range tb.columns {
		cols[i] = `"` + c + `"`
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tb.name, strings.Join(cols, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range tb.rows(t) {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}
	return nil
}
