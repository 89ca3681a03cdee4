package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mclog/mclog-go/pkg/mclog"
)

// CSVWriter writes one <table>.csv file per table into Dir, with a header
// row. Each file is written under a temporary name and renamed into place.
type CSVWriter struct {
	Dir string
}

// Write implements Writer.
func (w *CSVWriter) Write(ctx context.Context, t *mclog.Tables) error {
	if w.Dir == "" {
		return fmt.Errorf("csv output directory is required")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, tb := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeTable(tb, t); err != nil {
			return fmt.Errorf("write %s.csv: %w", tb.name, err)
		}
	}
	return nil
}

func (w *CSVWriter) writeTable(tb table, t *mclog.Tables) (err error) {
	final := filepath.Join(w.Dir, tb.name+".csv")
	f, err := os.CreateTemp(w.Dir, "."+tb.name+"-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(tb.columns); err != nil {
		return err
	}
	record := make([]string, len(tb.columns))
	for _, row := range tb.rows(t) {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), final)
}
