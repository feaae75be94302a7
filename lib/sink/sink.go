// Package sink appends extracted records to per-record-type CSV files.
package sink

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lanecollect/lib/scrape"
)

// Writer appends batches of same-shaped records under a destination
// directory, one file per record type. It never truncates or rewrites
// existing content and assumes a single writer per destination.
type Writer struct {
	Dest string
}

// Append writes records to name (e.g. "receipts.csv") inside the
// destination directory, creating it if needed. A header derived from
// the first record's field order is written only when the file is
// missing or empty. Empty batches are a no-op.
func (w Writer) Append(name string, records []scrape.Record) error {
	if len(records) == 0 {
		return nil
	}
	fields := records[0].Fields()
	if len(fields) == 0 {
		return nil
	}

	if w.Dest != "" {
		if err := os.MkdirAll(w.Dest, 0755); err != nil {
			return fmt.Errorf("create destination: %w", err)
		}
	}
	path := filepath.Join(w.Dest, name)
	slog.Debug("writing records", "count", len(records), "output", path)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	out := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := out.Write(fields); err != nil {
			return err
		}
	}
	for _, record := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = record.Get(f)
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
