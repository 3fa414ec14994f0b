// Package csv exports extraction records as CSV.
package csv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/newsgrab"
)

// Header is the column layout of an export, in order.
var Header = []string{"url", "title", "body_text", "source", "timestamp", "author"}

// Write encodes records to w, header row first. Records are written in
// the order given. A zero PublishedAt becomes an empty timestamp cell.
func Write(w io.Writer, records []*newsgrab.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return newsgrab.Errorf(newsgrab.EINTERNAL, "write csv header: %s", err)
	}
	for _, rec := range records {
		row := []string{
			rec.URL,
			rec.Title,
			rec.BodyText,
			string(rec.Source),
			formatTimestamp(rec.PublishedAt),
			rec.Author,
		}
		if err := cw.Write(row); err != nil {
			return newsgrab.Errorf(newsgrab.EINTERNAL, "write csv row: %s", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return newsgrab.Errorf(newsgrab.EINTERNAL, "flush csv: %s", err)
	}
	return nil
}

// WriteFile writes records to a CSV file, creating parent directories
// as needed.
func WriteFile(path string, records []*newsgrab.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return newsgrab.Errorf(newsgrab.EINTERNAL, "create export directory: %s", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return newsgrab.Errorf(newsgrab.EINTERNAL, "create export file: %s", err)
	}
	defer f.Close()

	if err := Write(f, records); err != nil {
		return err
	}
	return f.Close()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
