package sqlite

import (
	"context"

	"github.com/fwojciec/newsgrab"
)

// Compile-time interface verification.
var _ newsgrab.RecordService = (*RecordService)(nil)

// RecordService implements newsgrab.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// FindRecordsByRun retrieves the records of a run in position order.
// Returns ENOTFOUND if the run does not exist.
func (s *RecordService) FindRecordsByRun(ctx context.Context, runID string) ([]*newsgrab.Record, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, newsgrab.Errorf(newsgrab.ENOTFOUND, "run not found")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, url, title, body_text, source, published_at, author, position, content_hash, fetched_at
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*newsgrab.Record
	for rows.Next() {
		var rec newsgrab.Record
		var publishedAt, fetchedAt string

		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.URL, &rec.Title, &rec.BodyText, &rec.Source,
			&publishedAt, &rec.Author, &rec.Position, &rec.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		rec.PublishedAt, err = parseTime(publishedAt, "published_at")
		if err != nil {
			return nil, err
		}
		rec.FetchedAt, err = parseTime(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
