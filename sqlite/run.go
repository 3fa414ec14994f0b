package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsgrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsgrab.RunService = (*RunService)(nil)

// RunService implements newsgrab.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRun persists a run and its records in a single transaction.
// Record positions are assigned from slice order.
func (s *RunService) CreateRun(ctx context.Context, run *newsgrab.Run, records []*newsgrab.Record) error {
	if err := run.Validate(); err != nil {
		return err
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, query, source, item_limit, saved, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Query, run.Source, run.Limit, run.Saved, run.Failed,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, rec := range records {
		rec.ID = uuid.New().String()
		rec.RunID = run.ID
		rec.Position = i
		rec.ContentHash = hashContent(rec.BodyText)
		if rec.FetchedAt.IsZero() {
			rec.FetchedAt = run.CreatedAt
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (id, run_id, url, title, body_text, source, published_at, author, position, content_hash, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.RunID, rec.URL, rec.Title, rec.BodyText, rec.Source,
			formatTime(rec.PublishedAt), rec.Author, rec.Position, rec.ContentHash,
			rec.FetchedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*newsgrab.Run, error) {
	var run newsgrab.Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, source, item_limit, saved, failed, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Query, &run.Source, &run.Limit, &run.Saved, &run.Failed, &createdAt)

	if err == sql.ErrNoRows {
		return nil, newsgrab.Errorf(newsgrab.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter newsgrab.RunFilter) ([]*newsgrab.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, query, source, item_limit, saved, failed, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*newsgrab.Run
	for rows.Next() {
		var run newsgrab.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.Query, &run.Source, &run.Limit, &run.Saved, &run.Failed, &createdAt); err != nil {
			return nil, err
		}

		run.CreatedAt, err = parseTime(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run. Its records go with it through
// the foreign key cascade.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return newsgrab.Errorf(newsgrab.ENOTFOUND, "run not found")
	}

	return nil
}
