package newsgrab

import (
	"context"
	"time"
)

// Record is the normalized, extracted text representation of one item.
// Records are never mutated after the pipeline creates them.
type Record struct {
	ID    string `json:"id"`
	RunID string `json:"runId"`

	// Canonical URL; unique within a ResultSet.
	URL      string `json:"url"`
	Title    string `json:"title"`
	BodyText string `json:"bodyText"`
	Source   Source `json:"source"`

	// Zero time means the publication date is unknown.
	PublishedAt time.Time `json:"publishedAt,omitzero"`
	Author      string    `json:"author,omitempty"`

	Position    int       `json:"position"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if !r.Source.Valid() {
		return Errorf(EINVALID, "record source %q unknown", r.Source)
	}
	return nil
}

// ResultSet is an ordered sequence of records deduplicated by URL.
// Invariant: no two records share a URL; the first record seen for a URL
// wins.
type ResultSet struct {
	records []*Record
	seen    map[string]bool
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{seen: make(map[string]bool)}
}

// Add inserts rec unless a record with the same URL is already present.
// It reports whether the record was inserted.
func (rs *ResultSet) Add(rec *Record) bool {
	if rs.seen[rec.URL] {
		return false
	}
	rs.seen[rec.URL] = true
	rs.records = append(rs.records, rec)
	return true
}

// Records returns the records in insertion order. The returned slice is
// owned by the ResultSet and must not be modified.
func (rs *ResultSet) Records() []*Record {
	return rs.records
}

// Len returns the number of records.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Run represents one completed pipeline invocation kept in the local
// run history.
type Run struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Source    Source    `json:"source"`
	Limit     int       `json:"limit"`
	Saved     int       `json:"saved"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "run query required")
	}
	if !r.Source.Valid() {
		return Errorf(EINVALID, "run source %q unknown", r.Source)
	}
	return nil
}

// RunService manages the persisted run history.
type RunService interface {
	// CreateRun persists a run together with its records.
	CreateRun(ctx context.Context, run *Run, records []*Record) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string `json:"id"`
	Source *Source `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordService retrieves persisted records.
type RecordService interface {
	// FindRecordsByRun retrieves the records of a run in position order.
	FindRecordsByRun(ctx context.Context, runID string) ([]*Record, error)
}
