package newsgrab

import (
	"context"
	"time"
)

// Source identifies the platform an item was discovered on.
type Source string

// Supported platforms. The set is closed and small, so variants are
// expressed as one SourceClient implementation per platform.
const (
	SourceReddit     Source = "reddit"
	SourceGoogleNews Source = "googlenews"
)

// Valid reports whether s is a known platform.
func (s Source) Valid() bool {
	switch s {
	case SourceReddit, SourceGoogleNews:
		return true
	}
	return false
}

// ItemReference is a lightweight pointer to one discoverable post or
// article, prior to content fetch. References are immutable and consumed
// exactly once by the pipeline.
type ItemReference struct {
	Source Source

	// Platform-native identifier (Reddit post ID, Google News article ID).
	ID string

	// Canonical URL of the item. This is the deduplication key.
	URL string

	// FetchURL is the document to GET when it differs from the canonical
	// URL (e.g. the Reddit JSON endpoint for a post). Empty means URL.
	FetchURL string

	// Listing metadata carried over from the search results. The pipeline
	// uses these to prefill record fields the fetched document may lack.
	Title       string
	Site        string
	Author      string
	PublishedAt time.Time
}

// DocumentURL returns the URL the pipeline should fetch for this item.
func (r *ItemReference) DocumentURL() string {
	if r.FetchURL != "" {
		return r.FetchURL
	}
	return r.URL
}

// SourceClient searches one platform for items matching a query.
type SourceClient interface {
	// Source returns the platform this client searches.
	Source() Source

	// Search returns up to limit item references for the query. Each call
	// re-issues the search; result sequences are not restartable. Zero
	// results is a valid, non-error outcome. Returns EUNAVAILABLE when the
	// upstream cannot be reached.
	Search(ctx context.Context, query string, limit int) ([]ItemReference, error)
}
