// Package pipeline provides the extraction run orchestrator. It drives
// a source client to obtain item references, fetches and extracts each
// item, and collects the results into a URL-deduplicated set with a
// per-item failure tally.
package pipeline

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/newsgrab"
	"golang.org/x/sync/errgroup"
)

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	Wait(ctx context.Context, domain string) error
}

// Runner orchestrates extraction runs.
type Runner struct {
	// Sources maps each platform to its search client.
	Sources map[newsgrab.Source]newsgrab.SourceClient

	// Extractors maps each platform to the extractor applied to its
	// fetched documents.
	Extractors map[newsgrab.Source]newsgrab.Extractor

	Fetcher     newsgrab.Fetcher
	RateLimiter DomainLimiter

	// RetryDelays are the backoff delays between fetch attempts.
	// Nil means DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// Concurrency bounds parallel item extraction. Values below 2 mean
	// sequential processing, which is the default.
	Concurrency int
}

// Failure records one skipped item.
type Failure struct {
	URL string
	Err error
}

// Result holds the outcome of a run. Records appear in search order
// even when extraction ran concurrently.
type Result struct {
	Set      *newsgrab.ResultSet
	Failures []Failure
}

// Saved returns the number of records collected.
func (r *Result) Saved() int {
	return r.Set.Len()
}

// Failed returns the number of items skipped.
func (r *Result) Failed() int {
	return len(r.Failures)
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// itemResult holds the outcome of processing a single item reference.
type itemResult struct {
	position int
	ref      newsgrab.ItemReference
	record   *newsgrab.Record
	err      error
}

// Run performs one extraction run: search once, extract every item,
// skip failed items, deduplicate by URL (first seen wins). A failed
// search aborts the run; per-item failures only land in the tally.
func (r *Runner) Run(ctx context.Context, query string, source newsgrab.Source, limit int, progress ProgressFunc) (*Result, error) {
	client, ok := r.Sources[source]
	if !ok {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "no source client for %q", source)
	}
	if _, ok := r.Extractors[source]; !ok {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "no extractor for %q", source)
	}
	if limit < 0 {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "limit must be non-negative")
	}

	result := &Result{Set: newsgrab.NewResultSet()}
	if limit == 0 {
		return result, nil
	}

	refs, err := r.searchWithRetry(ctx, client, query, limit)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(refs)})
	}

	var results []itemResult
	if r.Concurrency > 1 {
		results = r.processConcurrently(ctx, refs)
	} else {
		results = r.processSequentially(ctx, refs)
	}

	// Collect in search order; duplicate URLs are dropped silently, not
	// counted as failures.
	completed := 0
	for _, item := range results {
		completed++
		if item.err != nil {
			result.Failures = append(result.Failures, Failure{URL: item.ref.URL, Err: item.err})
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     len(refs),
					URL:       item.ref.URL,
					Error:     item.err,
				})
			}
			continue
		}
		result.Set.Add(item.record)
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     len(refs),
				URL:       item.ref.URL,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(refs), Total: len(refs)})
	}

	return result, nil
}

func (r *Runner) processSequentially(ctx context.Context, refs []newsgrab.ItemReference) []itemResult {
	results := make([]itemResult, 0, len(refs))
	for i, ref := range refs {
		// The caller may abandon a run between items.
		if ctx.Err() != nil {
			break
		}
		record, err := r.processRef(ctx, ref)
		results = append(results, itemResult{position: i, ref: ref, record: record, err: err})
	}
	return results
}

// processConcurrently runs extractions in parallel. Fetches are
// independent; outcomes are collected into a position-indexed slice so
// the final order stays search order.
func (r *Runner) processConcurrently(ctx context.Context, refs []newsgrab.ItemReference) []itemResult {
	results := make([]itemResult, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			record, err := r.processRef(gctx, ref)
			results[i] = itemResult{position: i, ref: ref, record: record, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// processRef turns one item reference into a record: rate limit, fetch
// with retry, extract, normalize.
func (r *Runner) processRef(ctx context.Context, ref newsgrab.ItemReference) (*newsgrab.Record, error) {
	docURL := ref.DocumentURL()

	if r.RateLimiter != nil {
		u, err := url.Parse(docURL)
		if err != nil {
			return nil, newsgrab.Errorf(newsgrab.EFETCH, "invalid document URL %q", docURL)
		}
		if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	body, err := FetchWithRetryDelays(ctx, docURL, r.Fetcher.Fetch, nil, r.retryDelays())
	if err != nil {
		return nil, err
	}

	extracted, err := r.Extractors[ref.Source].Extract(body)
	if err != nil {
		return nil, err
	}

	return buildRecord(ref, extracted), nil
}

// buildRecord merges extractor output with listing metadata; extractor
// fields win when present. Text fields pass through NormalizeText so
// extracting the same document twice yields byte-identical records.
func buildRecord(ref newsgrab.ItemReference, ex *newsgrab.ExtractResult) *newsgrab.Record {
	rec := &newsgrab.Record{
		URL:         ref.URL,
		Title:       newsgrab.NormalizeText(coalesce(ex.Title, ref.Title)),
		BodyText:    newsgrab.NormalizeText(ex.Text),
		Source:      ref.Source,
		Author:      coalesce(ex.Author, ref.Author),
		PublishedAt: ref.PublishedAt,
		FetchedAt:   time.Now().UTC(),
	}
	if !ex.PublishedAt.IsZero() {
		rec.PublishedAt = ex.PublishedAt
	}
	return rec
}

func (r *Runner) searchWithRetry(ctx context.Context, client newsgrab.SourceClient, query string, limit int) ([]newsgrab.ItemReference, error) {
	delays := r.retryDelays()

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		refs, err := client.Search(ctx, query, limit)
		if err == nil {
			return refs, nil
		}
		// A rejected query will not improve on retry.
		if newsgrab.ErrorCode(err) == newsgrab.EINVALID {
			return nil, err
		}
		lastErr = err

		if attempt == len(delays) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return nil, lastErr
}

func (r *Runner) retryDelays() []time.Duration {
	if r.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return r.RetryDelays
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
