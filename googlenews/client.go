// Package googlenews provides the Google News implementation of
// newsgrab.SourceClient. The preferred mode reads the public RSS search
// feed; the HTML mode scrapes the search page and sweeps time-range
// variants of the query to collect more articles than one page returns.
package googlenews

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/bloom"
)

// DefaultBaseURL is the Google News host.
const DefaultBaseURL = "https://news.google.com"

// Mode selects how search results are obtained.
type Mode string

const (
	// ModeRSS reads the RSS search feed. Stable markup, no scraping.
	ModeRSS Mode = "rss"

	// ModeHTML scrapes the search page across several time ranges.
	ModeHTML Mode = "html"
)

// Sweep filter sizing. A full sweep tops out in the low hundreds of
// links, so a small filter keeps false positives negligible.
const (
	sweepExpectedLinks     = 2048
	sweepFalsePositiveRate = 0.001
)

// timeRanges are the query windows of the HTML sweep, widest last so
// recent articles are discovered first.
var timeRanges = []string{"", "when:1d", "when:7d", "when:1m", "when:1y"}

// countryParams maps a country code to the hl/gl/ceid parameter set
// Google News expects.
type countryParams struct {
	hl   string
	gl   string
	ceid string
}

var countries = map[string]countryParams{
	"US": {"en-US", "US", "US:en"},
	"IT": {"it-IT", "IT", "IT:it"},
	"UK": {"en-GB", "GB", "GB:en"},
	"DE": {"de-DE", "DE", "DE:de"},
	"FR": {"fr-FR", "FR", "FR:fr"},
	"ES": {"es-ES", "ES", "ES:es"},
	"CA": {"en-CA", "CA", "CA:en"},
	"AU": {"en-AU", "AU", "AU:en"},
	"JP": {"ja-JP", "JP", "JP:ja"},
	"BR": {"pt-BR", "BR", "BR:pt"},
	"IN": {"en-IN", "IN", "IN:en"},
	"RU": {"ru-RU", "RU", "RU:ru"},
	"CN": {"zh-CN", "CN", "CN:zh"},
}

// Ensure Client implements newsgrab.SourceClient at compile time.
var _ newsgrab.SourceClient = (*Client)(nil)

// Client searches Google News.
type Client struct {
	fetcher newsgrab.Fetcher
	baseURL string
	country string
	mode    Mode
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Google News host. Used in tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithCountry sets the country/language edition. Unknown codes fall
// back to US. Defaults to US.
func WithCountry(code string) Option {
	return func(c *Client) {
		c.country = strings.ToUpper(code)
	}
}

// WithMode selects RSS or HTML search. Defaults to ModeRSS.
func WithMode(mode Mode) Option {
	return func(c *Client) {
		c.mode = mode
	}
}

// NewClient creates a Google News source client using the given fetcher.
func NewClient(fetcher newsgrab.Fetcher, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		baseURL: DefaultBaseURL,
		country: "US",
		mode:    ModeRSS,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns newsgrab.SourceGoogleNews.
func (c *Client) Source() newsgrab.Source {
	return newsgrab.SourceGoogleNews
}

// Search returns up to limit item references for the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
	if limit <= 0 {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "search query required")
	}

	if c.mode == ModeHTML {
		return c.searchHTML(ctx, query, limit)
	}
	return c.searchRSS(ctx, query, limit)
}

func (c *Client) params() countryParams {
	if p, ok := countries[c.country]; ok {
		return p
	}
	return countries["US"]
}

// searchURL builds a search URL for the given path ("rss/search" or
// "search") and query.
func (c *Client) searchURL(path, query string) string {
	p := c.params()
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", p.hl)
	v.Set("gl", p.gl)
	v.Set("ceid", p.ceid)
	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, v.Encode())
}

func (c *Client) searchRSS(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
	body, err := c.fetcher.Fetch(ctx, c.searchURL("rss/search", query))
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EUNAVAILABLE, "google news search %q: %s", query, newsgrab.ErrorMessage(err))
	}

	refs, err := parseFeed(body, c.baseURL)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EUNAVAILABLE, "google news search %q: %s", query, newsgrab.ErrorMessage(err))
	}

	if len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

// searchHTML sweeps the search page across time ranges, deduplicating
// links with a sweep filter. Exact deduplication still happens in the
// pipeline's result set.
func (c *Client) searchHTML(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
	seen := bloom.NewSweepFilter(sweepExpectedLinks, sweepFalsePositiveRate)
	var refs []newsgrab.ItemReference
	fetched := false

	for _, window := range timeRanges {
		if len(refs) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q := query
		if window != "" {
			q = query + " " + window
		}

		body, err := c.fetcher.Fetch(ctx, c.searchURL("search", q))
		if err != nil {
			// A failed window is skipped; the sweep fails only when no
			// window could be reached at all.
			continue
		}
		fetched = true

		page, err := parseSearchPage(body, c.baseURL)
		if err != nil {
			continue
		}

		for _, ref := range page {
			if seen.Seen(ref.URL) {
				continue
			}
			refs = append(refs, ref)
			if len(refs) == limit {
				break
			}
		}
	}

	if !fetched {
		return nil, newsgrab.Errorf(newsgrab.EUNAVAILABLE, "google news search %q: all requests failed", query)
	}
	return refs, nil
}
