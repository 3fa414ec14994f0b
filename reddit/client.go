// Package reddit provides the Reddit implementations of
// newsgrab.SourceClient and newsgrab.Extractor. Listings and posts are
// read from Reddit's JSON endpoints; no HTML scraping is involved.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/newsgrab"
)

// DefaultBaseURL serves the listing JSON. old.reddit is less aggressive
// about blocking anonymous API access than www.reddit.com.
const DefaultBaseURL = "https://old.reddit.com"

// canonicalHost is used for record URLs regardless of which host served
// the listing, so deduplication is stable across fetch hosts.
const canonicalHost = "https://www.reddit.com"

var postURLRe = regexp.MustCompile(`/comments/([a-z0-9]+)(?:/|$)`)

// Ensure Client implements newsgrab.SourceClient at compile time.
var _ newsgrab.SourceClient = (*Client)(nil)

// Client searches Reddit. A query is either a subreddit name
// (optionally "r/"-prefixed) or a full post URL, which yields a single
// item reference.
type Client struct {
	fetcher   newsgrab.Fetcher
	baseURL   string
	sort      string
	timeRange string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the listing host. Used in tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithSort sets the listing sort: hot, new, top or rising.
// Defaults to hot.
func WithSort(sort string) Option {
	return func(c *Client) {
		c.sort = sort
	}
}

// WithTimeRange sets the time range for the top sort: day, week, month
// or year. Ignored for other sorts. Defaults to week.
func WithTimeRange(t string) Option {
	return func(c *Client) {
		c.timeRange = t
	}
}

// NewClient creates a Reddit source client using the given fetcher.
func NewClient(fetcher newsgrab.Fetcher, opts ...Option) *Client {
	c := &Client{
		fetcher:   fetcher,
		baseURL:   DefaultBaseURL,
		sort:      "hot",
		timeRange: "week",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns newsgrab.SourceReddit.
func (c *Client) Source() newsgrab.Source {
	return newsgrab.SourceReddit
}

// Search returns up to limit item references for the query. Upstream
// failures are reported as EUNAVAILABLE; a subreddit with no posts is
// an empty, non-error result.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
	if limit <= 0 {
		return nil, nil
	}

	if m := postURLRe.FindStringSubmatch(query); m != nil && strings.Contains(query, "reddit.com") {
		ref, err := c.postRef(query, m[1])
		if err != nil {
			return nil, err
		}
		return []newsgrab.ItemReference{ref}, nil
	}

	return c.listSubreddit(ctx, query, limit)
}

// postRef builds a single item reference from a post URL.
func (c *Client) postRef(rawURL, postID string) (newsgrab.ItemReference, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return newsgrab.ItemReference{}, newsgrab.Errorf(newsgrab.EINVALID, "invalid Reddit post URL %q", rawURL)
	}
	path := strings.TrimSuffix(u.Path, "/")
	return newsgrab.ItemReference{
		Source:   newsgrab.SourceReddit,
		ID:       postID,
		URL:      canonicalHost + path + "/",
		FetchURL: c.baseURL + path + ".json?raw_json=1",
	}, nil
}

func (c *Client) listSubreddit(ctx context.Context, name string, limit int) ([]newsgrab.ItemReference, error) {
	sub := strings.Trim(strings.TrimPrefix(strings.TrimPrefix(name, "/r/"), "r/"), "/")
	if sub == "" {
		return nil, newsgrab.Errorf(newsgrab.EINVALID, "subreddit name required")
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprint(min(limit, 100)))
	params.Set("raw_json", "1")
	if c.sort == "top" {
		params.Set("t", c.timeRange)
	}
	listURL := fmt.Sprintf("%s/r/%s/%s/.json?%s", c.baseURL, sub, c.sort, params.Encode())

	body, err := c.fetcher.Fetch(ctx, listURL)
	if err != nil {
		return nil, newsgrab.Errorf(newsgrab.EUNAVAILABLE, "reddit search r/%s: %s", sub, newsgrab.ErrorMessage(err))
	}

	var list listing
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		return nil, newsgrab.Errorf(newsgrab.EUNAVAILABLE, "reddit search r/%s: malformed listing: %s", sub, err)
	}

	refs := make([]newsgrab.ItemReference, 0, len(list.Data.Children))
	for _, child := range list.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post postData
		if err := json.Unmarshal(child.Data, &post); err != nil {
			continue
		}
		if post.Permalink == "" {
			continue
		}
		path := strings.TrimSuffix(post.Permalink, "/")
		refs = append(refs, newsgrab.ItemReference{
			Source:      newsgrab.SourceReddit,
			ID:          post.ID,
			URL:         canonicalHost + path + "/",
			FetchURL:    c.baseURL + path + ".json?raw_json=1",
			Title:       newsgrab.NormalizeText(post.Title),
			Site:        "r/" + post.Subreddit,
			Author:      post.Author,
			PublishedAt: epochTime(post.CreatedUTC),
		})
		if len(refs) == limit {
			break
		}
	}

	return refs, nil
}

// epochTime converts Reddit's fractional epoch seconds; zero stays zero.
func epochTime(sec float64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}

// listing is the common wrapper of Reddit's JSON API responses.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

// thing defers decoding of its payload: t3 children carry posts,
// t1 children carry comments.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	SelfText    string  `json:"selftext"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

type commentData struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
}
