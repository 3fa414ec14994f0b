package reddit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/newsgrab"
	grabhttp "github.com/fwojciec/newsgrab/http"
	"github.com/fwojciec/newsgrab/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingJSON = `{
	"kind": "Listing",
	"data": {
		"children": [
			{"kind": "t3", "data": {
				"id": "abc123",
				"title": "First post &amp; best post",
				"author": "alice",
				"subreddit": "golang",
				"permalink": "/r/golang/comments/abc123/first_post/",
				"selftext": "hello",
				"created_utc": 1700000000.0,
				"score": 42,
				"num_comments": 3
			}},
			{"kind": "t3", "data": {
				"id": "def456",
				"title": "Second post",
				"author": "bob",
				"subreddit": "golang",
				"permalink": "/r/golang/comments/def456/second_post/",
				"created_utc": 1700000100.0
			}}
		]
	}
}`

func TestClient_Search(t *testing.T) {
	t.Parallel()

	t.Run("lists subreddit posts", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(listingJSON))
		}))
		defer server.Close()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher, reddit.WithBaseURL(server.URL))

		refs, err := client.Search(context.Background(), "r/golang", 10)
		require.NoError(t, err)
		require.Len(t, refs, 2)

		assert.Equal(t, "/r/golang/hot/.json", gotPath)
		assert.Contains(t, gotQuery, "limit=10")
		assert.Contains(t, gotQuery, "raw_json=1")

		assert.Equal(t, newsgrab.SourceReddit, refs[0].Source)
		assert.Equal(t, "abc123", refs[0].ID)
		assert.Equal(t, "https://www.reddit.com/r/golang/comments/abc123/first_post/", refs[0].URL)
		assert.Equal(t, server.URL+"/r/golang/comments/abc123/first_post.json?raw_json=1", refs[0].FetchURL)
		assert.Equal(t, "First post & best post", refs[0].Title)
		assert.Equal(t, "r/golang", refs[0].Site)
		assert.Equal(t, "alice", refs[0].Author)
		assert.Equal(t, int64(1700000000), refs[0].PublishedAt.Unix())
	})

	t.Run("truncates to limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(listingJSON))
		}))
		defer server.Close()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher, reddit.WithBaseURL(server.URL))

		refs, err := client.Search(context.Background(), "golang", 1)
		require.NoError(t, err)
		assert.Len(t, refs, 1)
	})

	t.Run("limit zero issues no request", func(t *testing.T) {
		t.Parallel()

		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher, reddit.WithBaseURL(server.URL))

		refs, err := client.Search(context.Background(), "golang", 0)
		require.NoError(t, err)
		assert.Empty(t, refs)
		assert.Zero(t, requests)
	})

	t.Run("empty listing is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[]}}`))
		}))
		defer server.Close()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher, reddit.WithBaseURL(server.URL))

		refs, err := client.Search(context.Background(), "emptysub", 10)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("unreachable upstream returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher, reddit.WithBaseURL(server.URL))

		_, err := client.Search(context.Background(), "golang", 10)
		require.Error(t, err)
		assert.Equal(t, newsgrab.EUNAVAILABLE, newsgrab.ErrorCode(err))
	})

	t.Run("top sort sends time range", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(listingJSON))
		}))
		defer server.Close()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher,
			reddit.WithBaseURL(server.URL),
			reddit.WithSort("top"),
			reddit.WithTimeRange("month"),
		)

		_, err := client.Search(context.Background(), "golang", 5)
		require.NoError(t, err)
		assert.Contains(t, gotQuery, "t=month")
	})

	t.Run("post URL yields a single reference", func(t *testing.T) {
		t.Parallel()

		fetcher := grabhttp.NewFetcher()
		defer fetcher.Close()
		client := reddit.NewClient(fetcher, reddit.WithBaseURL("https://old.reddit.com"))

		refs, err := client.Search(context.Background(),
			"https://www.reddit.com/r/golang/comments/abc123/first_post/", 10)
		require.NoError(t, err)
		require.Len(t, refs, 1)

		assert.Equal(t, "abc123", refs[0].ID)
		assert.Equal(t, "https://www.reddit.com/r/golang/comments/abc123/first_post/", refs[0].URL)
		assert.Equal(t, "https://old.reddit.com/r/golang/comments/abc123/first_post.json?raw_json=1", refs[0].FetchURL)
	})
}
