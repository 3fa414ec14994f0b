package main_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsgrab"
	main "github.com/fwojciec/newsgrab/cmd/newsgrab"
	"github.com/fwojciec/newsgrab/mock"
	"github.com/fwojciec/newsgrab/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMain returns a Main wired to a temp database and a runner backed
// by mocks, so grab works without network access.
func testMain(t *testing.T, dbPath string) *main.Main {
	t.Helper()

	refs := []newsgrab.ItemReference{
		{
			Source:      newsgrab.SourceGoogleNews,
			ID:          "a",
			URL:         "https://news.example.com/a",
			Title:       "First article",
			PublishedAt: time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			Source: newsgrab.SourceGoogleNews,
			ID:     "b",
			URL:    "https://news.example.com/b",
			Title:  "Second article",
		},
	}

	m := main.NewMain()
	m.DBPath = dbPath
	m.Runner = &pipeline.Runner{
		Sources: map[newsgrab.Source]newsgrab.SourceClient{
			newsgrab.SourceGoogleNews: &mock.SourceClient{
				SourceFn: func() newsgrab.Source { return newsgrab.SourceGoogleNews },
				SearchFn: func(ctx context.Context, query string, limit int) ([]newsgrab.ItemReference, error) {
					if limit < len(refs) {
						return refs[:limit], nil
					}
					return refs, nil
				},
			},
		},
		Extractors: map[newsgrab.Source]newsgrab.Extractor{
			newsgrab.SourceGoogleNews: &mock.Extractor{
				ExtractFn: func(body string) (*newsgrab.ExtractResult, error) {
					return &newsgrab.ExtractResult{Text: "Body of " + body}, nil
				},
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return url, nil
			},
		},
		RetryDelays: []time.Duration{},
	}
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no command returns error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("help prints usage", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "grab")
		assert.Contains(t, stdout.String(), "runs")
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"bogus"}, stdout, stderr)
		require.Error(t, err)
	})
}

func TestCmdGrab(t *testing.T) {
	t.Parallel()

	t.Run("prints records by default", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		m := testMain(t, dbPath)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"grab", "economy"}, stdout, stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Found 2 items")
		assert.Contains(t, out, "Saved 2 records (0 failed)")
		assert.Contains(t, out, "https://news.example.com/a")
		assert.Contains(t, out, "https://news.example.com/b")
	})

	t.Run("writes csv file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		csvPath := filepath.Join(dir, "out.csv")
		m := testMain(t, filepath.Join(dir, "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"grab", "economy", "--csv", csvPath}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote "+csvPath)

		data := readCSV(t, csvPath)
		require.Len(t, data, 3)
		assert.Equal(t, "url", data[0][0])
		assert.Equal(t, "https://news.example.com/a", data[1][0])
	})

	t.Run("save persists run and records", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		m := testMain(t, dbPath)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"grab", "economy", "--save"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Run ")

		// The run shows up in a fresh invocation against the same database.
		m2 := testMain(t, dbPath)
		stdout2 := &bytes.Buffer{}
		err = m2.Run(context.Background(), []string{"runs"}, stdout2, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout2.String(), "googlenews")
		assert.Contains(t, stdout2.String(), `"economy"`)
		assert.Contains(t, stdout2.String(), "saved=2 failed=0")
	})

	t.Run("limit caps items", func(t *testing.T) {
		t.Parallel()

		m := testMain(t, filepath.Join(t.TempDir(), "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"grab", "economy", "--limit", "1"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 records (0 failed)")
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		t.Parallel()

		m := testMain(t, filepath.Join(t.TempDir(), "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"grab", "economy", "--source", "usenet"}, stdout, stderr)
		require.Error(t, err)
	})
}

func TestCmdRuns(t *testing.T) {
	t.Parallel()

	t.Run("empty database prints hint", func(t *testing.T) {
		t.Parallel()

		m := testMain(t, filepath.Join(t.TempDir(), "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"runs"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs found")
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		m := testMain(t, dbPath)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		require.NoError(t, m.Run(context.Background(), []string{"grab", "economy", "--save"}, stdout, stderr))

		m2 := testMain(t, dbPath)
		stdout2 := &bytes.Buffer{}
		err := m2.Run(context.Background(), []string{"runs", "--source", "reddit"}, stdout2, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout2.String(), "No runs found")
	})
}

func TestCmdExport(t *testing.T) {
	t.Parallel()

	t.Run("exports saved run as csv", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		m := testMain(t, dbPath)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		require.NoError(t, m.Run(context.Background(), []string{"grab", "economy", "--save"}, stdout, stderr))

		runID := savedRunID(t, stdout.String())

		m2 := testMain(t, dbPath)
		stdout2 := &bytes.Buffer{}
		err := m2.Run(context.Background(), []string{"export", runID}, stdout2, stderr)
		require.NoError(t, err)

		rows, err := csv.NewReader(stdout2).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"url", "title", "body_text", "source", "timestamp", "author"}, rows[0])
		assert.Equal(t, "https://news.example.com/a", rows[1][0])
		assert.Equal(t, "2025-05-10T08:00:00Z", rows[1][4])
		assert.Equal(t, "", rows[2][4])
	})

	t.Run("unknown run id returns error", func(t *testing.T) {
		t.Parallel()

		m := testMain(t, filepath.Join(t.TempDir(), "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"export", "missing"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestCmdDelete(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		m := testMain(t, filepath.Join(t.TempDir(), "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"delete", "some-id"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes saved run", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		m := testMain(t, dbPath)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		require.NoError(t, m.Run(context.Background(), []string{"grab", "economy", "--save"}, stdout, stderr))

		runID := savedRunID(t, stdout.String())

		m2 := testMain(t, dbPath)
		stdout2 := &bytes.Buffer{}
		err := m2.Run(context.Background(), []string{"delete", runID, "--force"}, stdout2, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout2.String(), "Deleted run")

		m3 := testMain(t, dbPath)
		stdout3 := &bytes.Buffer{}
		require.NoError(t, m3.Run(context.Background(), []string{"runs"}, stdout3, stderr))
		assert.Contains(t, stdout3.String(), "No runs found")
	})

	t.Run("unknown run id returns error", func(t *testing.T) {
		t.Parallel()

		m := testMain(t, filepath.Join(t.TempDir(), "test.db"))
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"delete", "missing", "--force"}, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
	})
}

// savedRunID extracts the run ID printed by "grab --save".
func savedRunID(t *testing.T, output string) string {
	t.Helper()

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if id, ok := strings.CutPrefix(line, "Run "); ok {
			return id
		}
	}
	t.Fatalf("no run ID in output:\n%s", output)
	return ""
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
