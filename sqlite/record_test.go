package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordService_FindRecordsByRun(t *testing.T) {
	t.Parallel()

	t.Run("returns records in position order", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		runs := sqlite.NewRunService(db)
		records := sqlite.NewRecordService(db)
		ctx := context.Background()

		run := testRun(newsgrab.SourceGoogleNews)
		require.NoError(t, runs.CreateRun(ctx, run, testRecords(newsgrab.SourceGoogleNews)))

		got, err := records.FindRecordsByRun(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "https://news.example.com/a", got[0].URL)
		assert.Equal(t, "First article", got[0].Title)
		assert.Equal(t, "Jane Smith", got[0].Author)
		assert.Equal(t, 0, got[0].Position)
		assert.Equal(t, 1, got[1].Position)
	})

	t.Run("round-trips the publication timestamp", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		runs := sqlite.NewRunService(db)
		records := sqlite.NewRecordService(db)
		ctx := context.Background()

		run := testRun(newsgrab.SourceGoogleNews)
		require.NoError(t, runs.CreateRun(ctx, run, testRecords(newsgrab.SourceGoogleNews)))

		got, err := records.FindRecordsByRun(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC), got[0].PublishedAt)
		// The second record has no publication date; the zero time comes back.
		assert.True(t, got[1].PublishedAt.IsZero())
	})

	t.Run("run without records returns empty slice", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		runs := sqlite.NewRunService(db)
		records := sqlite.NewRecordService(db)
		ctx := context.Background()

		run := testRun(newsgrab.SourceReddit)
		require.NoError(t, runs.CreateRun(ctx, run, nil))

		got, err := records.FindRecordsByRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown run returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		records := sqlite.NewRecordService(db)

		_, err := records.FindRecordsByRun(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, newsgrab.ENOTFOUND, newsgrab.ErrorCode(err))
	})
}
