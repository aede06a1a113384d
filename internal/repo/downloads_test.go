package repo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"grabarr/internal/database"
	"grabarr/internal/domain/consts"
	"grabarr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *DownloadStore {
	t.Helper()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return GetDownloadStore(db.DB)
}

func record(id string, created time.Time, status consts.DownloadStatus) *models.DownloadRecord {
	return &models.DownloadRecord{
		ID:         id,
		URL:        "https://example.com/watch?v=" + id,
		Title:      "Title " + id,
		Quality:    "720p",
		Mode:       consts.ModeCombined,
		Status:     status,
		FilePath:   "/tmp/" + id + ".mp4",
		FileSize:   42,
		Attempts:   1,
		CreatedAt:  created,
		FinishedAt: created.Add(time.Minute),
	}
}

func TestSaveAndGetDownload(t *testing.T) {
	t.Parallel()

	ds := openStore(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, ds.SaveDownload(ctx, record("a", created, consts.DLStatusSucceeded)))

	got, err := ds.GetDownload(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Title a", got.Title)
	assert.Equal(t, consts.DLStatusSucceeded, got.Status)
	assert.EqualValues(t, 42, got.FileSize)
	assert.True(t, created.Equal(got.CreatedAt), "created_at round trip: %v", got.CreatedAt)
	assert.True(t, created.Add(time.Minute).Equal(got.FinishedAt))

	_, err = ds.GetDownload(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSaveDownloadReplaces(t *testing.T) {
	t.Parallel()

	ds := openStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := record("a", now, consts.DLStatusExhausted)
	rec.Error = "no suitable stream found"
	require.NoError(t, ds.SaveDownload(ctx, rec))

	rec.Status = consts.DLStatusSucceeded
	rec.Error = ""
	require.NoError(t, ds.SaveDownload(ctx, rec))

	all, err := ds.ListDownloads(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, consts.DLStatusSucceeded, all[0].Status)
}

func TestSaveDownloadRejectsInvalidStatus(t *testing.T) {
	t.Parallel()

	ds := openStore(t)
	rec := record("x", time.Now(), "pending")
	assert.Error(t, ds.SaveDownload(context.Background(), rec))
	assert.Error(t, ds.SaveDownload(context.Background(), &models.DownloadRecord{}))
}

func TestListDownloadsSinceAndLimit(t *testing.T) {
	t.Parallel()

	ds := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, ds.SaveDownload(ctx, record(id, base.AddDate(0, 0, i*10), consts.DLStatusSucceeded)))
	}

	all, err := ds.ListDownloads(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[2].ID)

	recent, err := ds.ListDownloads(ctx, base.AddDate(0, 0, 5), 0)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	one, err := ds.ListDownloads(ctx, time.Time{}, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "new", one[0].ID)
}
