// Package repo holds the database stores.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/models"

	"github.com/Masterminds/squirrel"
)

// DownloadStore holds a pointer to the sql.DB.
type DownloadStore struct {
	DB *sql.DB
}

// GetDownloadStore returns a download store instance with injected database.
func GetDownloadStore(db *sql.DB) *DownloadStore {
	return &DownloadStore{
		DB: db,
	}
}

var downloadColumns = []string{
	consts.QDLID,
	consts.QDLURL,
	consts.QDLTitle,
	consts.QDLQuality,
	consts.QDLMode,
	consts.QDLStatus,
	consts.QDLFilePath,
	consts.QDLFileSize,
	consts.QDLAttempts,
	consts.QDLError,
	consts.QDLCreatedAt,
	consts.QDLFinishedAt,
}

// SaveDownload inserts or replaces a history record.
func (ds *DownloadStore) SaveDownload(ctx context.Context, rec *models.DownloadRecord) (err error) {
	if rec == nil || rec.ID == "" {
		return errors.New("download record needs an ID")
	}

	tx, err := ds.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("Panic rollback failed for download with URL %q: %v", rec.URL, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("Error rolling back download record for URL %q (original error: %v): %v", rec.URL, err, rbErr)
			}
		}
	}()

	query := squirrel.
		Replace(consts.DBDownloads).
		Columns(downloadColumns...).
		Values(
			rec.ID,
			rec.URL,
			rec.Title,
			rec.Quality,
			rec.Mode,
			string(rec.Status),
			rec.FilePath,
			rec.FileSize,
			rec.Attempts,
			rec.Error,
			rec.CreatedAt.UTC(),
			rec.FinishedAt.UTC(),
		).
		RunWith(tx)

	if _, err = query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to save download %q: %w", rec.URL, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListDownloads returns records newest first, created at or after since (zero for all).
//
// limit <= 0 returns every match.
func (ds *DownloadStore) ListDownloads(ctx context.Context, since time.Time, limit int) ([]*models.DownloadRecord, error) {
	q := squirrel.
		Select(downloadColumns...).
		From(consts.DBDownloads).
		OrderBy(consts.QDLCreatedAt + " DESC")

	if !since.IsZero() {
		q = q.Where(squirrel.GtOrEq{consts.QDLCreatedAt: since.UTC()})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(ds.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Pl.E("Failed to close rows: %v", err)
		}
	}()

	var out []*models.DownloadRecord
	for rows.Next() {
		rec, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate downloads: %w", err)
	}
	return out, nil
}

// GetDownload returns one record by ID, or sql.ErrNoRows.
func (ds *DownloadStore) GetDownload(ctx context.Context, id string) (*models.DownloadRecord, error) {
	row := squirrel.
		Select(downloadColumns...).
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QDLID: id}).
		RunWith(ds.DB).
		QueryRowContext(ctx)

	rec, err := scanDownload(row)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDownload(s scanner) (*models.DownloadRecord, error) {
	var (
		rec                  models.DownloadRecord
		status               string
		title, quality, path sql.NullString
		errMsg               sql.NullString
		finished             sql.NullTime
	)
	if err := s.Scan(
		&rec.ID,
		&rec.URL,
		&title,
		&quality,
		&rec.Mode,
		&status,
		&path,
		&rec.FileSize,
		&rec.Attempts,
		&errMsg,
		&rec.CreatedAt,
		&finished,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan download: %w", err)
	}

	rec.Title = title.String
	rec.Quality = quality.String
	rec.FilePath = path.String
	rec.Error = errMsg.String
	rec.Status = consts.DownloadStatus(status)
	if finished.Valid {
		rec.FinishedAt = finished.Time
	}
	return &rec, nil
}
