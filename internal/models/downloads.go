package models

import (
	"time"

	"grabarr/internal/domain/consts"
)

// DownloadRecord is one row of the download history.
//
// Matches the order of the DB table, do not alter.
type DownloadRecord struct {
	ID         string                `json:"id" db:"id"`
	URL        string                `json:"url" db:"url"`
	Title      string                `json:"title" db:"title"`
	Quality    string                `json:"quality" db:"quality"`
	Mode       string                `json:"mode" db:"mode"`
	Status     consts.DownloadStatus `json:"status" db:"status"`
	FilePath   string                `json:"file_path" db:"file_path"`
	FileSize   int64                 `json:"file_size" db:"file_size"`
	Attempts   int                   `json:"attempts" db:"attempts"`
	Error      string                `json:"error,omitempty" db:"error_message"`
	CreatedAt  time.Time             `json:"created_at" db:"created_at"`
	FinishedAt time.Time             `json:"finished_at" db:"finished_at"`
}

// BatchSummary reports the outcome of a collection run.
type BatchSummary struct {
	Total     int      `json:"total"`
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
	Files     []string `json:"files"`
}

// OK reports whether every item succeeded.
func (b *BatchSummary) OK() bool {
	return b != nil && len(b.Failed) == 0 && len(b.Succeeded) == b.Total
}
