// Package downloads drives one resource from metadata lookup to a finished media file.
package downloads

import (
	"context"
	"errors"
	"io"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/merge"
	"grabarr/internal/metrics"
	"grabarr/internal/models"
	"grabarr/internal/provider"
)

// ErrNoTranscoderFallback is returned when a merge is needed, no transcoder is
// installed and the catalog has no progressive stream to fall back to.
var ErrNoTranscoderFallback = errors.New("no transcoder and no combined stream available")

// HistoryStore persists finished downloads.
type HistoryStore interface {
	SaveDownload(ctx context.Context, rec *models.DownloadRecord) error
}

// SleepFunc waits for d, returning early with an error when ctx ends.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options holds configuration for an Orchestrator.
type Options struct {
	Provider   provider.Provider
	Transcoder merge.Transcoder

	// Optional collaborators.
	History  HistoryStore
	Metrics  *metrics.Metrics
	Progress io.Writer
	Sleep    SleepFunc
	Now      func() time.Time

	MaxAttempts int
	BackoffBase float64
}

// DefaultOptions provides the retry defaults.
var DefaultOptions = Options{
	MaxAttempts: consts.DefaultMaxAttempts,
	BackoffBase: consts.RetryBackoffBase,
}

// contextSleep waits on a timer or the context, whichever ends first.
func contextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
