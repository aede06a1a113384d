package downloads

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/file"
	"grabarr/internal/models"

	"github.com/google/uuid"
)

// Orchestrator downloads one resource at a time with whole-attempt retries.
//
// Not safe for concurrent use: output names are allocated by probing the directory.
type Orchestrator struct {
	opts Options
}

// New returns an Orchestrator, filling unset options from DefaultOptions.
func New(opts Options) (*Orchestrator, error) {
	if opts.Provider == nil {
		return nil, errors.New("orchestrator needs a metadata provider")
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions.MaxAttempts
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = DefaultOptions.BackoffBase
	}
	if opts.Progress == nil {
		opts.Progress = os.Stdout
	}
	if opts.Sleep == nil {
		opts.Sleep = contextSleep
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{opts: opts}, nil
}

// Backoff returns the wait after a failed attempt: base^attempt seconds.
func (o *Orchestrator) Backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(o.opts.BackoffBase, float64(attempt)) * float64(time.Second))
}

// Download runs up to MaxAttempts attempts and returns Success or Exhausted.
//
// Every failure, deterministic selection failures included, restarts the whole
// sequence from the metadata lookup.
func (o *Orchestrator) Download(ctx context.Context, req models.DownloadRequest) models.Result {
	defer o.opts.Metrics.Started()()

	rec := &models.DownloadRecord{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Quality:   req.Quality,
		Mode:      req.Mode(),
		CreatedAt: o.opts.Now(),
	}

	var (
		lastErr  error
		attempts int
	)
	for attempt := 1; attempt <= o.opts.MaxAttempts; attempt++ {
		attempts = attempt
		o.opts.Metrics.Attempt()
		logger.Pl.D(1, "Starting download attempt %d/%d for URL: %s", attempt, o.opts.MaxAttempts, req.URL)

		a := &attemptRun{o: o, req: req}
		path, err := a.run(ctx)
		if a.res != nil {
			rec.Title = a.res.Title
		}

		if err == nil {
			logger.Pl.S("Saved %q", path)
			o.finish(ctx, rec, consts.DLStatusSucceeded, path, attempts, nil)
			return models.Success(path, attempts)
		}

		lastErr = err
		logger.Pl.W("Attempt %d failed: %v", attempt, err)
		if attempt == o.opts.MaxAttempts {
			break
		}

		wait := o.Backoff(attempt)
		logger.Pl.I("Waiting %.1fs before retrying...", wait.Seconds())
		if err := o.opts.Sleep(ctx, wait); err != nil {
			lastErr = err
			break
		}
	}

	logger.Pl.E("Failed after %d attempts: %v", attempts, lastErr)
	o.finish(ctx, rec, consts.DLStatusExhausted, "", attempts, lastErr)
	return models.Exhausted(attempts)
}

// finish records the outcome in metrics and the history store.
func (o *Orchestrator) finish(ctx context.Context, rec *models.DownloadRecord, status consts.DownloadStatus, path string, attempts int, err error) {
	rec.Status = status
	rec.FilePath = path
	rec.Attempts = attempts
	rec.FinishedAt = o.opts.Now()
	if err != nil {
		rec.Error = err.Error()
	}
	if path != "" {
		if info, statErr := os.Stat(path); statErr == nil {
			rec.FileSize = info.Size()
		}
	}

	o.opts.Metrics.Finished(string(status), rec.FileSize)

	if o.opts.History == nil {
		return
	}
	if err := o.opts.History.SaveDownload(context.WithoutCancel(ctx), rec); err != nil {
		logger.Pl.E("Could not record download of %q in history: %v", rec.URL, err)
	}
}

// outputDir returns the request directory, creating it if needed.
func outputDir(req models.DownloadRequest) (string, error) {
	dir := req.OutputDir
	if dir == "" {
		dir = file.ResolveDefaultOutputDir()
	}
	if err := file.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("output directory: %w", err)
	}
	return dir, nil
}
