package downloads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/file"
	"grabarr/internal/merge"
	"grabarr/internal/models"
	"grabarr/internal/selector"
)

// attemptRun is one pass of the state machine.
type attemptRun struct {
	o     *Orchestrator
	req   models.DownloadRequest
	state State
	res   *models.Resource
}

func (a *attemptRun) to(s State) {
	logger.Pl.D(2, "Download state %s -> %s", a.state, s)
	a.state = s
}

func (a *attemptRun) run(ctx context.Context) (path string, err error) {
	defer func() {
		if err != nil {
			a.to(StateFailed)
		}
	}()

	dir, err := outputDir(a.req)
	if err != nil {
		return "", err
	}

	a.res, err = a.o.opts.Provider.Fetch(ctx, a.req.URL)
	if err != nil {
		return "", err
	}
	a.to(StateMetadataFetched)

	title := file.SanitizeName(a.res.Title, consts.DefaultMaxNameLen)
	logger.Pl.I("Video: %q | Author: %s | Duration: %s",
		title, a.res.Author, file.FormatDuration(int(a.res.Duration.Seconds())))

	sel, err := selector.Select(a.res.Streams, a.req.Quality, a.req.AudioOnly, a.req.VideoOnly)
	if err != nil {
		return "", err
	}
	a.to(StateStreamsSelected)

	switch {
	case a.req.AudioOnly:
		a.to(StateAudioOnlyDownload)
		path, err = a.audioOnly(ctx, dir, title, sel)
	case !sel.MergeRequired || a.req.SkipMerge:
		a.to(StateSingleStreamDownload)
		path, err = a.single(ctx, dir, title, sel.Single(), "")
	default:
		a.to(StateMergeDownload)
		path, err = a.merged(ctx, dir, title, sel)
	}
	if err != nil {
		return "", err
	}

	a.to(StateDone)
	return path, nil
}

func (a *attemptRun) audioOnly(ctx context.Context, dir, title string, sel *models.Selection) (string, error) {
	dest := file.OutputPath(dir, title, "", consts.ExtM4A)
	logger.Pl.I("Downloading audio -> %s", baseName(dest))
	if err := a.o.transfer(ctx, a.res, sel.Primary, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (a *attemptRun) single(ctx context.Context, dir, title string, s *models.Stream, note string) (string, error) {
	dest := file.OutputPath(dir, title, "", s.Ext(consts.ExtMP4))
	if note == "" {
		note = s.Describe()
	}
	logger.Pl.I("Downloading (%s) -> %s", note, baseName(dest))
	if err := a.o.transfer(ctx, a.res, s, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (a *attemptRun) merged(ctx context.Context, dir, title string, sel *models.Selection) (string, error) {
	tc := a.o.opts.Transcoder
	if tc == nil || !tc.Available() {
		logger.Pl.W("ffmpeg not found, falling back to the best progressive stream if one exists")
		prog, ok := selector.BestProgressive(a.res.Streams)
		if !ok {
			return "", ErrNoTranscoderFallback
		}
		return a.single(ctx, dir, title, prog, "progressive fallback")
	}

	videoPath := file.OutputPath(dir, title, consts.VideoTempTag, sel.Primary.Ext(consts.ExtMP4))
	logger.Pl.I("Downloading video -> %s", baseName(videoPath))
	if err := a.o.transfer(ctx, a.res, sel.Primary, videoPath); err != nil {
		return "", err
	}

	audioPath := file.OutputPath(dir, title, consts.AudioTempTag, sel.Secondary.Ext(consts.ExtM4A))
	logger.Pl.I("Downloading audio -> %s", baseName(audioPath))
	if err := a.o.transfer(ctx, a.res, sel.Secondary, audioPath); err != nil {
		file.RemoveQuietly(videoPath)
		return "", err
	}

	final := file.OutputPath(dir, title, "", consts.ExtMP4)
	logger.Pl.I("Merging (ffmpeg) -> %s", baseName(final))

	start := time.Now()
	merged, err := tc.Merge(ctx, videoPath, audioPath, final, a.req.Bitrate())
	a.o.opts.Metrics.Merged(time.Since(start))

	// Temporaries go whether or not the merge worked; the next attempt downloads again.
	file.RemoveQuietly(videoPath, audioPath)
	if err != nil {
		file.RemoveQuietly(final)
		var mErr *merge.MergeError
		if errors.As(err, &mErr) {
			return "", fmt.Errorf("merging %q: %w", baseName(final), mErr)
		}
		return "", err
	}

	if ok, vErr := merge.VerifyFastStart(merged); vErr != nil {
		logger.Pl.D(1, "Could not verify fast start layout of %q: %v", merged, vErr)
	} else if !ok {
		logger.Pl.W("Merged file %q does not have its index at the front", baseName(merged))
	}
	return merged, nil
}
