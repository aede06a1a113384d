package downloads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/file"
	"grabarr/internal/models"
	"grabarr/internal/progress"
)

// transfer copies one stream into dest, reporting progress on one line.
//
// The progress line is always terminated and a partial dest is removed on failure.
func (o *Orchestrator) transfer(ctx context.Context, res *models.Resource, s *models.Stream, dest string) (err error) {
	tracker := progress.New(o.opts.Progress, "")
	defer tracker.End()

	rc, size, err := o.opts.Provider.Open(ctx, res, s)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			logger.Pl.D(1, "Closing stream %d: %v", s.ID, cerr)
		}
	}()

	if size <= 0 {
		size = s.Size
	}
	if spaceErr := file.CheckFreeSpace(filepath.Dir(dest), size); spaceErr != nil {
		logger.Pl.W("%v", spaceErr)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, consts.PermsMediaFile)
	if err != nil {
		return fmt.Errorf("creating %q: %w", dest, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %q: %w", dest, cerr)
		}
		if err != nil {
			file.RemoveQuietly(dest)
		}
	}()

	n, err := io.Copy(io.MultiWriter(out, tracker.Writer(size)), contextReader{ctx: ctx, r: rc})
	o.opts.Metrics.Transferred(string(s.Kind), n)
	if err != nil {
		return fmt.Errorf("downloading stream %d: %w", s.ID, err)
	}
	if size > 0 && n != size {
		return fmt.Errorf("downloading stream %d: got %d of %d bytes", s.ID, n, size)
	}
	return nil
}

// contextReader stops a copy once ctx ends.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func baseName(p string) string {
	return filepath.Base(p)
}
