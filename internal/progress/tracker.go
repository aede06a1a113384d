// Package progress reports byte-level transfer progress as periodic rate/ETA lines.
package progress

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/file"
)

const mebibyte = 1024 * 1024

// Tracker accumulates progress callbacks for exactly one transfer.
type Tracker struct {
	mu sync.Mutex
	w  io.Writer

	label    string
	interval time.Duration
	now      func() time.Time

	total      int64
	done       int64
	started    time.Time
	lastReport time.Time
	ended      bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithInterval changes the minimum time between reports.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		t.interval = d
	}
}

// New returns a tracker writing report lines to w.
//
// Label is shown before the first report, e.g. "video 1080p".
func New(w io.Writer, label string, opts ...Option) *Tracker {
	if w == nil {
		w = io.Discard
	}
	t := &Tracker{
		w:        w,
		label:    label,
		interval: consts.ProgressInterval,
		now:      time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Callback records one chunk of the transfer.
//
// Total is the declared stream size (0 if unknown) and is only captured on the first call.
func (t *Tracker) Callback(total, chunk, remaining int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if t.started.IsZero() {
		t.started = now
		if total > 0 {
			t.total = total
		}
		if t.label != "" {
			fmt.Fprintf(t.w, "%s %s\n", consts.ProgressPrefix, t.label)
		}
	}

	if t.total > 0 {
		t.done = t.total - max(remaining, 0)
	} else {
		t.done += chunk
	}

	if !t.lastReport.IsZero() && now.Sub(t.lastReport) < t.interval {
		return
	}
	t.report(now)
	t.lastReport = now
}

func (t *Tracker) report(now time.Time) {
	fmt.Fprintf(t.w, "\r%s %6.2f%% | %6.2f MB/s | ETA %s",
		consts.ProgressPrefix, t.percent(), t.rate(now), t.eta(now))
}

func (t *Tracker) percent() float64 {
	if t.total <= 0 {
		return 0
	}
	return float64(t.done) / float64(t.total) * 100
}

// rate returns MB/s since the first callback.
func (t *Tracker) rate(now time.Time) float64 {
	elapsed := now.Sub(t.started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(t.done) / mebibyte / elapsed
}

func (t *Tracker) eta(now time.Time) string {
	rate := t.rate(now)
	if rate <= 0 || t.total <= 0 {
		return "--:--"
	}
	secs := float64(t.total-t.done) / (rate * mebibyte)
	if math.IsInf(secs, 0) || math.IsNaN(secs) || secs > math.MaxInt32 {
		return "--:--"
	}
	return file.FormatDuration(int(secs))
}

// Done returns the bytes transferred so far.
func (t *Tracker) Done() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// End terminates the progress line. Safe to call more than once.
func (t *Tracker) End() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended {
		return
	}
	t.ended = true
	fmt.Fprintln(t.w)
}

// Writer adapts the tracker to an io.Copy pipeline for a stream of declared size total.
func (t *Tracker) Writer(total int64) io.Writer {
	return &countingWriter{t: t, total: total}
}

type countingWriter struct {
	t       *Tracker
	total   int64
	written int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n := len(p)
	c.written += int64(n)

	remaining := int64(0)
	if c.total > 0 {
		remaining = max(c.total-c.written, 0)
	}
	c.t.Callback(c.total, int64(n), remaining)
	return n, nil
}
