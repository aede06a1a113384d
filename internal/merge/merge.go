// Package merge combines separately downloaded video and audio tracks into one MP4.
package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"grabarr/internal/domain/command"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/domain/regex"
)

// Transcoder merges a video-only and an audio-only file.
type Transcoder interface {
	// Available reports whether the transcoder can run on this host.
	Available() bool
	// Merge writes the combined file and returns its final path (always .mp4).
	Merge(ctx context.Context, videoPath, audioPath, outputBase, aacBitrate string) (string, error)
}

// MergeError is returned when the transcoder exits non-zero.
type MergeError struct {
	ExitCode   int
	Diagnostic string
	Err        error
}

func (e *MergeError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("ffmpeg failed (exit %d): %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("ffmpeg failed (exit %d): %s", e.ExitCode, e.Diagnostic)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// FFmpeg runs the ffmpeg binary as a blocking subprocess.
type FFmpeg struct {
	path string
}

// NewFFmpeg locates ffmpeg, preferring binPath when set.
//
// A missing binary is not an error; Available reports false instead.
func NewFFmpeg(binPath string) *FFmpeg {
	if binPath == "" {
		binPath = consts.FFmpegBinary
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		logger.Pl.D(1, "ffmpeg not found at %q: %v", binPath, err)
		return &FFmpeg{}
	}
	return &FFmpeg{path: resolved}
}

// Available implements Transcoder.
func (f *FFmpeg) Available() bool {
	return f != nil && f.path != ""
}

// Path returns the resolved binary location.
func (f *FFmpeg) Path() string {
	return f.path
}

// Merge implements Transcoder.
func (f *FFmpeg) Merge(ctx context.Context, videoPath, audioPath, outputBase, aacBitrate string) (string, error) {
	if !f.Available() {
		return "", errors.New("ffmpeg is not available")
	}
	if aacBitrate == "" {
		aacBitrate = consts.DefaultAACBitrate
	}

	out := ForceMP4(outputBase)
	args := BuildArgs(videoPath, audioPath, out, aacBitrate)
	logger.Pl.D(2, "Running %s %s", f.path, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		mErr := &MergeError{
			ExitCode:   -1,
			Diagnostic: truncate(strings.TrimSpace(stderr.String()), consts.MaxDiagnosticChars),
			Err:        err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			mErr.ExitCode = exitErr.ExitCode()
		}
		return "", mErr
	}
	return out, nil
}

// BuildArgs returns the ffmpeg argument list for a merge.
//
// Video is always stream-copied. WebM audio is re-encoded to AAC at aacBitrate,
// any other audio container is stream-copied.
func BuildArgs(videoPath, audioPath, outPath, aacBitrate string) []string {
	args := []string{
		command.Overwrite,
		command.Input, videoPath,
		command.Input, audioPath,
		command.Map, command.MapFirstVideo,
		command.Map, command.MapSecondAudio,
	}
	args = append(args, command.VideoCodecCopy...)

	if NeedsReencode(audioPath) {
		args = append(args, command.AudioToAAC...)
		args = append(args, command.AudioBitrate, aacBitrate)
	} else {
		args = append(args, command.AudioCodecCopy...)
	}

	return append(args, command.MovFlags, command.FastStart, outPath)
}

// NeedsReencode reports whether the audio file's container cannot be copied into MP4 as is.
func NeedsReencode(audioPath string) bool {
	return strings.EqualFold(filepath.Ext(audioPath), "."+consts.ExtWebM)
}

// ForceMP4 replaces any extension on p with .mp4.
func ForceMP4(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + "." + consts.ExtMP4
}

// ValidateBitrate checks an ffmpeg bitrate value such as "192k".
func ValidateBitrate(b string) error {
	if !regex.BitrateCompile().MatchString(b) {
		return fmt.Errorf("invalid AAC bitrate %q, expected a value like %q", b, consts.DefaultAACBitrate)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
