package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgsAudioPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		audio string
		want  []string
	}{
		{
			name:  "webm reencodes to aac",
			audio: "t.audio.webm",
			want:  []string{"-c:a", "aac", "-b:a", "160k"},
		},
		{
			name:  "upper case webm reencodes",
			audio: "t.audio.WEBM",
			want:  []string{"-c:a", "aac", "-b:a", "160k"},
		},
		{
			name:  "mp4 audio is copied",
			audio: "t.audio.mp4",
			want:  []string{"-c:a", "copy"},
		},
		{
			name:  "m4a audio is copied",
			audio: "t.audio.m4a",
			want:  []string{"-c:a", "copy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := BuildArgs("t.video.mp4", tt.audio, "t.mp4", "160k")

			head := []string{"-y", "-i", "t.video.mp4", "-i", tt.audio,
				"-map", "0:v:0", "-map", "1:a:0", "-c:v", "copy"}
			tail := []string{"-movflags", "+faststart", "t.mp4"}

			want := append(append(head, tt.want...), tail...)
			assert.Equal(t, want, args)
		})
	}
}

func TestForceMP4(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/d/clip.mp4", ForceMP4("/d/clip.mkv"))
	assert.Equal(t, "/d/clip.mp4", ForceMP4("/d/clip"))
	assert.Equal(t, "/d/clip (1).mp4", ForceMP4("/d/clip (1).mp4"))
}

func TestValidateBitrate(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"192k", "64k", "320k"} {
		assert.NoError(t, ValidateBitrate(ok), ok)
	}
	for _, bad := range []string{"", "192", "k", "0k", "192K", "19.2k", "-1k"} {
		assert.Error(t, ValidateBitrate(bad), bad)
	}
}

func TestUnavailableFFmpeg(t *testing.T) {
	t.Parallel()

	f := NewFFmpeg(filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	assert.False(t, f.Available())

	_, err := f.Merge(context.Background(), "v.mp4", "a.m4a", "out.mp4", "")
	assert.Error(t, err)
}

// fakeFFmpeg writes a shell script standing in for the ffmpeg binary.
func fakeFFmpeg(t *testing.T, body string) *FFmpeg {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script transcoder")
	}

	bin := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	f := NewFFmpeg(bin)
	require.True(t, f.Available())
	return f
}

func TestMergeSuccess(t *testing.T) {
	t.Parallel()

	// The last argument is the output file.
	f := fakeFFmpeg(t, `for last; do :; done; echo merged > "$last"`)
	dir := t.TempDir()

	out, err := f.Merge(context.Background(),
		filepath.Join(dir, "t.video.mp4"), filepath.Join(dir, "t.audio.webm"),
		filepath.Join(dir, "t.mkv"), "192k")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "t.mp4"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "merged\n", string(data))
}

func TestMergeFailureTruncatesDiagnostic(t *testing.T) {
	t.Parallel()

	f := fakeFFmpeg(t, `i=0; while [ $i -lt 80 ]; do printf 'codec error ' >&2; i=$((i+1)); done; exit 3`)

	_, err := f.Merge(context.Background(), "v.mp4", "a.m4a", "out", "192k")
	require.Error(t, err)

	var mErr *MergeError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, 3, mErr.ExitCode)
	assert.Len(t, mErr.Diagnostic, 500)
	assert.True(t, strings.HasPrefix(mErr.Diagnostic, "codec error"))
	assert.Contains(t, err.Error(), "exit 3")
}

func writeBoxes(t *testing.T, boxes ...mp4.Box) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "out.mp4")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	for _, b := range boxes {
		require.NoError(t, b.Encode(f))
	}
	return p
}

func TestVerifyFastStart(t *testing.T) {
	t.Parallel()

	newMoov := func() *mp4.MoovBox {
		moov := mp4.NewMoovBox()
		moov.AddChild(mp4.CreateMvhd())
		return moov
	}
	ftyp := func() *mp4.FtypBox { return mp4.NewFtyp("isom", 0x200, []string{"isom", "mp41"}) }
	mdat := func() *mp4.MdatBox { return &mp4.MdatBox{Data: []byte("payload")} }

	front := writeBoxes(t, ftyp(), newMoov(), mdat())
	ok, err := VerifyFastStart(front)
	require.NoError(t, err)
	assert.True(t, ok)

	back := writeBoxes(t, ftyp(), mdat(), newMoov())
	ok, err = VerifyFastStart(back)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyFastStart(writeBoxes(t, ftyp()))
	assert.Error(t, err)

	_, err = VerifyFastStart(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

// A moov holding only mvhd has no tracks; the check must not need them.
func TestVerifyFastStartTracklessMoov(t *testing.T) {
	t.Parallel()

	moov := mp4.NewMoovBox()
	moov.AddChild(mp4.CreateMvhd())
	p := writeBoxes(t,
		mp4.NewFtyp("isom", 0x200, []string{"isom"}),
		moov,
		&mp4.MdatBox{Data: make([]byte, 4096)},
	)

	var (
		ok  bool
		err error
	)
	require.NotPanics(t, func() { ok, err = VerifyFastStart(p) })
	require.NoError(t, err)
	assert.True(t, ok)
}
