package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelectionMergeInvariant(t *testing.T) {
	t.Parallel()

	video := &Stream{Kind: KindVideoOnly, Height: 1080}
	audio := &Stream{Kind: KindAudioOnly, Bitrate: 160}
	prog := &Stream{Kind: KindProgressive, Height: 720}

	tests := []struct {
		name      string
		primary   *Stream
		secondary *Stream
		want      bool
	}{
		{"video and audio", video, audio, true},
		{"single video", video, nil, false},
		{"single audio", audio, nil, false},
		{"progressive", prog, nil, false},
		{"progressive with audio", prog, audio, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewSelection(tt.primary, tt.secondary).MergeRequired)
		})
	}
}

func TestStreamHelpers(t *testing.T) {
	t.Parallel()

	s := &Stream{Kind: KindVideoOnly, Height: 720, Subtype: "WebM"}
	assert.Equal(t, "720p", s.Resolution())
	assert.Equal(t, "webm", s.Ext("mp4"))
	assert.Equal(t, "720p", s.Describe())

	a := &Stream{Kind: KindAudioOnly, Bitrate: 128}
	assert.Equal(t, "mp4", a.Ext("mp4"))
	assert.Equal(t, "128kbps", a.Describe())

	var nilStream *Stream
	assert.Equal(t, "m4a", nilStream.Ext("m4a"))
	assert.False(t, nilStream.IsProgressive())
}

func TestResultVariants(t *testing.T) {
	t.Parallel()

	ok := Success("/tmp/a.mp4", 2)
	assert.True(t, ok.OK())
	assert.Equal(t, ResultSuccess, ok.Kind())
	assert.Equal(t, "/tmp/a.mp4", ok.Path())
	assert.Equal(t, 2, ok.Attempts())

	gone := Exhausted(3)
	assert.False(t, gone.OK())
	assert.Equal(t, "exhausted", gone.Kind().String())
	assert.Empty(t, gone.Path())

	var zero Result
	assert.False(t, zero.OK())
}

func TestDownloadRequestDefaults(t *testing.T) {
	t.Parallel()

	r := DownloadRequest{URL: "a"}
	assert.Equal(t, "192k", r.Bitrate())
	assert.Equal(t, "combined", r.Mode())
	assert.Equal(t, "b", r.WithURL("b").URL)
	assert.Equal(t, "a", r.URL)
	assert.Equal(t, "audio-only", DownloadRequest{AudioOnly: true}.Mode())
}
