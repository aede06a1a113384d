// Package models holds the data types shared between grabarr packages.
package models

import (
	"fmt"
	"strings"
	"time"

	"grabarr/internal/domain/consts"
)

// StreamKind is the media kind of a stream descriptor.
type StreamKind string

// Stream kinds.
const (
	KindProgressive StreamKind = consts.KindProgressive
	KindVideoOnly   StreamKind = consts.KindVideoOnly
	KindAudioOnly   StreamKind = consts.KindAudioOnly
)

// Stream describes one encoding of a resource as reported by the metadata provider.
//
// A Stream is immutable once obtained and only valid for the lookup that produced it.
type Stream struct {
	ID       int        `json:"id"`
	Kind     StreamKind `json:"kind"`
	Height   int        `json:"height,omitempty"`
	Bitrate  int        `json:"bitrate_kbps,omitempty"`
	Subtype  string     `json:"subtype"`
	MimeType string     `json:"mime_type"`
	Size     int64      `json:"size"`

	// Handle is the provider's own descriptor, passed back when opening the stream.
	Handle any `json:"-"`
}

// IsProgressive reports whether the stream carries both audio and video.
func (s *Stream) IsProgressive() bool {
	return s != nil && s.Kind == KindProgressive
}

// IsAudioOnly reports whether the stream is an adaptive audio stream.
func (s *Stream) IsAudioOnly() bool {
	return s != nil && s.Kind == KindAudioOnly
}

// IsVideoOnly reports whether the stream is an adaptive video stream.
func (s *Stream) IsVideoOnly() bool {
	return s != nil && s.Kind == KindVideoOnly
}

// Resolution returns the quality label for video streams, e.g. "1080p".
func (s *Stream) Resolution() string {
	if s == nil || s.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dp", s.Height)
}

// Ext returns the container subtype, or def when unknown.
func (s *Stream) Ext(def string) string {
	if s == nil {
		return def
	}
	if ext := strings.TrimPrefix(strings.ToLower(s.Subtype), "."); ext != "" {
		return ext
	}
	return def
}

// Describe returns a short human readable label (resolution, bitrate or "stream").
func (s *Stream) Describe() string {
	switch {
	case s == nil:
		return "stream"
	case s.Height > 0:
		return s.Resolution()
	case s.Bitrate > 0:
		return fmt.Sprintf("%dkbps", s.Bitrate)
	}
	return "stream"
}

// Resource is one media item and its stream catalog.
type Resource struct {
	ID          string        `json:"id"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Duration    time.Duration `json:"duration"`
	PublishDate time.Time     `json:"publish_date"`

	// Streams keeps the provider's catalog order.
	Streams []*Stream `json:"streams"`

	// Handle is the provider's own resource value.
	Handle any `json:"-"`
}
