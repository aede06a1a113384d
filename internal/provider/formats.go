package provider

import (
	"strconv"
	"strings"

	"grabarr/internal/models"

	"github.com/kkdai/youtube/v2"
)

// formatToStream converts a catalog format to a stream descriptor.
func formatToStream(f *youtube.Format) *models.Stream {
	s := &models.Stream{
		ID:       f.ItagNo,
		Kind:     kindOf(f),
		Subtype:  mimeToExt(f.MimeType),
		MimeType: f.MimeType,
		Size:     f.ContentLength,
		Bitrate:  bitrateForFormat(f) / 1000,
		Handle:   f,
	}
	if s.Kind != models.KindAudioOnly {
		s.Height = heightForFormat(f)
	}
	return s
}

func kindOf(f *youtube.Format) models.StreamKind {
	hasVideo := f.Width > 0 || f.Height > 0 || strings.HasPrefix(f.MimeType, "video/")
	hasAudio := f.AudioChannels > 0 || strings.HasPrefix(f.MimeType, "audio/")

	switch {
	case strings.HasPrefix(f.MimeType, "audio/"):
		return models.KindAudioOnly
	case hasVideo && f.AudioChannels > 0:
		return models.KindProgressive
	case hasVideo:
		return models.KindVideoOnly
	case hasAudio:
		return models.KindAudioOnly
	}
	return models.KindVideoOnly
}

func heightForFormat(f *youtube.Format) int {
	if f.Height > 0 {
		return f.Height
	}
	// Labels look like "1080p60" or "720p HDR".
	label := f.QualityLabel
	if i := strings.IndexByte(label, 'p'); i > 0 {
		if h, err := strconv.Atoi(label[:i]); err == nil {
			return h
		}
	}
	return 0
}

func bitrateForFormat(f *youtube.Format) int {
	if f.Bitrate > 0 {
		return f.Bitrate
	}
	if f.AverageBitrate > 0 {
		return f.AverageBitrate
	}
	return 0
}

// mimeToExt maps "video/webm; codecs=..." to "webm".
func mimeToExt(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	parts := strings.Split(strings.TrimSpace(mime), "/")
	if len(parts) != 2 || parts[1] == "" {
		return ""
	}
	switch parts[1] {
	case "3gpp":
		return "3gp"
	default:
		return parts[1]
	}
}
