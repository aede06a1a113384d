// Package selector picks which streams of a resource to fetch for a quality target.
package selector

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/regex"
	"grabarr/internal/models"
)

// ErrNoSuitableStream is returned when the catalog cannot satisfy the request at all.
var ErrNoSuitableStream = errors.New("no suitable stream found")

// NormalizeQuality maps user input onto one of the accepted quality tokens.
//
// "720" becomes "720p"; anything unrecognized becomes "best".
func NormalizeQuality(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if IsValidQuality(q) {
		return q
	}
	if m := regex.NumericResolutionCompile().FindStringSubmatch(q); m != nil {
		if p := m[1] + "p"; IsValidQuality(p) {
			return p
		}
	}
	return consts.QualityBest
}

// IsValidQuality reports whether q is one of the literal quality tokens.
func IsValidQuality(q string) bool {
	return slices.Contains(consts.Qualities[:], q)
}

// Select chooses the stream(s) to fetch.
//
// Audio-only wins over video-only. The default mode prefers a progressive stream at the
// exact target, then an adaptive video+audio pair, then the best progressive stream.
func Select(streams []*models.Stream, quality string, audioOnly, videoOnly bool) (*models.Selection, error) {
	q := NormalizeQuality(quality)

	if audioOnly {
		a, ok := bestAudio(streams)
		if !ok {
			return nil, ErrNoSuitableStream
		}
		return models.NewSelection(a, nil), nil
	}

	if videoOnly {
		v, ok := videoAt(streams, q)
		if !ok {
			return nil, ErrNoSuitableStream
		}
		return models.NewSelection(v, nil), nil
	}

	if q != consts.QualityBest {
		if p, ok := SelectBestMatch(streams, progressiveAt(q), byHeight, true); ok {
			return models.NewSelection(p, nil), nil
		}
	}
	bestProg, hasProg := BestProgressive(streams)

	v, hasVideo := videoAt(streams, q)
	a, hasAudio := bestAudio(streams)
	if hasVideo && hasAudio {
		return models.NewSelection(v, a), nil
	}

	if hasProg {
		return models.NewSelection(bestProg, nil), nil
	}
	return nil, ErrNoSuitableStream
}

// BestProgressive returns the highest resolution progressive stream.
func BestProgressive(streams []*models.Stream) (*models.Stream, bool) {
	return SelectBestMatch(streams, (*models.Stream).IsProgressive, byHeight, true)
}

// videoAt returns the first video-only stream at q, else the highest resolution one.
func videoAt(streams []*models.Stream, q string) (*models.Stream, bool) {
	if q != consts.QualityBest {
		if v, ok := SelectBestMatch(streams, videoOnlyAt(q), nil, true); ok {
			return v, true
		}
	}
	return SelectBestMatch(streams, (*models.Stream).IsVideoOnly, byHeight, true)
}

func bestAudio(streams []*models.Stream) (*models.Stream, bool) {
	return SelectBestMatch(streams, (*models.Stream).IsAudioOnly, byBitrate, true)
}

func progressiveAt(q string) func(*models.Stream) bool {
	h := heightOf(q)
	return func(s *models.Stream) bool {
		return s.IsProgressive() && s.Height == h
	}
}

func videoOnlyAt(q string) func(*models.Stream) bool {
	h := heightOf(q)
	return func(s *models.Stream) bool {
		return s.IsVideoOnly() && s.Height == h
	}
}

// heightOf converts "1080p" to 1080. Returns -1 for tokens without a height.
func heightOf(q string) int {
	h, err := strconv.Atoi(strings.TrimSuffix(q, "p"))
	if err != nil {
		return -1
	}
	return h
}

func byHeight(s *models.Stream) int  { return s.Height }
func byBitrate(s *models.Stream) int { return s.Bitrate }
