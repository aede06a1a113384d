// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
	"sync"
)

var (
	extraSpaces  *regexp.Regexp
	invalidChars *regexp.Regexp
	numericRes   *regexp.Regexp
	bitrate      *regexp.Regexp

	extraSpacesOnce, invalidCharsOnce, numericResOnce, bitrateOnce sync.Once
)

// ExtraSpacesCompile compiles regex for runs of whitespace.
func ExtraSpacesCompile() *regexp.Regexp {
	extraSpacesOnce.Do(func() {
		extraSpaces = regexp.MustCompile(`\s+`)
	})
	return extraSpaces
}

// InvalidCharsCompile compiles regex for filesystem-reserved characters.
func InvalidCharsCompile() *regexp.Regexp {
	invalidCharsOnce.Do(func() {
		invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)
	})
	return invalidChars
}

// NumericResolutionCompile compiles regex for bare resolutions such as "720" or "1080p".
func NumericResolutionCompile() *regexp.Regexp {
	numericResOnce.Do(func() {
		numericRes = regexp.MustCompile(`^(\d{3,4})p?$`)
	})
	return numericRes
}

// BitrateCompile compiles regex for ffmpeg style bitrates such as "192k".
func BitrateCompile() *regexp.Regexp {
	bitrateOnce.Do(func() {
		bitrate = regexp.MustCompile(`^[1-9]\d*k$`)
	})
	return bitrate
}
