package file

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/regex"
)

// SanitizeName turns a media title into a filesystem-safe base name.
//
// Reserved characters become underscores, whitespace runs collapse to one space,
// leading/trailing whitespace and dots are trimmed and the result is capped at maxLen runes.
func SanitizeName(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = consts.DefaultMaxNameLen
	}
	if strings.TrimSpace(raw) == "" {
		raw = consts.DefaultTitle
	}

	name := regex.InvalidCharsCompile().ReplaceAllString(raw, "_")
	name = regex.ExtraSpacesCompile().ReplaceAllString(name, " ")
	name = trimName(name)

	if utf8.RuneCountInString(name) > maxLen {
		name = trimName(string([]rune(name)[:maxLen]))
	}
	if name == "" {
		return consts.DefaultTitle
	}
	return name
}

func trimName(s string) string {
	return strings.Trim(s, " \t\r\n.")
}

// FormatDuration renders seconds as HH:MM:SS, or MM:SS when under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// HasVideoExtension reports whether the file name ends in a known media extension.
func HasVideoExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range consts.AllVidExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
