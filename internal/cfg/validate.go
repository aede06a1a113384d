package cfg

import (
	"errors"
	"fmt"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"
	"grabarr/internal/file"
	"grabarr/internal/merge"
	"grabarr/internal/models"
	gnet "grabarr/internal/net"
	"grabarr/internal/selector"
	"grabarr/internal/utils/logging"

	"github.com/araddon/dateparse"
)

// ErrInvalidConfig marks errors caused by bad flags, config or environment.
var ErrInvalidConfig = errors.New("invalid configuration")

const maxDebugLevel = 5

// settings assembles and validates Settings from the viper instance.
func (l *loader) settings(args []string) (*Settings, error) {
	v := l.v

	s := &Settings{
		Request: models.DownloadRequest{
			OutputDir:  strings.TrimSpace(v.GetString(keys.OutputDir)),
			Quality:    v.GetString(keys.Quality),
			AudioOnly:  v.GetBool(keys.AudioOnly),
			VideoOnly:  v.GetBool(keys.VideoOnly),
			SkipMerge:  v.GetBool(keys.NoMerge),
			AACBitrate: strings.TrimSpace(v.GetString(keys.AACBitrate)),
		},
		Playlist:   v.GetBool(keys.Playlist),
		MaxItems:   v.GetInt(keys.MaxItems),
		ConfigFile: v.GetString(keys.ConfigFile),
		LogLevel:   v.GetString(keys.LogLevel),
		DebugLevel: v.GetInt(keys.Debug),
		FFmpegPath: strings.TrimSpace(v.GetString(keys.FFmpegPath)),
		Bandwidth:  strings.TrimSpace(v.GetString(keys.MaxBandwidth)),
		NoHistory:  v.GetBool(keys.NoHistory),
	}

	urls, err := collectURLs(args, v.GetString(keys.URL), v.GetString(keys.URLFile))
	if err != nil {
		return nil, err
	}
	s.URLs = urls

	if err := validateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

// collectURLs merges positional, flag and file URLs, dropping blanks and duplicates.
func collectURLs(args []string, flagURL, urlFile string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	for _, a := range args {
		add(a)
	}
	add(flagURL)

	if urlFile != "" {
		lines, err := file.ReadFileLines(urlFile)
		if err != nil {
			return nil, fmt.Errorf("%w: reading --%s: %v", ErrInvalidConfig, keys.URLFile, err)
		}
		for _, line := range lines {
			add(line)
		}
	}
	return out, nil
}

// validateSettings checks user input and normalizes it in place.
func validateSettings(s *Settings) error {
	q := strings.ToLower(strings.TrimSpace(s.Request.Quality))
	if q == "" {
		q = consts.QualityBest
	}
	if !selector.IsValidQuality(q) {
		return fmt.Errorf("%w: invalid quality %q", ErrInvalidConfig, s.Request.Quality)
	}
	s.Request.Quality = q

	if s.Request.AudioOnly && s.Request.VideoOnly {
		return fmt.Errorf("%w: --%s and --%s are mutually exclusive", ErrInvalidConfig, keys.AudioOnly, keys.VideoOnly)
	}

	if s.Request.AACBitrate != "" {
		if err := merge.ValidateBitrate(s.Request.AACBitrate); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if s.MaxItems < 0 {
		return fmt.Errorf("%w: --%s must not be negative", ErrInvalidConfig, keys.MaxItems)
	}

	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if s.DebugLevel < 0 || s.DebugLevel > maxDebugLevel {
		return fmt.Errorf("%w: --%s must be between 0 and %d", ErrInvalidConfig, keys.Debug, maxDebugLevel)
	}

	bps, err := gnet.ParseBandwidth(s.Bandwidth)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.BytesPerSec = bps
	return nil
}

func (l *loader) serveSettings() (*ServeSettings, error) {
	ss := &ServeSettings{
		Host:         strings.TrimSpace(l.v.GetString(keys.ServeHost)),
		Port:         l.v.GetInt(keys.ServePort),
		AllowPrivate: l.v.GetBool(keys.AllowPrivate),
	}
	if ss.Port < 1 || ss.Port > 65535 {
		return nil, fmt.Errorf("%w: invalid port %d", ErrInvalidConfig, ss.Port)
	}
	return ss, nil
}

func (l *loader) historySettings() (*HistorySettings, error) {
	hs := &HistorySettings{
		Limit: l.v.GetInt(keys.HistoryLimit),
		JSON:  l.v.GetBool(keys.HistoryJSON),
	}
	if hs.Limit < 0 {
		return nil, fmt.Errorf("%w: --%s must not be negative", ErrInvalidConfig, keys.HistoryLimit)
	}

	if since := strings.TrimSpace(l.v.GetString(keys.HistorySince)); since != "" {
		t, err := dateparse.ParseLocal(since)
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse --%s %q: %v", ErrInvalidConfig, keys.HistorySince, since, err)
		}
		hs.Since = t
	}
	return hs, nil
}
