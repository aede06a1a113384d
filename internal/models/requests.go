package models

import "grabarr/internal/domain/consts"

// DownloadRequest is the immutable input to one orchestrator run.
type DownloadRequest struct {
	URL        string `json:"url"`
	OutputDir  string `json:"output_dir"`
	Quality    string `json:"quality"`
	AudioOnly  bool   `json:"audio_only"`
	VideoOnly  bool   `json:"video_only"`
	SkipMerge  bool   `json:"skip_merge"`
	AACBitrate string `json:"aac_bitrate"`
}

// WithURL returns a copy of the request targeting another URL.
func (r DownloadRequest) WithURL(url string) DownloadRequest {
	r.URL = url
	return r
}

// Mode returns the download mode name used in history records.
func (r DownloadRequest) Mode() string {
	switch {
	case r.AudioOnly:
		return consts.ModeAudioOnly
	case r.VideoOnly:
		return consts.ModeVideoOnly
	}
	return consts.ModeCombined
}

// Bitrate returns the AAC bitrate, falling back to the default.
func (r DownloadRequest) Bitrate() string {
	if r.AACBitrate == "" {
		return consts.DefaultAACBitrate
	}
	return r.AACBitrate
}
