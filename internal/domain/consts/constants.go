// Package consts holds various global, unchanging values.
package consts

// Quality tokens accepted by the stream selector, best first.
const (
	QualityBest  = "best"
	Quality2160p = "2160p"
	Quality1440p = "1440p"
	Quality1080p = "1080p"
	Quality720p  = "720p"
	Quality480p  = "480p"
	Quality360p  = "360p"
)

// Qualities lists every accepted quality token.
var Qualities = [...]string{
	QualityBest,
	Quality2160p,
	Quality1440p,
	Quality1080p,
	Quality720p,
	Quality480p,
	Quality360p,
}

// File name handling.
const (
	DefaultTitle      = "video"
	DefaultMaxNameLen = 120
	ProbeFileName     = ".probe_write"
	DownloadsDirName  = "Downloads"
	LocalDownloadsDir = "downloads"
)

// Extensions and container subtypes.
const (
	ExtMP4  = "mp4"
	ExtM4A  = "m4a"
	ExtWebM = "webm"

	// VideoTempTag and AudioTempTag mark the halves of a pending merge.
	VideoTempTag = ".video"
	AudioTempTag = ".audio"
)

// DefaultAACBitrate is the bitrate used when WebM audio must be re-encoded for MP4.
const DefaultAACBitrate = "192k"

// Media kinds reported by the metadata provider.
const (
	KindProgressive = "progressive"
	KindVideoOnly   = "video-only"
	KindAudioOnly   = "audio-only"
)

// CollectionQueryParam marks a URL as a collection (playlist).
const CollectionQueryParam = "list"

// Transcoder binary.
const (
	FFmpegBinary       = "ffmpeg"
	MaxDiagnosticChars = 500
)

// AllVidExtensions is a list of video file extensions.
var AllVidExtensions = [...]string{".3gp", ".avi", ".f4v", ".flv", ".m4a", ".m4v", ".mkv",
	".mov", ".mp4", ".mpeg", ".mpg", ".ogm", ".ogv",
	".ts", ".vob", ".webm", ".wmv"}
