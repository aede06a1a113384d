package consts

// Tables
const (
	DBDownloads = "downloads"
)

// Downloads
const (
	QDLID         = "id"
	QDLURL        = "url"
	QDLTitle      = "title"
	QDLQuality    = "quality"
	QDLMode       = "mode"
	QDLStatus     = "status"
	QDLFilePath   = "file_path"
	QDLFileSize   = "file_size"
	QDLAttempts   = "attempts"
	QDLError      = "error_message"
	QDLCreatedAt  = "created_at"
	QDLFinishedAt = "finished_at"
)

// DownloadStatus is the final state of a recorded download.
type DownloadStatus string

// Download statuses.
const (
	DLStatusSucceeded DownloadStatus = "succeeded"
	DLStatusExhausted DownloadStatus = "exhausted"
)

// Download modes.
const (
	ModeCombined  = "combined"
	ModeAudioOnly = "audio-only"
	ModeVideoOnly = "video-only"
)
