package cfg

import (
	"time"

	"grabarr/internal/models"
)

// Settings holds everything a run needs, assembled once from flags, config file and environment.
type Settings struct {
	Request models.DownloadRequest

	// URLs are the inputs in order: positional args, --url, then --url-file lines.
	URLs     []string
	Playlist bool
	MaxItems int

	ConfigFile  string
	LogLevel    string
	DebugLevel  int
	FFmpegPath  string
	Bandwidth   string
	BytesPerSec int64
	NoHistory   bool
}

// ServeSettings configures the web front end.
type ServeSettings struct {
	Host         string
	Port         int
	AllowPrivate bool
}

// HistorySettings configures the history listing.
type HistorySettings struct {
	Since time.Time
	Limit int
	JSON  bool
}
