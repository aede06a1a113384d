// Package keys holds the configuration keys shared by flags, viper and config files.
package keys

// Program
const (
	ConfigFile string = "config"
	LogLevel   string = "log-level"
	Debug      string = "debug"
	NoHistory  string = "no-history"
	FFmpegPath string = "ffmpeg-path"
	EnvPrefix  string = "GRABARR"
	DotEnvFile string = ".env"
)

// Download request
const (
	URL          string = "url"
	OutputDir    string = "output-dir"
	Quality      string = "quality"
	AudioOnly    string = "audio-only"
	VideoOnly    string = "video-only"
	NoMerge      string = "no-merge"
	Playlist     string = "playlist"
	MaxItems     string = "max-items"
	AACBitrate   string = "aac-bitrate"
	MaxBandwidth string = "max-bandwidth"
	URLFile      string = "url-file"
)

// Web server
const (
	ServeHost    string = "host"
	ServePort    string = "port"
	AllowPrivate string = "allow-private"
)

// History
const (
	HistorySince string = "since"
	HistoryLimit string = "limit"
	HistoryJSON  string = "json"
)
