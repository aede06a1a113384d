// Package cfgflags registers command line flags.
package cfgflags

import (
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"

	"github.com/spf13/cobra"
)

// SetDownloadFlags sets flags related to download tasks.
func SetDownloadFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.String(keys.URL, "", "URL of the video or playlist to download")
	f.StringP(keys.OutputDir, "o", "", "Directory to write downloads into (default: ~/Downloads)")
	f.StringP(keys.Quality, "q", consts.QualityBest, "Preferred quality (best, 2160p, 1440p, 1080p, 720p, 480p, 360p)")
	f.String(keys.AACBitrate, consts.DefaultAACBitrate, "AAC bitrate used when WebM audio must be re-encoded")

	// Mode
	f.Bool(keys.AudioOnly, false, "Download audio only (.m4a)")
	f.Bool(keys.VideoOnly, false, "Download video only, without an audio track")
	f.Bool(keys.NoMerge, false, "Never merge separate streams; take the best single stream")

	// Collections
	f.Bool(keys.Playlist, false, "Treat the URL as a playlist even without a list parameter")
	f.Int(keys.MaxItems, 0, "Maximum playlist items to download (0 for all)")
	f.String(keys.URLFile, "", "File of URLs to download (one per line, '#' comments ignored)")
}
