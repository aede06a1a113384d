package cfgflags

import (
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"

	"github.com/spf13/cobra"
)

// SetServerFlags sets flags for the web front end.
func SetServerFlags(cmd *cobra.Command) {
	cmd.Flags().String(keys.ServeHost, consts.DefaultHost, "Address to listen on")
	cmd.Flags().Int(keys.ServePort, consts.DefaultPort, "Port to listen on")
	cmd.Flags().StringP(keys.OutputDir, "o", "", "Directory downloads are written to and served from")
	cmd.Flags().String(keys.AACBitrate, consts.DefaultAACBitrate, "AAC bitrate used when WebM audio must be re-encoded")
	cmd.Flags().Bool(keys.AllowPrivate, false, "Allow URLs pointing at private network hosts")
}

// SetHistoryFlags sets flags for listing recorded downloads.
func SetHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().String(keys.HistorySince, "", "Only show downloads on or after this date (most formats accepted)")
	cmd.Flags().Int(keys.HistoryLimit, consts.MaxDisplayedItems, "Maximum records to show (0 for all)")
	cmd.Flags().Bool(keys.HistoryJSON, false, "Print records as JSON")
}
