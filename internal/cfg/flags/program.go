package cfgflags

import (
	"strings"

	"grabarr/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SetProgramFlags sets flags shared by every command.
func SetProgramFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()

	f.String(keys.ConfigFile, "", "Path to a config file (toml, yaml or json)")
	f.String(keys.LogLevel, "info", "Log level (debug, info, warn, error)")
	f.Int(keys.Debug, 0, "Debug verbosity (0-5)")
	f.Bool(keys.NoHistory, false, "Do not record downloads in the history database")
	f.String(keys.FFmpegPath, "", "Path to the ffmpeg binary (default: search PATH)")
	f.String(keys.MaxBandwidth, "", "Bandwidth cap, e.g. 2MB or 500KiB (default: unlimited)")
}

// NormalizeNames lets snake_case spellings (as used in config files) work on the command line.
func NormalizeNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
