// Package cfg builds the command line interface and assembles run settings.
package cfg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cfgflags "grabarr/internal/cfg/flags"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"
	"grabarr/internal/domain/logger"
	"grabarr/internal/file"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Handlers are invoked once settings are assembled and validated.
type Handlers struct {
	Download func(ctx context.Context, s *Settings) error
	Serve    func(ctx context.Context, s *Settings, ss *ServeSettings) error
	History  func(ctx context.Context, s *Settings, hs *HistorySettings) error
}

// loader carries the viper instance for one command tree.
type loader struct {
	v *viper.Viper
}

// NewRootCommand returns the grabarr command tree wired to h.
func NewRootCommand(h Handlers) *cobra.Command {
	l := &loader{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   consts.ProgramName + " [URL...]",
		Short: "Download videos and playlists as MP4 or M4A",
		Long: consts.ProgramName + " fetches a video (or every item of a playlist), picks the best\n" +
			"streams for the requested quality and merges video and audio with ffmpeg.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return l.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := l.settings(args)
			if err != nil {
				return err
			}
			if len(s.URLs) == 0 {
				return fmt.Errorf("%w: no URL given (pass one as an argument, with --%s or --%s)", ErrInvalidConfig, keys.URL, keys.URLFile)
			}
			return h.Download(cmd.Context(), s)
		},
	}
	rootCmd.SetGlobalNormalizationFunc(cfgflags.NormalizeNames)
	cfgflags.SetProgramFlags(rootCmd)
	cfgflags.SetDownloadFlags(rootCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := l.settings(nil)
			if err != nil {
				return err
			}
			ss, err := l.serveSettings()
			if err != nil {
				return err
			}
			return h.Serve(cmd.Context(), s, ss)
		},
	}
	cfgflags.SetServerFlags(serveCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := l.settings(nil)
			if err != nil {
				return err
			}
			if s.NoHistory {
				return fmt.Errorf("%w: --%s disables the history database", ErrInvalidConfig, keys.NoHistory)
			}
			hs, err := l.historySettings()
			if err != nil {
				return err
			}
			return h.History(cmd.Context(), s, hs)
		},
	}
	cfgflags.SetHistoryFlags(historyCmd)

	rootCmd.AddCommand(serveCmd, historyCmd)
	return rootCmd
}

// load binds flags, environment and the optional config file into the viper instance.
//
// Precedence: flags, then environment, then config file, then flag defaults.
func (l *loader) load(cmd *cobra.Command) error {
	if err := loadDotEnv(keys.DotEnvFile); err != nil {
		logger.Pl.W("Could not load %s: %v", keys.DotEnvFile, err)
	}

	l.v.SetEnvPrefix(keys.EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	l.v.AutomaticEnv()

	if err := l.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if cfgFile := l.v.GetString(keys.ConfigFile); cfgFile != "" {
		if err := file.LoadConfigFile(l.v, cfgFile); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		logger.Pl.D(1, "Loaded config file %q", cfgFile)
	}
	return nil
}

// loadDotEnv loads a .env file if one exists. Existing variables win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
