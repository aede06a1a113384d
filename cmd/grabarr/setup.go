package main

import (
	"fmt"
	"os"
	"time"

	"grabarr/internal/cfg"
	"grabarr/internal/database"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/domain/paths"
	"grabarr/internal/downloads"
	"grabarr/internal/merge"
	"grabarr/internal/metrics"
	gnet "grabarr/internal/net"
	"grabarr/internal/provider"
	"grabarr/internal/repo"
	"grabarr/internal/utils/logging"

	"github.com/prometheus/client_golang/prometheus"
)

// application holds the collaborators built for the current run.
type application struct {
	startTime time.Time

	pl       *logging.ProgramLogger
	db       *database.Database
	store    *repo.DownloadStore
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	provider *provider.YouTube
	ffmpeg   *merge.FFmpeg
	orch     *downloads.Orchestrator
}

func newApplication() *application {
	return &application{startTime: time.Now()}
}

// initializeApplication sets up the application for the current run.
func (a *application) initializeApplication(s *cfg.Settings) error {
	if err := paths.InitProgFilesDirs(); err != nil {
		return err
	}

	// Setup logging
	pl, err := logging.SetupLogging(logging.LoggingConfig{
		LogFilePath: paths.LogFilePath,
		Console:     os.Stdout,
		Program:     consts.ProgramName,
		Level:       s.LogLevel,
		DebugLevel:  s.DebugLevel,
	})
	if err != nil {
		return err
	}
	a.pl = pl
	logger.Pl = pl

	logger.Pl.I("%s (PID: %d) started at: %v",
		consts.ProgramName, os.Getpid(), a.startTime.Format("2006-01-02 15:04:05.00 MST"))
	logger.Pl.D(1, "Database: %s, log file: %s", paths.DBFilePath, paths.LogFilePath)

	// Database & stores
	if !s.NoHistory {
		db, err := database.InitDB(paths.DBFilePath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		a.db = db
		a.store = repo.GetDownloadStore(db.DB)
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)

	client, err := gnet.NewClient(gnet.ClientConfig{
		BytesPerSec: s.BytesPerSec,
		UserAgent:   consts.UserAgent,
	})
	if err != nil {
		return err
	}
	if s.BytesPerSec > 0 {
		logger.Pl.I("Bandwidth capped at %s/s", s.Bandwidth)
	}
	a.provider = provider.NewYouTube(client)

	a.ffmpeg = merge.NewFFmpeg(s.FFmpegPath)
	if !a.ffmpeg.Available() {
		logger.Pl.W("ffmpeg not found; separate video and audio streams cannot be merged, falling back to progressive streams")
	}

	opts := downloads.DefaultOptions
	opts.Provider = a.provider
	opts.Metrics = a.metrics
	opts.Progress = os.Stdout
	if a.ffmpeg.Available() {
		opts.Transcoder = a.ffmpeg
	}
	if a.store != nil {
		opts.History = a.store
	}

	a.orch, err = downloads.New(opts)
	return err
}

// cleanup safely quits the program.
func (a *application) cleanup() {
	r := recover() // grab panic condition
	if r != nil {
		logger.Pl.E("Panic occurred: %v", r)
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Pl.E("Failed to close database: %v", err)
		}
	}

	if a.pl != nil {
		logger.Pl.D(1, "%s finished after %v", consts.ProgramName, time.Since(a.startTime).Round(time.Millisecond))
		if err := a.pl.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}

	if r != nil {
		panic(r)
	}
}
