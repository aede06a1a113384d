package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"text/tabwriter"

	"grabarr/internal/app"
	"grabarr/internal/cfg"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/file"
	"grabarr/internal/models"
	"grabarr/internal/server"

	"github.com/dustin/go-humanize"
)

// download runs the root command: one URL, a playlist, or a list of URLs.
func (a *application) download(ctx context.Context, s *cfg.Settings) error {
	if err := a.initializeApplication(s); err != nil {
		return err
	}

	if len(s.URLs) == 1 {
		rawURL := s.URLs[0]
		collection := s.Playlist || app.IsCollectionURL(rawURL)

		summary, err := app.Run(ctx, a.orch, a.provider, a.metrics, rawURL, s.Request, s.Playlist, s.MaxItems)
		if err != nil {
			return &exitError{code: consts.ExitDownloadFailed, err: err}
		}
		return summaryExit(summary, collection)
	}

	summary := app.NewBatch(a.orch, a.provider, a.metrics).RunURLs(ctx, s.URLs, s.Request, s.MaxItems)
	return summaryExit(summary, true)
}

// summaryExit maps a summary onto the exit code contract.
func summaryExit(summary *models.BatchSummary, collection bool) error {
	if summary.OK() {
		return nil
	}
	if !collection {
		return &exitError{code: consts.ExitDownloadFailed, err: fmt.Errorf("download of %s failed", summary.Failed[0])}
	}
	return &exitError{code: consts.ExitBatchPartial, err: fmt.Errorf("%d of %d downloads failed", len(summary.Failed), summary.Total)}
}

// serve runs the web front end until the context ends.
func (a *application) serve(ctx context.Context, s *cfg.Settings, ss *cfg.ServeSettings) error {
	if err := a.initializeApplication(s); err != nil {
		return err
	}

	dir := s.Request.OutputDir
	if dir == "" {
		dir = file.ResolveDefaultOutputDir()
	}
	if err := file.EnsureDir(dir); err != nil {
		return err
	}
	logger.Pl.I("Serving downloads from %s", dir)

	conf := server.Config{
		Downloader:   a.orch,
		Gatherer:     a.registry,
		DownloadDir:  dir,
		AACBitrate:   s.Request.AACBitrate,
		AllowPrivate: ss.AllowPrivate,
	}
	if a.store != nil {
		conf.History = a.store
	}

	addr := net.JoinHostPort(ss.Host, strconv.Itoa(ss.Port))
	return server.StartServer(ctx, addr, server.New(conf))
}

// history prints recorded downloads.
func (a *application) history(ctx context.Context, s *cfg.Settings, hs *cfg.HistorySettings) error {
	if err := a.initializeApplication(s); err != nil {
		return err
	}

	records, err := a.store.ListDownloads(ctx, hs.Since, hs.Limit)
	if err != nil {
		return err
	}

	if hs.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		logger.Pl.I("No downloads recorded")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tSTATUS\tQUALITY\tSIZE\tTITLE")
	for _, r := range records {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		size := "-"
		if r.FileSize > 0 {
			size = humanize.IBytes(uint64(r.FileSize))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"), r.Status, r.Quality, size, title)
	}
	return tw.Flush()
}
