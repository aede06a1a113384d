package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Downloader runs one download to completion.
type Downloader interface {
	Download(ctx context.Context, req models.DownloadRequest) models.Result
}

// HistoryLister lists recorded downloads.
type HistoryLister interface {
	ListDownloads(ctx context.Context, since time.Time, limit int) ([]*models.DownloadRecord, error)
}

// Config holds what the web front end needs.
type Config struct {
	Downloader  Downloader
	History     HistoryLister
	Gatherer    prometheus.Gatherer
	DownloadDir string
	AACBitrate  string

	// AllowPrivate permits URLs pointing at loopback or LAN hosts.
	AllowPrivate bool
}

// Server handles the form and download routes.
//
// Downloads run on the request goroutine, one at a time.
type Server struct {
	dl           Downloader
	history      HistoryLister
	gatherer     prometheus.Gatherer
	dir          string
	aacBitrate   string
	allowPrivate bool

	// worker serialises downloads so output names never collide.
	worker sync.Mutex

	// base bounds every download; StartServer replaces it with the serving context.
	base context.Context
}

// New returns a Server for cfg.
func New(cfg Config) *Server {
	return &Server{
		dl:           cfg.Downloader,
		history:      cfg.History,
		gatherer:     cfg.Gatherer,
		dir:          cfg.DownloadDir,
		aacBitrate:   cfg.AACBitrate,
		allowPrivate: cfg.AllowPrivate,
		base:         context.Background(),
	}
}

// downloadContext detaches a download from the client connection.
// Only the end of the base context cancels it.
func (s *Server) downloadContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	if s.base.Err() != nil {
		cancel()
	}
	stop := context.AfterFunc(s.base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

type flash struct {
	Message string
	Error   bool
}

type pageData struct {
	Flashes   []flash
	Qualities []string
	Filename  string
}

func newPage(flashes ...flash) pageData {
	return pageData{
		Flashes:   flashes,
		Qualities: consts.Qualities[:],
	}
}
