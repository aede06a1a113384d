package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/models"
	gnet "grabarr/internal/net"
	"grabarr/internal/provider"
	"grabarr/internal/selector"

	"github.com/araddon/dateparse"
	"github.com/go-chi/chi/v5"
)

const flashCookie = "grabarr_flash"

// handleIndex renders the form along with any flash left by a redirect.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var flashes []flash
	if c, err := r.Cookie(flashCookie); err == nil {
		if msg, err := url.QueryUnescape(c.Value); err == nil && msg != "" {
			flashes = append(flashes, flash{Message: msg, Error: true})
		}
		http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	}
	s.render(w, http.StatusOK, newPage(flashes...))
}

// handleSubmit runs a download for the posted URL and renders the result.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.PostFormValue("url"))
	if rawURL == "" {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(consts.FlashMissingURL),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := provider.ValidateURL(rawURL); err != nil {
		s.render(w, http.StatusBadRequest, newPage(flash{Message: "Error downloading: " + err.Error(), Error: true}))
		return
	}
	if !s.allowPrivate && gnet.IsPrivateNetwork(rawURL) {
		s.render(w, http.StatusBadRequest, newPage(flash{Message: "Error downloading: private network addresses are not allowed", Error: true}))
		return
	}

	quality := selector.NormalizeQuality(r.PostFormValue("quality"))
	logger.Pl.I("Starting download for URL: %s with quality %s", rawURL, quality)

	ctx, cancel := s.downloadContext(r)
	defer cancel()

	s.worker.Lock()
	res := s.dl.Download(ctx, models.DownloadRequest{
		URL:        rawURL,
		OutputDir:  s.dir,
		Quality:    quality,
		AACBitrate: s.aacBitrate,
	})
	s.worker.Unlock()

	if !res.OK() {
		s.render(w, http.StatusOK, newPage(flash{Message: consts.FlashFailure, Error: true}))
		return
	}

	page := newPage(flash{Message: consts.FlashSuccess})
	page.Filename = filepath.Base(res.Path())
	s.render(w, http.StatusOK, page)
}

// handleServeFile sends a finished file from the download directory as an attachment.
func (s *Server) handleServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if !safeFilename(name) {
		http.Error(w, "File not found.", http.StatusNotFound)
		return
	}

	p := filepath.Join(s.dir, name)
	f, err := os.Open(p)
	if err != nil {
		http.Error(w, "File not found.", http.StatusNotFound)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Pl.E("failed to close file %v due to error: %v", p, err)
		}
	}()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.Error(w, "File not found.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(name, `"`, "")+`"`)
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// safeFilename rejects anything that could leave the download directory.
func safeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

// handleListDownloads returns download history as JSON.
//
// Query parameters: since (any date format) and limit.
func (s *Server) handleListDownloads(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "download history is disabled", http.StatusNotFound)
		return
	}

	var since time.Time
	if v := r.URL.Query().Get("since"); v != "" {
		t, err := dateparse.ParseAny(v)
		if err != nil {
			http.Error(w, "invalid since: "+err.Error(), http.StatusBadRequest)
			return
		}
		since = t
	}

	limit := consts.MaxDisplayedItems
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.history.ListDownloads(r.Context(), since, limit)
	if err != nil {
		logger.Pl.E("Listing downloads: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*models.DownloadRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		logger.Pl.E("Encoding downloads: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, status int, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, page); err != nil {
		logger.Pl.E("Rendering page: %v", err)
	}
}
