// Package server runs the grabarr web form front end.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter returns a http Handler.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSubmit)
	r.Get("/downloads/{filename}", s.handleServeFile)
	r.Get("/healthz", handleHealth)

	if s.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(s.gatherer))
	}

	// --- API Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/downloads", s.handleListDownloads)
	})

	return r
}

// StartServer serves until ctx ends, then shuts down gracefully.
func StartServer(ctx context.Context, addr string, s *Server) error {
	s.base = ctx

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(s),
		ReadHeaderTimeout: consts.ServerReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Pl.S("%s web server running on http://%s", consts.ProgramName, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.ServerShutdownTimeout)
	defer cancel()

	logger.Pl.I("Shutting down web server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprintf(w, "ok %s\n", time.Now().UTC().Format(time.RFC3339))
}
