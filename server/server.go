// Package server exposes the latest scene over HTTP for the Figma plugin.
//
// Routes:
//
//	GET /latest.json       the scene file as written by the converter
//	GET /figma-ready.json  the scene converted to Figma shapes
//	GET /health            liveness
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/figma"
	"github.com/gogpu/scenesync/scene"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":4000"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves one scene file.
type Server struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
	router *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default is scenesync.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock sets the time source for figma metadata.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a server for the scene file at path. The file is read on
// every request, so it may be rewritten while the server runs.
func New(path string, opts ...Option) *Server {
	s := &Server{
		path:   path,
		logger: scenesync.Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/latest.json", s.handleLatest)
	r.Get("/figma-ready.json", s.handleFigma)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server: listening", "addr", addr, "scene", s.path)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{"status": "ok"}
	if info, err := os.Stat(s.path); err == nil {
		resp["sceneUpdated"] = info.ModTime().UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.fileError(w, err)
		return
	}
	if !json.Valid(data) {
		writeError(w, http.StatusInternalServerError, errors.New("scene file is not valid JSON"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleFigma(w http.ResponseWriter, _ *http.Request) {
	sc, err := scene.ReadFile(s.path)
	if err != nil {
		s.fileError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := figma.Encode(w, figma.Convert(sc, s.now())); err != nil {
		s.logger.Error("server: write response", "err", err)
	}
}

// fileError maps a scene read failure to 404 or 500.
func (s *Server) fileError(w http.ResponseWriter, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		writeError(w, http.StatusNotFound, errors.New("no scene has been written yet"))
		return
	}
	s.logger.Error("server: read scene", "path", s.path, "err", err)
	writeError(w, http.StatusInternalServerError, err)
}

// logRequests logs one line per request through slog.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("server: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
