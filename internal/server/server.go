// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server serves pages with their shortcode-query tags expanded, for
// previewing content against a live site database. It also exposes the
// comment filter so a host can strip query tags from user comments.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sqb/cli/internal/logging"
	"sqb/cli/internal/shortcode"
)

// MaxBodyBytes caps request bodies for /render and /comments/preview.
const MaxBodyBytes = 1 << 20

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 30 * time.Second

// Expander expands every shortcode in a piece of content.
type Expander interface {
	ExpandContent(ctx context.Context, content string) (string, error)
	Tag() string
}

// Config holds server settings.
type Config struct {
	Addr           string
	PagesDir       string
	RequestTimeout time.Duration
}

// Server is the preview HTTP server.
type Server struct {
	cfg      Config
	expander Expander
	logger   *zap.Logger
}

// New creates a Server. A nil logger discards logs.
func New(cfg Config, expander Expander, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, expander: expander, logger: logger}
}

// Handler returns the routed handler with request IDs, timeouts and access
// logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /comments/preview", s.handleCommentPreview)
	mux.HandleFunc("GET /{page...}", s.handlePage)

	var h http.Handler = mux
	h = withTimeout(h, s.cfg.RequestTimeout)
	h = withAccessLog(h, s.logger)
	h = withRequestID(h)
	return h
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("preview server listening",
			zap.String("addr", s.cfg.Addr),
			zap.String("pages", s.cfg.PagesDir),
			zap.String("tag", s.expander.Tag()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown timeout exceeded, forcing stop", zap.Error(err))
			return srv.Close()
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, ok := pageName(r.PathValue("page"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.cfg.PagesDir, page+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	s.expand(w, r, string(data), "page", zap.String("page", path))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	s.expand(w, r, body, "content")
}

func (s *Server) handleCommentPreview(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, shortcode.Strip(body, s.expander.Tag()))
}

func (s *Server) expand(w http.ResponseWriter, r *http.Request, content, what string, fields ...zap.Field) {
	out, err := s.expander.ExpandContent(r.Context(), content)
	if err != nil {
		fields = append(fields,
			zap.String("request_id", RequestID(r.Context())),
			zap.String("error", logging.Mask(err.Error())))
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("render timed out", fields...)
			http.Error(w, "timed out rendering "+what, http.StatusGatewayTimeout)
			return
		}
		s.logger.Error("render failed", fields...)
		http.Error(w, "failed to render "+what, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

// pageName maps a request path to a page file name, rejecting paths that
// leave the pages directory.
func pageName(raw string) (string, bool) {
	page := strings.Trim(raw, "/")
	if page == "" {
		return "index", true
	}
	clean := filepath.Clean(page)
	if clean == "." {
		return "index", true
	}
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", false
	}
	return strings.TrimSuffix(clean, ".html"), true
}

func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return "", false
	}
	return string(b), true
}
