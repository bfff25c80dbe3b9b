// Package server exposes the reader's HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/ghazali-project/ihya/pkg/config"
)

// Version is reported by /health. Overridden at build time with -ldflags.
var Version = "dev"

// Server wires the API handler, static assets and middleware into an http.Server.
type Server struct {
	cfg     *config.Config
	handler *Handler
	logger  *slog.Logger
}

// New creates a server.
func New(cfg *config.Config, h *Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, handler: h, logger: logger}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dictionary", s.handler.LookupWord)
	mux.HandleFunc("GET /api/books", s.handler.ListBooks)
	mux.HandleFunc("GET /api/books/{bookId}", s.handler.GetBook)
	mux.HandleFunc("GET /api/tafsir", s.handler.Tafsir)
	mux.HandleFunc("GET /api/search", s.handler.Search)
	mux.HandleFunc("GET /live", s.handler.Live)
	mux.HandleFunc("GET /health", s.handler.Health)
	if dir := s.cfg.Content.PublicDir; dir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}

	return Chain(
		Recovery(s.logger),
		RequestID,
		Logger(s.logger),
		CORS(s.cfg.CORS),
	)(mux)
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
