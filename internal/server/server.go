package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"moodmix/internal/shared"
)

// Server runs the relay's HTTP surface.
type Server struct {
	logger *log.Logger
	server *http.Server
	router *BasicRouter
}

// New assembles the middleware stack, mounts the API routes, and returns a
// server ready to start.
//
// Middleware order: Recover outermost so panics anywhere below it still
// produce a JSON 500, then request logging, then CORS.
func New(logger *log.Logger, cfg shared.ServerConfig, api *API) *Server {
	router := NewBasicRouter()
	router.Use(Recover(logger), RequestLogger(logger), CORS(cfg.FrontendOrigin))
	api.Register(router)

	return &Server{
		logger: logger,
		router: router,
		server: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler: router,
		},
	}
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("server started", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server stopping")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// Handler exposes the assembled router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
