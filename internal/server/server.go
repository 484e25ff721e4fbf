package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/usuarios/backend/config"
	"github.com/pageza/usuarios/backend/internal/middleware"
	"github.com/pageza/usuarios/backend/internal/router"
	"github.com/pageza/usuarios/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    config.ServerConfig
	log    zerolog.Logger
}

// NewServer creates a new server instance. limiter may be nil.
func NewServer(cfg *config.Config, db *gorm.DB, users service.IUserService, limiter *middleware.RateLimiter, log zerolog.Logger) *Server {
	return &Server{
		router: router.SetupRouter(cfg.Server, db, users, limiter, log),
		cfg:    cfg.Server,
		log:    log,
	}
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully within the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
