package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/usuarios/backend/config"
	"github.com/pageza/usuarios/backend/internal/database"
	"github.com/pageza/usuarios/backend/internal/logger"
	"github.com/pageza/usuarios/backend/internal/middleware"
	"github.com/pageza/usuarios/backend/internal/server"
	"github.com/pageza/usuarios/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		stop()
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is cancelled
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Initialize database
	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		return err
	}

	// Rate limiting is optional; continue without it if Redis is not available
	var limiter *middleware.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedisClient(cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiting disabled")
		} else {
			defer redisClient.Close()
			limiter = middleware.NewWriteRateLimiter(redisClient, cfg.Redis.RateLimit, cfg.Redis.RateWindow, log)
		}
	}

	// Initialize services
	userService := service.NewUserService(db)

	srv := server.NewServer(cfg, db, userService, limiter, log)
	return srv.Start(ctx)
}
