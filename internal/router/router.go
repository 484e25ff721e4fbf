package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/usuarios/backend/config"
	"github.com/pageza/usuarios/backend/internal/api"
	"github.com/pageza/usuarios/backend/internal/middleware"
	"github.com/pageza/usuarios/backend/internal/service"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(
	cfg config.ServerConfig,
	db *gorm.DB,
	userService service.IUserService,
	limiter *middleware.RateLimiter,
	log zerolog.Logger,
) *gin.Engine {
	router := gin.New()

	// Request id first so every later log line carries it
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	api.RegisterRoutes(router, db, userService, limiter)

	return router
}
