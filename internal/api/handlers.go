package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/usuarios/backend/internal/database"
	"github.com/pageza/usuarios/backend/internal/middleware"
	"github.com/pageza/usuarios/backend/internal/service"
)

// HealthCheck answers the root route so clients can tell the API is up
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "API Express + Prisma OK!"})
}

// ReadinessCheck reports whether the database is reachable
func ReadinessCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes registers all API routes. A nil limiter leaves writes unlimited.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, userService service.IUserService, limiter *middleware.RateLimiter) {
	router.GET("/", HealthCheck)
	router.GET("/health", ReadinessCheck(db))

	var writeMiddleware []gin.HandlerFunc
	if limiter != nil {
		writeMiddleware = append(writeMiddleware, limiter.RateLimitMiddleware())
	}

	userHandler := NewUserHandler(userService)
	userHandler.RegisterRoutes(router, writeMiddleware...)
}
