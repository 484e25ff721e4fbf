package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/usuarios/backend/internal/types"
)

// InternalErrorMessage is the only detail a client sees for an unexpected failure
const InternalErrorMessage = "Erro interno"

// Recovery is a middleware that logs panics and answers them with the generic JSON error
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", GetRequestID(c)).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")

				_ = c.Error(fmt.Errorf("panic: %v", rec))
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: InternalErrorMessage})
			}
		}()

		c.Next()
	}
}
