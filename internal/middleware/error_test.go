package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(log), Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Erro interno"}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "boom")

	assert.Contains(t, buf.String(), "recovered from panic")
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), rr.Header().Get(RequestIDHeader))
}

func TestRequestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("database is down"))
		c.Status(http.StatusInternalServerError)
	})

	tests := []struct {
		path  string
		level string
	}{
		{"/ok", `"level":"info"`},
		{"/missing", `"level":"warn"`},
		{"/fail", `"level":"error"`},
	}

	for _, tt := range tests {
		buf.Reset()
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Contains(t, buf.String(), tt.level, tt.path)
		assert.Contains(t, buf.String(), tt.path)
	}
	assert.Contains(t, buf.String(), "database is down")
}
