package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/app"
)

func newStreamRouter(t *testing.T, strategy app.Strategy) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := app.NewEngine(nil, nil, strategy, nil, nil, zap.NewNop())
	handler := NewStreamHandler(engine, zap.NewNop())
	router := gin.New()
	router.GET("/download/stream", handler.Stream)
	return router
}

func TestStreamHandler_RejectsMissingURL(t *testing.T) {
	strategy, _ := newDirectStrategy(t)
	router := newStreamRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/stream", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid url")
}

func TestStreamHandler_RejectsBadScheme(t *testing.T) {
	strategy, _ := newDirectStrategy(t)
	router := newStreamRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/stream?url=ftp%3A%2F%2Fexample.com%2Fv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamHandler_RejectsEscapingDestination(t *testing.T) {
	strategy, _ := newDirectStrategy(t)
	router := newStreamRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/download/stream?url=https%3A%2F%2Fexample.com%2Fv&dest=%2Fetc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid destination")
}
