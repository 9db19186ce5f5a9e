package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/app"
	"github.com/yourusername/audio-fetch-go/internal/domain"
)

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{
			name:     "plain ascii",
			filename: "song.mp3",
			expected: `attachment; filename="song.mp3"; filename*=UTF-8''song.mp3`,
		},
		{
			name:     "spaces",
			filename: "My Song.mp3",
			expected: `attachment; filename="My Song.mp3"; filename*=UTF-8''My%20Song.mp3`,
		},
		{
			name:     "embedded quotes stripped",
			filename: `My "Song".mp3`,
			expected: `attachment; filename="My Song.mp3"; filename*=UTF-8''My%20Song.mp3`,
		},
		{
			name:     "fully non-ascii falls back to default",
			filename: "日本語",
			expected: `attachment; filename="audio.mp3"; filename*=UTF-8''%E6%97%A5%E6%9C%AC%E8%AA%9E`,
		},
		{
			name:     "header injection neutralized",
			filename: "bad\r\nname.mp3",
			expected: `attachment; filename="bad  name.mp3"; filename*=UTF-8''bad%20%20name.mp3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContentDisposition(tt.filename))
		})
	}
}

func newFetchRouter(t *testing.T, strategy app.Strategy) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := app.NewEngine(nil, nil, strategy, nil, nil, zap.NewNop())
	handler := NewFetchHandler(engine, zap.NewNop())
	router := gin.New()
	router.GET("/download/:key", handler.Fetch)
	return router
}

func newDirectStrategy(t *testing.T) (app.Strategy, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	sandbox, err := app.NewSandbox(root)
	require.NoError(t, err)
	strategy, err := app.NewStrategy(&domain.DownloadConfig{Strategy: domain.StrategyDirect}, sandbox)
	require.NoError(t, err)
	return strategy, root
}

func TestFetchHandler_ServesFile(t *testing.T) {
	strategy, root := newDirectStrategy(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "music"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "music", "song.mp3"), []byte("audio-bytes"), 0644))

	router := newFetchRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/song.mp3?dest=~/music", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio-bytes", w.Body.String())
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="song.mp3"`)
}

func TestFetchHandler_MissingFile(t *testing.T) {
	strategy, root := newDirectStrategy(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "music"), 0755))

	router := newFetchRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/missing.mp3?dest=~/music", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFetchHandler_InvalidDestination(t *testing.T) {
	strategy, _ := newDirectStrategy(t)
	router := newFetchRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/song.mp3?dest=/etc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchHandler_RejectsPathSegments(t *testing.T) {
	strategy, _ := newDirectStrategy(t)
	gin.SetMode(gin.TestMode)
	engine := app.NewEngine(nil, nil, strategy, nil, nil, zap.NewNop())
	handler := NewFetchHandler(engine, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/download/key", nil)
	c.Params = gin.Params{{Key: "key", Value: "../secret.mp3"}}

	handler.Fetch(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid filename")
}

func TestFetchHandler_TokenStrategy(t *testing.T) {
	strategy, err := app.NewStrategy(&domain.DownloadConfig{
		Strategy:   domain.StrategyToken,
		TempDir:    t.TempDir(),
		TokenLimit: 4,
	}, nil)
	require.NoError(t, err)

	// Seed one artifact through the strategy's own pipeline.
	dlReq, err := domain.NewDownloadRequest("https://example.com/v", "")
	require.NoError(t, err)
	workspace, err := strategy.Workspace(dlReq)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "song.mp3"), []byte("in-memory"), 0644))
	token, err := strategy.Commit(workspace, "song.mp3")
	require.NoError(t, err)

	router := newFetchRouter(t, strategy)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/"+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in-memory", w.Body.String())

	// Second retrieval of the same token is a 404.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/download/"+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
