package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/audio-fetch-go/internal/app"
)

func TestBrowseHandler(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Music"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "downloads"), 0755))

	sandbox, err := app.NewSandbox(root)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/browse", NewBrowseHandler(sandbox).Browse)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var listing app.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, "~", listing.Path)
	assert.Nil(t, listing.Parent)
	require.Len(t, listing.Entries, 2)
	assert.Equal(t, "downloads", listing.Entries[0].Name)
	assert.Equal(t, "Music", listing.Entries[1].Name)
}

func TestBrowseHandler_EscapingPathFallsBackToRoot(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	sandbox, err := app.NewSandbox(root)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/browse", NewBrowseHandler(sandbox).Browse)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/browse?path=%2Fetc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var listing app.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, "~", listing.Path)
}
