package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 6172, config.Server.Port)
	assert.Equal(t, StrategyDirect, config.Download.Strategy)
	assert.Equal(t, "mp3", config.Download.AudioFormat)
	assert.Equal(t, "yt-dlp", config.Download.YTDLPBinary)
	assert.Equal(t, 128, config.Download.TokenLimit)
	assert.True(t, config.History.Enabled)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NotEmpty(t, config.CORS.AllowedOrigins)
}

func TestExtractError_Message(t *testing.T) {
	err := &ExtractError{Binary: "yt-dlp", Status: 1}
	assert.Equal(t, "yt-dlp exited with status 1", err.Error())
}

func TestResolveError_Message(t *testing.T) {
	err := &ResolveError{Detail: "ERROR: unsupported URL"}
	assert.Equal(t, "ERROR: unsupported URL", err.Error())
}

func TestErrNoArtifact_Message(t *testing.T) {
	assert.Equal(t, "no audio file produced", ErrNoArtifact.Error())
}
