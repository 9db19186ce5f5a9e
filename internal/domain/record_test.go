package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFetchRecord(t *testing.T) {
	record := NewFetchRecord("https://example.com/video", StrategyShared)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "https://example.com/video", record.URL)
	assert.Equal(t, StrategyShared, record.Strategy)
	assert.Equal(t, StatusProcessing, record.Status)
	assert.False(t, record.Cached)
	assert.Nil(t, record.CompletedAt)
}

func TestFetchRecord_MarkCompleted(t *testing.T) {
	record := NewFetchRecord("https://example.com/video", StrategyDirect)

	record.MarkCompleted("song.mp3", true)

	assert.Equal(t, StatusCompleted, record.Status)
	assert.Equal(t, "song.mp3", record.Filename)
	assert.True(t, record.Cached)
	assert.NotNil(t, record.CompletedAt)
}

func TestFetchRecord_MarkFailed(t *testing.T) {
	record := NewFetchRecord("https://example.com/video", StrategyToken)

	record.MarkFailed(errors.New("yt-dlp exited with status 1"))

	assert.Equal(t, StatusFailed, record.Status)
	assert.Equal(t, "yt-dlp exited with status 1", record.ErrorMessage)
}

func TestFetchRecord_IsTerminal(t *testing.T) {
	record := NewFetchRecord("https://example.com/video", StrategyDirect)

	assert.False(t, record.IsTerminal())

	record.Status = StatusCompleted
	assert.True(t, record.IsTerminal())

	record.Status = StatusFailed
	assert.True(t, record.IsTerminal())
}

func TestValidateStatus(t *testing.T) {
	assert.True(t, ValidateStatus(StatusProcessing))
	assert.True(t, ValidateStatus(StatusCompleted))
	assert.True(t, ValidateStatus(StatusFailed))
	assert.False(t, ValidateStatus("queued"))
	assert.False(t, ValidateStatus(""))
}
