package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// EventType tags a ProgressEvent variant.
type EventType string

const (
	EventLog      EventType = "log"
	EventError    EventType = "error"
	EventComplete EventType = "complete"
)

// ProgressEvent is one frame of a download's progress stream. Events are
// emitted strictly in the order observed from the extraction process and
// terminated by exactly one of EventError or EventComplete.
type ProgressEvent struct {
	Type     EventType `json:"type"`
	Message  string    `json:"message,omitempty"`
	Filename string    `json:"filename,omitempty"`
	Token    string    `json:"token,omitempty"`
}

// LogEvent wraps one meaningful output line from the extraction process.
func LogEvent(message string) ProgressEvent {
	return ProgressEvent{Type: EventLog, Message: message}
}

// ErrorEvent terminates a stream with a failure message.
func ErrorEvent(message string) ProgressEvent {
	return ProgressEvent{Type: EventError, Message: message}
}

// CompleteEvent terminates a stream with the retrieval key for the
// finished artifact. Token is empty under filesystem strategies, where the
// filename itself is the key.
func CompleteEvent(filename, token string) ProgressEvent {
	return ProgressEvent{Type: EventComplete, Filename: filename, Token: token}
}

// IsTerminal reports whether the event ends the stream.
func (e ProgressEvent) IsTerminal() bool {
	return e.Type == EventError || e.Type == EventComplete
}

// DownloadRequest is an accepted request to extract audio from a URL.
// Immutable once constructed.
type DownloadRequest struct {
	URL  string
	Dest string
}

// NewDownloadRequest validates the source URL and captures the optional
// destination directory. Destination validation is strategy-specific and
// happens when the workspace is resolved.
func NewDownloadRequest(rawURL, dest string) (*DownloadRequest, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidURL)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, trimmed)
	}
	return &DownloadRequest{URL: trimmed, Dest: dest}, nil
}

// OutputSpec is the predicted output of an extraction, produced by the
// filename resolver before any bytes are fetched.
type OutputSpec struct {
	Filename string // final path component with the audio extension applied
	Ext      string // extension without the leading dot
}

// NewOutputSpec builds an OutputSpec from a bare filename.
func NewOutputSpec(filename string) OutputSpec {
	return OutputSpec{
		Filename: filename,
		Ext:      strings.TrimPrefix(filepath.Ext(filename), "."),
	}
}
