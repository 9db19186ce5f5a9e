package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple path",
			input:    "/tmp/simple/path",
			expected: "/tmp/simple/path",
		},
		{
			name:     "path with spaces",
			input:    "/tmp/path with spaces",
			expected: "'/tmp/path with spaces'",
		},
		{
			name:     "path with single quote",
			input:    "/tmp/path'with'quote",
			expected: "'/tmp/path'\"'\"'with'\"'\"'quote'",
		},
		{
			name:     "path with double quote",
			input:    `/tmp/path"with"quote`,
			expected: `'/tmp/path"with"quote'`,
		},
		{
			name:     "path with dollar sign",
			input:    "/tmp/path$with$dollar",
			expected: "'/tmp/path$with$dollar'",
		},
		{
			name:     "path with backtick",
			input:    "/tmp/path`with`backtick",
			expected: "'/tmp/path`with`backtick'",
		},
		{
			name:     "path with ampersand",
			input:    "/tmp/path&with&ampersand",
			expected: "'/tmp/path&with&ampersand'",
		},
		{
			name:     "output template",
			input:    "%(title)s.%(ext)s",
			expected: "'%(title)s.%(ext)s'",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "''",
		},
		{
			name:     "single quote in middle",
			input:    "/tmp/it's a test",
			expected: `'/tmp/it'"'"'s a test'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShellEscape(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestShellEscapeCommand(t *testing.T) {
	tests := []struct {
		name     string
		binary   string
		args     []string
		expected string
	}{
		{
			name:     "simple command",
			binary:   "yt-dlp",
			args:     []string{"--version"},
			expected: "yt-dlp --version",
		},
		{
			name:     "output path with spaces",
			binary:   "yt-dlp",
			args:     []string{"--output", "/tmp/out/My Song.mp3"},
			expected: "yt-dlp --output '/tmp/out/My Song.mp3'",
		},
		{
			name:     "url with query params",
			binary:   "yt-dlp",
			args:     []string{"https://example.com/watch?v=abc&t=20"},
			expected: "yt-dlp 'https://example.com/watch?v=abc&t=20'",
		},
		{
			name:     "binary with space",
			binary:   "/opt/my tools/yt-dlp",
			args:     []string{"--version"},
			expected: "'/opt/my tools/yt-dlp' --version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShellEscapeCommand(tt.binary, tt.args...)
			assert.Equal(t, tt.expected, result)
		})
	}
}
