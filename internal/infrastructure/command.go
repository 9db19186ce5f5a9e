package infrastructure

import (
	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// CommandBuilder assembles argument vectors for the extraction tool. The
// URL is always passed as a single opaque argument, never through a shell.
type CommandBuilder struct {
	AudioFormat string
	CookieFile  string
}

// NewCommandBuilder creates a builder from the download configuration.
func NewCommandBuilder(cfg *domain.DownloadConfig) *CommandBuilder {
	return &CommandBuilder{
		AudioFormat: cfg.AudioFormat,
		CookieFile:  cfg.CookieFile,
	}
}

// BaseArgs returns the fixed policy flags shared by every invocation:
// best-audio selection, audio extraction to the target format,
// line-buffered output and no playlist expansion. The cookie file is only
// passed when it exists on disk.
func (b *CommandBuilder) BaseArgs(url string) []string {
	args := []string{
		url,
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", b.AudioFormat,
		"--newline",
		"--no-playlist",
	}
	if b.CookieFile != "" && fileExists(b.CookieFile) {
		args = append(args, "--cookies", b.CookieFile)
	}
	return args
}

// ResolveArgs returns the dry-run variant that prints the templated output
// filename without downloading anything.
func (b *CommandBuilder) ResolveArgs(url string) []string {
	return append(b.BaseArgs(url),
		"--output", "%(title)s.%(ext)s",
		"--skip-download",
		"--print", "filename",
	)
}

// DownloadArgs returns the real download variant writing to outputPath.
func (b *CommandBuilder) DownloadArgs(url, outputPath string) []string {
	return append(b.BaseArgs(url), "--output", outputPath)
}
