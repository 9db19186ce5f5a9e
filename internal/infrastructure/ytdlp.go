package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// YTDLPExtractor runs the extraction tool as an external process. Any
// binary honoring the yt-dlp argument contract is substitutable.
type YTDLPExtractor struct {
	binary string
	logger *zap.Logger
}

// NewYTDLPExtractor creates an extractor for the given binary.
func NewYTDLPExtractor(binary string, logger *zap.Logger) *YTDLPExtractor {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPExtractor{binary: binary, logger: logger}
}

// Binary returns the configured tool name.
func (e *YTDLPExtractor) Binary() string {
	return e.binary
}

// Start launches the tool with stdout and stderr merged into one pipe and
// feeds its output line by line through a channel. The read loop runs in
// its own goroutine so a pending read never blocks other requests.
func (e *YTDLPExtractor) Start(ctx context.Context, args []string) (domain.ExtractProcess, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	// The child holds its own copy of the write end; close ours so the
	// read side sees EOF when the process exits.
	w.Close()

	proc := &ytdlpProcess{cmd: cmd, lines: make(chan string)}
	go func() {
		defer close(proc.lines)
		defer r.Close()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			proc.lines <- scanner.Text()
		}
	}()

	return proc, nil
}

// Run executes the tool to completion with stdout and stderr captured
// separately, so diagnostic noise cannot corrupt machine-parseable output.
func (e *YTDLPExtractor) Run(ctx context.Context, args []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

type ytdlpProcess struct {
	cmd   *exec.Cmd
	lines chan string
}

func (p *ytdlpProcess) Lines() <-chan string {
	return p.lines
}

// Wait blocks until the process exits. A nonzero exit is returned as the
// status with a nil error; err is reserved for spawn and IO failures.
func (p *ytdlpProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
