package app

import (
	"context"
	"os"
	"sync"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// fakeExtractor replays canned tool behavior. Resolve calls go through Run,
// downloads through Start; a download writes its output file the way the
// real tool would so Commit finds an artifact.
type fakeExtractor struct {
	mu sync.Mutex

	resolveStdout string
	resolveStderr string
	resolveErr    error

	downloadLines []string
	exitStatus    int
	startErr      error
	waitErr       error
	produceFile   bool
	fileContents  []byte

	startCalls int
	runCalls   int
	lastArgs   []string
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		produceFile:  true,
		fileContents: []byte("fake audio"),
	}
}

func (f *fakeExtractor) Binary() string { return "yt-dlp" }

func (f *fakeExtractor) Run(ctx context.Context, args []string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runCalls++
	return f.resolveStdout, f.resolveStderr, f.resolveErr
}

func (f *fakeExtractor) Start(ctx context.Context, args []string) (domain.ExtractProcess, error) {
	f.mu.Lock()
	f.startCalls++
	f.lastArgs = args
	f.mu.Unlock()

	if f.startErr != nil {
		return nil, f.startErr
	}

	if f.produceFile && f.exitStatus == 0 {
		if path := outputArg(args); path != "" {
			if err := os.WriteFile(path, f.fileContents, 0644); err != nil {
				return nil, err
			}
		}
	}

	lines := make(chan string, len(f.downloadLines))
	for _, line := range f.downloadLines {
		lines <- line
	}
	close(lines)

	return &fakeProcess{lines: lines, status: f.exitStatus, err: f.waitErr}, nil
}

func (f *fakeExtractor) starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls
}

// outputArg extracts the value following --output.
func outputArg(args []string) string {
	for i, arg := range args {
		if arg == "--output" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

type fakeProcess struct {
	lines  chan string
	status int
	err    error
}

func (p *fakeProcess) Lines() <-chan string { return p.lines }

func (p *fakeProcess) Wait() (int, error) { return p.status, p.err }
