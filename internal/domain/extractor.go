package domain

import "context"

// ExtractProcess is a handle to a running extraction process whose stdout
// and stderr are merged into a single line stream.
type ExtractProcess interface {
	// Lines yields the merged output one line at a time. The channel is
	// closed when the stream is exhausted.
	Lines() <-chan string

	// Wait blocks until the process exits and returns its exit status.
	// A nonzero status is not an error here; err is reserved for spawn
	// and IO level failures.
	Wait() (int, error)
}

// Extractor abstracts the external extraction tool behind an argv
// contract, so tests can replay canned output without a real binary.
type Extractor interface {
	// Binary returns the tool name, used in user-facing error messages.
	Binary() string

	// Start launches the tool for a real download with stdout and stderr
	// merged into one stream.
	Start(ctx context.Context, args []string) (ExtractProcess, error)

	// Run executes the tool to completion with stdout and stderr captured
	// separately, for single-shot invocations whose stdout must stay
	// machine-parseable. A nonzero exit is reported through err; captured
	// output is still returned.
	Run(ctx context.Context, args []string) (stdout, stderr string, err error)
}
