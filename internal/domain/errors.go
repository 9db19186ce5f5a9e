package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL rejects a malformed or non-absolute source URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidDestination rejects a destination directory that does not
	// resolve inside the sandbox root.
	ErrInvalidDestination = errors.New("invalid destination directory")

	// ErrNotFound means no artifact exists for the given filename or token.
	ErrNotFound = errors.New("download not found")

	// ErrNoArtifact means the extraction exited cleanly but produced no
	// output file.
	ErrNoArtifact = errors.New("no audio file produced")
)

// ResolveError reports a failed dry-run filename resolution. Detail is
// sourced from the tool's captured stderr, falling back to stdout.
type ResolveError struct {
	Detail string
}

func (e *ResolveError) Error() string { return e.Detail }

// ExtractError reports a nonzero exit from the extraction process.
type ExtractError struct {
	Binary string
	Status int
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Binary, e.Status)
}
