package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/yourusername/audio-fetch-go/internal/domain"
	"github.com/yourusername/audio-fetch-go/internal/infrastructure"
)

// FilenameResolver predicts the output filename of an extraction by running
// the tool in print-only mode, so cache hits can be decided before any
// bytes are fetched.
type FilenameResolver struct {
	extractor domain.Extractor
	builder   *infrastructure.CommandBuilder
}

// NewFilenameResolver creates a resolver over the given extractor.
func NewFilenameResolver(extractor domain.Extractor, builder *infrastructure.CommandBuilder) *FilenameResolver {
	return &FilenameResolver{extractor: extractor, builder: builder}
}

// Resolve returns the predicted output spec for url. The tool may print
// diagnostic lines before the filename, so the last non-empty line is
// authoritative. Directory segments in the tool's output are never trusted.
func (r *FilenameResolver) Resolve(ctx context.Context, url string) (domain.OutputSpec, error) {
	stdout, stderr, err := r.extractor.Run(ctx, r.builder.ResolveArgs(url))
	if err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = strings.TrimSpace(stdout)
		}
		if detail == "" {
			detail = "failed to resolve filename"
		}
		return domain.OutputSpec{}, &domain.ResolveError{Detail: detail}
	}

	lines := strings.Split(stdout, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		// The dry run skips the re-encode, so the tool reports the
		// pre-extraction container name. The real download produces the
		// target audio format.
		if strings.HasSuffix(line, ".webm") {
			line = strings.TrimSuffix(line, ".webm") + "." + r.builder.AudioFormat
		}
		return domain.NewOutputSpec(filepath.Base(line)), nil
	}

	return domain.OutputSpec{}, &domain.ResolveError{
		Detail: "filename not provided by " + r.extractor.Binary(),
	}
}
