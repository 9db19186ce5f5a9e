package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/domain"
	"github.com/yourusername/audio-fetch-go/internal/infrastructure"
)

// Engine orchestrates a download: it predicts the output filename, decides
// between cache reuse and a fresh extraction, supervises the external
// process and emits an ordered progress event stream.
type Engine struct {
	extractor domain.Extractor
	builder   *infrastructure.CommandBuilder
	resolver  *FilenameResolver
	strategy  Strategy
	history   domain.HistoryRepository
	notifier  *infrastructure.NotificationService
	logger    *zap.Logger
	locks     *keyLock
}

// NewEngine creates a download engine. history and notifier may be nil.
func NewEngine(
	extractor domain.Extractor,
	builder *infrastructure.CommandBuilder,
	strategy Strategy,
	history domain.HistoryRepository,
	notifier *infrastructure.NotificationService,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		extractor: extractor,
		builder:   builder,
		resolver:  NewFilenameResolver(extractor, builder),
		strategy:  strategy,
		history:   history,
		notifier:  notifier,
		logger:    logger,
		locks:     newKeyLock(),
	}
}

// Job is an accepted request with its validated workspace.
type Job struct {
	Request   *domain.DownloadRequest
	Workspace string
	Record    *domain.FetchRecord
}

// Prepare validates the request. Invalid input is rejected here, before
// any process is spawned, so it surfaces as an immediate client error
// rather than a stream event.
func (e *Engine) Prepare(rawURL, dest string) (*Job, error) {
	req, err := domain.NewDownloadRequest(rawURL, dest)
	if err != nil {
		return nil, err
	}

	workspace, err := e.strategy.Workspace(req)
	if err != nil {
		return nil, err
	}

	record := domain.NewFetchRecord(req.URL, e.strategy.Name())
	if e.history != nil {
		if err := e.history.Create(record); err != nil {
			e.logger.Warn("Failed to record fetch", zap.Error(err))
		}
	}

	return &Job{Request: req, Workspace: workspace, Record: record}, nil
}

// Run executes the job and returns its event stream. The channel carries
// zero or more log events terminated by exactly one error or complete
// event, then closes. Cancelling ctx terminates the extraction process and
// releases the stream.
func (e *Engine) Run(ctx context.Context, job *Job) <-chan domain.ProgressEvent {
	events := make(chan domain.ProgressEvent)

	go func() {
		defer close(events)

		emit := func(ev domain.ProgressEvent) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}

		// Any failure inside the pipeline becomes a single terminal error
		// frame; the stream never ends without one.
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("Download pipeline panic", zap.Any("panic", r))
				emit(e.fail(job, fmt.Errorf("internal error: %v", r)))
			}
		}()

		emit(e.run(ctx, job, emit))
	}()

	return events
}

// run performs the pipeline and returns the terminal event.
func (e *Engine) run(ctx context.Context, job *Job, emit func(domain.ProgressEvent)) domain.ProgressEvent {
	req := job.Request

	spec, err := e.resolver.Resolve(ctx, req.URL)
	if err != nil {
		return e.fail(job, err)
	}
	job.Record.Filename = spec.Filename

	target := filepath.Join(job.Workspace, spec.Filename)

	if e.strategy.Reusable() {
		// Serialize the check-then-extract sequence per output path so two
		// concurrent requests for the same filename cannot duplicate work
		// or trample each other's output.
		unlock := e.locks.Lock(target)
		defer unlock()

		if _, err := os.Stat(target); err == nil {
			key, err := e.strategy.Commit(job.Workspace, spec.Filename)
			if err != nil {
				return e.fail(job, err)
			}
			emit(domain.LogEvent("Using cached audio for " + spec.Filename))
			return e.complete(job, spec.Filename, key, true)
		}
	}

	args := e.builder.DownloadArgs(req.URL, target)
	e.logger.Info("Starting extraction",
		zap.String("id", job.Record.ID),
		zap.String("url", req.URL),
		zap.String("command", infrastructure.ShellEscapeCommand(e.extractor.Binary(), args...)))

	proc, err := e.extractor.Start(ctx, args)
	if err != nil {
		return e.fail(job, fmt.Errorf("failed to start %s: %w", e.extractor.Binary(), err))
	}

	for line := range proc.Lines() {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "WARNING:") {
			continue
		}
		emit(domain.LogEvent(line))
	}

	status, err := proc.Wait()
	if err != nil {
		return e.fail(job, err)
	}
	if status != 0 {
		return e.fail(job, &domain.ExtractError{Binary: e.extractor.Binary(), Status: status})
	}

	key, err := e.strategy.Commit(job.Workspace, spec.Filename)
	if err != nil {
		return e.fail(job, err)
	}
	return e.complete(job, spec.Filename, key, false)
}

// Open resolves a retrieval key to its artifact under the active strategy.
func (e *Engine) Open(key, dest string) (*Artifact, error) {
	return e.strategy.Open(key, dest)
}

// Strategy returns the active destination strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

func (e *Engine) complete(job *Job, filename, key string, cached bool) domain.ProgressEvent {
	job.Record.MarkCompleted(filename, cached)
	e.updateRecord(job.Record)

	if e.notifier != nil {
		e.notifier.NotifyFetchCompleted(job.Request.URL, filename)
	}
	e.logger.Info("Download complete",
		zap.String("id", job.Record.ID),
		zap.String("filename", filename),
		zap.Bool("cached", cached))

	// Under filesystem strategies the filename is the retrieval key and
	// the token field stays empty.
	token := ""
	if key != filename {
		token = key
	}
	return domain.CompleteEvent(filename, token)
}

func (e *Engine) fail(job *Job, err error) domain.ProgressEvent {
	job.Record.MarkFailed(err)
	e.updateRecord(job.Record)

	// Non-reusable strategies own their scratch workspace; a failed job
	// must not leave it behind.
	if !e.strategy.Reusable() {
		os.RemoveAll(job.Workspace)
	}

	if e.notifier != nil {
		e.notifier.NotifyFetchFailed(job.Request.URL, err)
	}
	e.logger.Warn("Download failed",
		zap.String("id", job.Record.ID),
		zap.String("url", job.Request.URL),
		zap.Error(err))

	return domain.ErrorEvent(err.Error())
}

func (e *Engine) updateRecord(record *domain.FetchRecord) {
	if e.history == nil {
		return
	}
	if err := e.history.Update(record); err != nil {
		e.logger.Warn("Failed to update fetch record", zap.Error(err))
	}
}
