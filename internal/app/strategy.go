package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// Artifact is a retrievable completed download. Path is set for
// filesystem-backed strategies, Data for the in-memory token strategy.
type Artifact struct {
	Filename string
	Path     string
	Data     []byte
}

// Strategy governs where extraction output lands and how it is retrieved
// afterwards. Exactly one strategy is active per deployment; selecting it
// is a construction-time decision, not a per-request branch.
type Strategy interface {
	// Name identifies the strategy in config and history records.
	Name() string

	// Workspace validates the request and returns the directory the
	// extraction writes into. Called before filename resolution so an
	// invalid destination is rejected without spawning anything.
	Workspace(req *domain.DownloadRequest) (string, error)

	// Reusable reports whether a pre-existing file in the workspace
	// satisfies a request without re-extraction.
	Reusable() bool

	// Commit verifies and records the finished artifact, returning its
	// retrieval key. Filesystem strategies refresh the file's modification
	// time; the token strategy ingests the produced file into memory and
	// discards the workspace.
	Commit(workspace, filename string) (string, error)

	// Open returns the artifact for a retrieval key. dest is only
	// consulted by the direct strategy.
	Open(key, dest string) (*Artifact, error)
}

// NewStrategy builds the strategy named by cfg.
func NewStrategy(cfg *domain.DownloadConfig, sandbox *Sandbox) (Strategy, error) {
	switch cfg.Strategy {
	case domain.StrategyDirect:
		return &DirectStrategy{sandbox: sandbox}, nil
	case domain.StrategyShared:
		if cfg.CacheDir == "" {
			return nil, fmt.Errorf("shared strategy requires a cache directory")
		}
		return &SharedCacheStrategy{dir: cfg.CacheDir}, nil
	case domain.StrategyToken:
		return &TokenStrategy{store: NewTokenStore(cfg.TokenLimit), tempRoot: cfg.TempDir}, nil
	default:
		return nil, fmt.Errorf("unknown download strategy: %s", cfg.Strategy)
	}
}

// DirectStrategy writes into a caller-supplied sandboxed directory and
// serves files back from it by filename. Retrieval needs the same
// destination plus the filename.
type DirectStrategy struct {
	sandbox *Sandbox
}

func (s *DirectStrategy) Name() string { return domain.StrategyDirect }

func (s *DirectStrategy) Workspace(req *domain.DownloadRequest) (string, error) {
	return s.sandbox.ResolveDir(req.Dest)
}

func (s *DirectStrategy) Reusable() bool { return true }

func (s *DirectStrategy) Commit(workspace, filename string) (string, error) {
	if err := touchArtifact(filepath.Join(workspace, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *DirectStrategy) Open(key, dest string) (*Artifact, error) {
	dir, err := s.sandbox.StatDir(dest)
	if err != nil {
		return nil, err
	}
	return openFileArtifact(dir, key)
}

// SharedCacheStrategy writes into one server-owned directory shared by all
// requests; the directory is implied on retrieval.
type SharedCacheStrategy struct {
	dir string
}

func (s *SharedCacheStrategy) Name() string { return domain.StrategyShared }

func (s *SharedCacheStrategy) Workspace(req *domain.DownloadRequest) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return s.dir, nil
}

func (s *SharedCacheStrategy) Reusable() bool { return true }

func (s *SharedCacheStrategy) Commit(workspace, filename string) (string, error) {
	if err := touchArtifact(filepath.Join(workspace, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *SharedCacheStrategy) Open(key, dest string) (*Artifact, error) {
	return openFileArtifact(s.dir, key)
}

// TokenStrategy extracts into a throwaway temp directory, holds the result
// in memory and hands out a single-use token. It never reuses prior work.
type TokenStrategy struct {
	store    *TokenStore
	tempRoot string
}

func (s *TokenStrategy) Name() string { return domain.StrategyToken }

func (s *TokenStrategy) Workspace(req *domain.DownloadRequest) (string, error) {
	dir, err := os.MkdirTemp(s.tempRoot, "audio-fetch-*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

func (s *TokenStrategy) Reusable() bool { return false }

func (s *TokenStrategy) Commit(workspace, filename string) (string, error) {
	defer os.RemoveAll(workspace)

	matches, err := filepath.Glob(filepath.Join(workspace, "*"))
	if err != nil {
		return "", err
	}
	// An extraction run is expected to produce exactly one output file;
	// take the first one found.
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		data, err := os.ReadFile(match)
		if err != nil {
			return "", err
		}
		return s.store.Put(filepath.Base(match), data), nil
	}
	return "", domain.ErrNoArtifact
}

func (s *TokenStrategy) Open(key, dest string) (*Artifact, error) {
	filename, data, ok := s.store.Take(key)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &Artifact{Filename: filename, Data: data}, nil
}

// touchArtifact verifies the file exists and refreshes its modification
// time so cache freshness tracks last use.
func touchArtifact(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNoArtifact
		}
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}

func openFileArtifact(dir, filename string) (*Artifact, error) {
	path := filepath.Join(dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, domain.ErrNotFound
	}
	return &Artifact{Filename: filename, Path: path}, nil
}
