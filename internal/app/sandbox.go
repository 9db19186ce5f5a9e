package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// Sandbox confines caller-supplied filesystem paths to a fixed root
// directory, the invoking user's home by default. Every path that reaches
// the filesystem through a request parameter goes through it.
type Sandbox struct {
	root string
}

// NewSandbox creates a sandbox rooted at the canonical form of root.
func NewSandbox(root string) (*Sandbox, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root: %w", err)
	}
	return &Sandbox{root: resolved}, nil
}

// NewHomeSandbox creates a sandbox rooted at the user's home directory.
func NewHomeSandbox() (*Sandbox, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return NewSandbox(home)
}

// Root returns the canonical sandbox root.
func (s *Sandbox) Root() string {
	return s.root
}

// expand resolves the ~ shorthand against the sandbox root.
func (s *Sandbox) expand(path string) string {
	if path == "~" {
		return s.root
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(s.root, path[2:])
	}
	return path
}

// ResolveDir validates a destination directory, creating it if absent. The
// canonical path must be a directory equal to or nested under the root.
func (s *Sandbox) ResolveDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: destination directory is required", domain.ErrInvalidDestination)
	}
	candidate, err := filepath.Abs(s.expand(path))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDestination, err)
	}
	if err := os.MkdirAll(candidate, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDestination, err)
	}
	return s.verifyDir(candidate)
}

// StatDir is the read-only variant of ResolveDir: it never creates the
// directory.
func (s *Sandbox) StatDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: destination directory is required", domain.ErrInvalidDestination)
	}
	candidate, err := filepath.Abs(s.expand(path))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDestination, err)
	}
	return s.verifyDir(candidate)
}

// verifyDir canonicalizes candidate (following symlinks) and checks it is a
// directory inside the root.
func (s *Sandbox) verifyDir(candidate string) (string, error) {
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDestination, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDestination, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", domain.ErrInvalidDestination, candidate)
	}
	if !s.contains(resolved) {
		return "", fmt.Errorf("%w: must be under %s", domain.ErrInvalidDestination, s.root)
	}
	return resolved, nil
}

// contains reports whether path is the root or nested under it.
func (s *Sandbox) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// Tildify renders a path relative to the root with a ~ prefix for display.
// Paths outside the root are returned as-is.
func (s *Sandbox) Tildify(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	rel, err := filepath.Rel(s.root, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return resolved
	}
	if rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}

// DirEntry is one subdirectory in a browse listing.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Listing is the result of browsing a directory inside the sandbox.
type Listing struct {
	Path    string     `json:"path"`
	Parent  *string    `json:"parent"`
	Entries []DirEntry `json:"entries"`
}

// ListDirs lists the immediate subdirectories of path, which may use the ~
// shorthand and defaults to the root. Paths that do not resolve to a
// directory under the root fall back to the root; a permission failure
// empties the listing rather than erroring.
func (s *Sandbox) ListDirs(path string) *Listing {
	if strings.TrimSpace(path) == "" {
		path = "~"
	}
	target, err := s.StatDir(path)
	if err != nil {
		target = s.root
	}

	entries := []DirEntry{}
	children, err := os.ReadDir(target)
	if err == nil {
		sort.Slice(children, func(i, j int) bool {
			return strings.ToLower(children[i].Name()) < strings.ToLower(children[j].Name())
		})
		for _, child := range children {
			if !child.IsDir() {
				continue
			}
			full := filepath.Join(target, child.Name())
			entries = append(entries, DirEntry{Name: child.Name(), Path: s.Tildify(full)})
		}
	}

	listing := &Listing{Path: s.Tildify(target), Entries: entries}
	if target != s.root {
		parent := s.Tildify(filepath.Dir(target))
		listing.Parent = &parent
	}
	return listing
}
