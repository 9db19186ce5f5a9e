package app

import (
	"sync"

	"github.com/google/uuid"
)

// tokenEntry holds a completed artifact awaiting its one retrieval.
type tokenEntry struct {
	filename string
	data     []byte
}

// TokenStore holds completed artifacts in memory, keyed by a single-use
// random token. An entry is removed on first retrieval; when the store is
// full the oldest entry is evicted. The store is owned by the engine and
// cleared implicitly on process restart.
type TokenStore struct {
	mu      sync.Mutex
	limit   int
	entries map[string]tokenEntry
	order   []string
}

// NewTokenStore creates a store capped at limit entries.
func NewTokenStore(limit int) *TokenStore {
	if limit < 1 {
		limit = 1
	}
	return &TokenStore{
		limit:   limit,
		entries: make(map[string]tokenEntry),
	}
}

// Put stores an artifact and returns its freshly generated token.
func (s *TokenStore) Put(filename string, data []byte) string {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	s.entries[token] = tokenEntry{filename: filename, data: data}
	s.order = append(s.order, token)
	return token
}

// Take removes and returns the artifact for token. Check and remove happen
// under one lock so a token is consumable exactly once.
func (s *TokenStore) Take(token string) (string, []byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return "", nil, false
	}
	delete(s.entries, token)
	for i, t := range s.order {
		if t == token {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return entry.filename, entry.data, true
}

// Len returns the number of stored artifacts.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
