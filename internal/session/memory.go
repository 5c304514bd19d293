package session

import (
	"context"
	"sync"

	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// MemoryStore keeps the session in process memory, scoped to one
// process lifetime. Selected with the "memory" session driver.
type MemoryStore struct {
	mu   sync.Mutex
	sess *Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Write(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sess
	cp.Results = append([]comparable.Result(nil), sess.Results...)
	s.sess = &cp
	return nil
}

func (s *MemoryStore) Read(_ context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, ErrNotFound
	}
	cp := *s.sess
	cp.Results = append([]comparable.Result(nil), s.sess.Results...)
	return &cp, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

func (s *MemoryStore) Migrate(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
