package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps titles in process memory. Used by tests and for running
// the service without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	titles []Title
	byText map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byText: make(map[string]int),
	}
}

func (s *MemoryStore) Register(ctx context.Context, text string) (*Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byText[text]; ok {
		existing := s.titles[i]
		return &existing, nil
	}

	t := Title{
		UUID:      uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.byText[text] = len(s.titles)
	s.titles = append(s.titles, t)
	return &t, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.titles))
	for i, t := range s.titles {
		out[i] = t.Text
	}
	return out, nil
}

func (s *MemoryStore) Exists(ctx context.Context, text string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byText[text]
	return ok, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
