package store

import (
	"context"
	"sync"

	carterrors "github.com/abgdnv/gocart/internal/errors"
)

// InMemory implements SnapshotStore using an in-memory map.
type InMemory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewInMemoryStore creates a new instance of InMemory.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		slots: make(map[string][]byte),
	}
}

func (s *InMemory) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[key]
	if !ok {
		return nil, carterrors.ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *InMemory) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte(nil), data...)
	return nil
}

func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}
