package store

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// MemoryStore keeps maps in process memory.
// Useful for testing and for the development server.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string][]byte)}
}

// Get returns a copy of the stored data.
func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateMapName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.maps[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "map %s not found", name)
	}
	return slices.Clone(data), nil
}

// Put stores a copy of data.
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[name] = slices.Clone(data)
	return nil
}

// Delete removes name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maps[name]; !ok {
		return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
	}
	delete(s.maps, name)
	return nil
}

// List returns the stored names in lexical order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.maps))
	for name := range s.maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

// Backend returns "memory".
func (s *MemoryStore) Backend() string { return "memory" }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
