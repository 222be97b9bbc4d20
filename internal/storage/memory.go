package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore keeps objects in process memory. It backs local development
// and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	folder  string
	objects map[string][]byte
}

func NewMemoryStore(folder string) *MemoryStore {
	return &MemoryStore{folder: folder, objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "storage: memory read")
	}
	s.mu.Lock()
	s.objects[name] = data
	s.mu.Unlock()
	return fmt.Sprintf("memory://%s/%s", s.folder, name), nil
}

func (s *MemoryStore) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[name]; !ok {
		return errors.Errorf("storage: object %q not found", name)
	}
	delete(s.objects, name)
	return nil
}

// Get returns a stored object, primarily for test assertions.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[name]
	return data, ok
}

// Len reports how many objects are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
