// Package imagestore provides transient in-memory photo storage.
package imagestore

import (
	"context"
	"fmt"
	"sync"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// MemoryStore implements the ImageStore port with an in-process map.
// Handles are session-scoped, like browser object URLs: every Put must be
// balanced by a Release (or a ReleaseAll on clear) or the bytes stay pinned
// for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string]output.ImageObject
	nextID uint64
}

// NewMemoryStore creates an empty in-memory image store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		images: make(map[string]output.ImageObject),
	}
}

// Put stores image bytes under a fresh handle.
func (s *MemoryStore) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image %s: %w", name, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("img-%d", s.nextID)

	s.images[id] = output.ImageObject{
		ID:          id,
		Name:        name,
		ContentType: contentType,
		Data:        data,
	}
	return id, nil
}

// Get returns the stored object for a handle.
func (s *MemoryStore) Get(_ context.Context, id string) (output.ImageObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.images[id]
	if !ok {
		return output.ImageObject{}, domain.ErrPhotoNotFound
	}
	return obj, nil
}

// Release frees a single handle. Releasing an unknown handle is not an
// error; clear may race with individual releases.
func (s *MemoryStore) Release(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.images, id)
	return nil
}

// ReleaseAll frees every handle.
func (s *MemoryStore) ReleaseAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.images = make(map[string]output.ImageObject)
	return nil
}

// Count returns the number of stored images.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.images)
}
