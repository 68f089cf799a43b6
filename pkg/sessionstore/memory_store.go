package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// MemoryStore implements Store in memory. It serializes the record the
// same way the durable backends do, so corruption and round-trip behavior
// stay observable in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*identity.Identity, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data == nil {
		return nil, ErrRecordNotFound
	}

	var id identity.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, errors.Join(ErrRecordCorrupt, err)
	}

	return &id, nil
}

func (s *MemoryStore) Save(ctx context.Context, id *identity.Identity) error {
	if id == nil {
		return ErrNilIdentity
	}

	data, err := json.Marshal(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the record with undecodable bytes. Test helper for
// exercising the self-healing path in callers.
func (s *MemoryStore) Corrupt() {
	s.mu.Lock()
	s.data = []byte("{not json")
	s.mu.Unlock()
}

// HasRecord reports whether any record is present, decodable or not.
func (s *MemoryStore) HasRecord() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data != nil
}
