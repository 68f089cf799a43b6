package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// FileStore keeps the identity in a single JSON file, the closest Go
// analog of the browser's local storage slot. Writes go through a temp
// file and rename so a crash mid-write never leaves a half-record behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path. Parent directories are
// created on the first Save, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileRecord struct {
	User *identity.Identity `json:"user"`
}

func (s *FileStore) Load(ctx context.Context) (*identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sessionstore: read %s: %w", s.path, err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Join(ErrRecordCorrupt, err)
	}
	if rec.User == nil {
		return nil, ErrRecordNotFound
	}

	return rec.User, nil
}

func (s *FileStore) Save(ctx context.Context, id *identity.Identity) error {
	if id == nil {
		return ErrNilIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(fileRecord{User: id})
	if err != nil {
		return fmt.Errorf("sessionstore: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sessionstore: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("sessionstore: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sessionstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sessionstore: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sessionstore: chmod: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sessionstore: rename: %w", err)
	}

	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("sessionstore: remove %s: %w", s.path, err)
	}
	return nil
}
