package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// bucketName holds the single session record.
var bucketName = []byte("session")

// BoltStore keeps the identity in a bbolt bucket. Meant for clients that
// already carry a bbolt database for local caches, so session state rides
// in the same file with transactional writes for free.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore wraps an open bbolt database. The caller owns the database
// lifecycle; Close it after the store is no longer used.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	if db == nil {
		return nil, errors.New("sessionstore: nil bolt db")
	}

	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(ctx context.Context) (*identity.Identity, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(RecordKey)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: bolt view: %w", err)
	}
	if data == nil {
		return nil, ErrRecordNotFound
	}

	var id identity.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, errors.Join(ErrRecordCorrupt, err)
	}

	return &id, nil
}

func (s *BoltStore) Save(ctx context.Context, id *identity.Identity) error {
	if id == nil {
		return ErrNilIdentity
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("sessionstore: encode: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(RecordKey), data)
	})
}

func (s *BoltStore) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(RecordKey))
	})
}
