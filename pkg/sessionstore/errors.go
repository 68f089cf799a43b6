package sessionstore

import "errors"

var (
	// ErrRecordNotFound indicates no identity is persisted
	ErrRecordNotFound = errors.New("sessionstore: record not found")

	// ErrRecordCorrupt indicates the persisted record cannot be decoded
	ErrRecordCorrupt = errors.New("sessionstore: record corrupt")

	// ErrNilIdentity indicates Save was called without a record
	ErrNilIdentity = errors.New("sessionstore: nil identity")
)
