package sessionstore

import (
	"context"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// RecordKey is the well-known key the persisted identity lives under in
// every backend. It mirrors the single-record layout the forum clients
// have always used.
const RecordKey = "user"

// Store persists the authenticated identity across restarts. There is at
// most one record; Save overwrites, Clear is idempotent.
type Store interface {
	// Load returns the persisted identity. ErrRecordNotFound when absent,
	// ErrRecordCorrupt when present but undecodable.
	Load(ctx context.Context) (*identity.Identity, error)

	// Save writes the identity, replacing any previous record.
	Save(ctx context.Context, id *identity.Identity) error

	// Clear removes the record. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
