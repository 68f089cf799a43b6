package identity

import (
	"strings"
	"time"
)

// Identity is the authenticated user record as returned by the forum
// backend. ID is opaque and immutable once assigned; Handle and Email are
// unique on the backend side, nothing here enforces that. Reputation is
// adjusted only by backend actions (votes, accepted answers), never set
// directly by a client.
type Identity struct {
	ID          string    `json:"id"`
	Handle      string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"fullName"`
	Avatar      string    `json:"avatar,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
	Reputation  int       `json:"reputation"`
	Verified    bool      `json:"isVerified"`
}

// Update carries optional profile fields for a partial update. Nil fields
// are left untouched. ID and JoinedAt are deliberately absent: they never
// change after the account exists.
type Update struct {
	Handle      *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"fullName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// IsZero reports whether the update carries no fields at all.
func (u Update) IsZero() bool {
	return u.Handle == nil && u.Email == nil && u.DisplayName == nil && u.Avatar == nil
}

// Apply returns a copy of the identity with the update merged in. The
// receiver is never mutated, so callers can discard the result on a failed
// remote update without rolling anything back.
func (i Identity) Apply(u Update) Identity {
	out := i
	if u.Handle != nil {
		out.Handle = *u.Handle
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.DisplayName != nil {
		out.DisplayName = *u.DisplayName
	}
	if u.Avatar != nil {
		out.Avatar = *u.Avatar
	}
	return out
}

// Validate checks the fields a client can reasonably verify before handing
// the record to the rest of the toolkit.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(i.Handle) == "" {
		return ErrMissingHandle
	}
	if !strings.Contains(i.Email, "@") {
		return ErrInvalidEmail
	}
	if i.Reputation < 0 {
		return ErrNegativeReputation
	}
	return nil
}

// Equal reports field-for-field equality. Timestamps compare by instant,
// not by wall-clock representation.
func (i Identity) Equal(other Identity) bool {
	return i.ID == other.ID &&
		i.Handle == other.Handle &&
		i.Email == other.Email &&
		i.DisplayName == other.DisplayName &&
		i.Avatar == other.Avatar &&
		i.JoinedAt.Equal(other.JoinedAt) &&
		i.Reputation == other.Reputation &&
		i.Verified == other.Verified
}
