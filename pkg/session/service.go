package session

import (
	"context"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// RegisterInput carries the fields of a new account request.
type RegisterInput struct {
	Handle      string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"fullName"`
}

// Service is the remote collaborator the manager authenticates against.
// Implementations live in pkg/apiclient (real backend) and pkg/demo
// (canned dataset); the manager does not care which one it holds.
type Service interface {
	// Login exchanges credentials for an identity. Any error means the
	// attempt failed; the manager maps it to ErrAuthenticationFailed.
	Login(ctx context.Context, email, password string) (*identity.Identity, error)

	// Register creates an account and returns the fresh identity. New
	// accounts start with zero reputation and unverified unless the
	// backend says otherwise.
	Register(ctx context.Context, in RegisterInput) (*identity.Identity, error)

	// Logout tells the backend the session ended. Best-effort: the
	// manager ignores the error beyond logging it.
	Logout(ctx context.Context) error

	// UpdateProfile applies a partial update and returns the resulting
	// identity as the backend sees it.
	UpdateProfile(ctx context.Context, update identity.Update) (*identity.Identity, error)
}
