package apiclient

import (
	"context"
	"net/http"

	"github.com/utdiscussions/forumkit/pkg/identity"
	"github.com/utdiscussions/forumkit/pkg/session"
)

// AuthService exposes the authentication endpoints and satisfies
// session.Service, so a session manager can be constructed directly
// around it.
type AuthService struct {
	client *Client
}

// Auth returns the authentication service bound to this client.
func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

// authResponse is the login/register exchange payload. The token field is
// carried for forward compatibility; the current backend contract derives
// the bearer credential from the user identifier.
type authResponse struct {
	User  identity.Identity `json:"user"`
	Token string            `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an identity via POST /auth/login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*identity.Identity, error) {
	var resp authResponse
	err := s.client.Do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an account via POST /auth/register.
func (s *AuthService) Register(ctx context.Context, in session.RegisterInput) (*identity.Identity, error) {
	var resp authResponse
	if err := s.client.Do(ctx, http.MethodPost, "/auth/register", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout notifies the backend via POST /auth/logout. Best-effort by
// contract; callers ignore the error beyond logging.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// UpdateProfile applies a partial profile update via PUT /users/me and
// returns the identity as the backend now sees it.
func (s *AuthService) UpdateProfile(ctx context.Context, update identity.Update) (*identity.Identity, error) {
	var updated identity.Identity
	if err := s.client.Do(ctx, http.MethodPut, "/users/me", nil, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RefreshToken calls POST /auth/refresh. The backend contract around
// credential refresh is unsettled; the session manager never schedules
// this, it exists for callers that know their deployment supports it.
func (s *AuthService) RefreshToken(ctx context.Context) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/auth/refresh", nil, nil, &resp); err != nil {
		return "", err
	}
	s.client.log.DebugContext(ctx, "credential refreshed")
	return resp.Token, nil
}
