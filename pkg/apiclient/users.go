package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// UsersService exposes the user profile endpoints.
type UsersService struct {
	client *Client
}

// Users returns the users service bound to this client.
func (c *Client) Users() *UsersService {
	return &UsersService{client: c}
}

// Activity is one entry of a user's public activity feed.
type Activity struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
	Link      string `json:"link,omitempty"`
}

// GetProfile fetches a user by id, or the authenticated user when id is
// empty.
func (s *UsersService) GetProfile(ctx context.Context, id string) (*identity.Identity, error) {
	if id == "" {
		id = "me"
	}
	var user identity.Identity
	if err := s.client.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActivity fetches a user's activity feed, or the authenticated user's
// when id is empty.
func (s *UsersService) GetActivity(ctx context.Context, id string) ([]Activity, error) {
	if id == "" {
		id = "me"
	}
	var activity []Activity
	if err := s.client.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(id)+"/activity", nil, nil, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
