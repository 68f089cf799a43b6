package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultTimeout matches the historical client configuration.
const defaultTimeout = 10 * time.Second

// CredentialSource hands out the bearer credential for outbound requests.
// The session manager implements it; the client never reads session
// storage on its own.
type CredentialSource interface {
	Credential() (string, bool)
}

// Invalidator is told when the backend signals the credential is no longer
// accepted. The session manager implements it.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Client talks JSON to the forum backend. All requests flow through the
// auth transport, which attaches the bearer credential and intercepts
// authorization failures uniformly.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	log       *slog.Logger
	transport *authTransport
}

// New creates a client for the given base URL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		log:     slog.Default(),
	}

	c.transport = &authTransport{next: http.DefaultTransport, client: c}
	c.http = &http.Client{
		Timeout:   defaultTimeout,
		Transport: c.transport,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Bind attaches the session owner. Called once during wiring, after the
// session manager has been constructed around this client's auth service.
func (c *Client) Bind(s interface {
	CredentialSource
	Invalidator
}) {
	c.transport.creds = s
	c.transport.invalidator = s
}

// Do performs a JSON request against the backend. Query may be nil; body
// and out may be nil for bodiless requests and empty responses. Non-2xx
// responses come back as *APIError, except authorization failures which
// surface as ErrAuthorizationExpired after the session has already been
// invalidated by the transport.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The transport has already invalidated the session.
		return ErrAuthorizationExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorFromResponse builds an *APIError from a non-2xx response, keeping
// the backend-provided message when one is present.
func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	apiErr := &APIError{
		Status: resp.StatusCode,
		Method: method,
		Path:   path,
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Error
		}
	}

	return apiErr
}
