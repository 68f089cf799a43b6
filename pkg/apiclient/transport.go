package apiclient

import (
	"log/slog"
	"net/http"
)

// AuthExpiredFunc is told that a request was rejected as unauthorized,
// with the path that was being requested so navigation can return the
// user there after signing in again.
type AuthExpiredFunc func(returnTo string)

// authTransport attaches the bearer credential to every outbound request
// and reacts to authorization failures before the caller sees them. It is
// stateless by itself; credentials come from the bound session owner.
type authTransport struct {
	next        http.RoundTripper
	client      *Client
	creds       CredentialSource
	invalidator Invalidator
	onExpired   AuthExpiredFunc
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.creds != nil {
		if cred, ok := t.creds.Credential(); ok {
			// Clone before mutating: RoundTrippers must not modify the
			// caller's request.
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+cred)
		}
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		ctx := req.Context()
		t.client.log.WarnContext(ctx, "authorization rejected, invalidating session",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
		if t.invalidator != nil {
			t.invalidator.Invalidate(ctx)
		}
		if t.onExpired != nil {
			t.onExpired(req.URL.Path)
		}
	}

	return resp, nil
}
