package apiclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the structured logger, ignoring nil
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPTransport replaces the underlying round tripper the auth
// transport wraps. Useful for tests and custom TLS setups.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.transport.next = rt
		}
	}
}

// WithAuthExpiredHandler registers the navigation callback invoked when a
// request is rejected as unauthorized. It receives the path that was being
// requested.
func WithAuthExpiredHandler(fn AuthExpiredFunc) Option {
	return func(c *Client) {
		c.transport.onExpired = fn
	}
}
