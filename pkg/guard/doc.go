// Package guard gates views that require an authenticated identity. It is
// a stateless projection of the session manager's state: pending while the
// durable record is still being resolved, a redirect to the sign-in view
// (carrying the requested path) while unauthenticated, pass-through once
// authenticated. Check returns the decision as a value for view layers
// that render themselves; Protect is the same logic as net/http
// middleware.
package guard
