package guard

import "log/slog"

// Option is a functional option for configuring the Guard
type Option func(*Guard)

// WithSignInPath sets the sign-in view location (default "/login")
func WithSignInPath(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.signInPath = path
		}
	}
}

// WithPlaceholder sets the pending placeholder body
func WithPlaceholder(text string) Option {
	return func(g *Guard) {
		g.placeholder = text
	}
}

// WithLogger sets the structured logger, ignoring nil
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}
