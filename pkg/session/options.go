package session

import (
	"log/slog"

	"github.com/utdiscussions/forumkit/pkg/sessionstore"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets the durable session store
func WithStore(store sessionstore.Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithService sets the remote authentication collaborator
func WithService(svc Service) Option {
	return func(m *Manager) {
		m.svc = svc
	}
}

// WithLogger sets the structured logger, ignoring nil
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
