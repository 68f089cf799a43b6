package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/utdiscussions/forumkit/pkg/identity"
	"github.com/utdiscussions/forumkit/pkg/sessionstore"
)

// Manager is the single owner of session state for one client process.
// Every other component reads through it: views take state snapshots, the
// request client asks it for the bearer credential, the route guard asks
// it whether rendering may proceed. Nothing else touches the store after
// Resolve.
type Manager struct {
	store sessionstore.Store
	svc   Service
	log   *slog.Logger

	mu       sync.Mutex
	state    State
	current  *identity.Identity
	inFlight bool
	// epoch increments on logout and forced invalidation. A mutating
	// operation that started under an older epoch discards its result
	// instead of resurrecting a session the user already ended.
	epoch uint64
}

// New creates a session manager. A Service is required; the store defaults
// to in-memory when not set.
func New(opts ...Option) *Manager {
	m := &Manager{
		state: StateUnresolved,
		log:   slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.svc == nil {
		// Fail fast on misconfiguration, same as a missing transport
		panic("session: service is required")
	}
	if m.store == nil {
		m.store = sessionstore.NewMemoryStore()
	}

	return m
}

// Resolve reads the durable record once and settles the initial state.
// A corrupt record is logged, cleared and treated as absent. Calling
// Resolve again after resolution returns the current state without
// touching the store.
func (m *Manager) Resolve(ctx context.Context) (State, error) {
	m.mu.Lock()
	if m.state != StateUnresolved {
		state := m.state
		m.mu.Unlock()
		return state, nil
	}
	m.mu.Unlock()

	id, err := m.store.Load(ctx)
	switch {
	case err == nil:
		m.mu.Lock()
		if m.state == StateUnresolved {
			m.current = id
			m.state = StateAuthenticated
		}
		state := m.state
		m.mu.Unlock()
		m.log.DebugContext(ctx, "session resolved from durable store", slog.String("user_id", id.ID))
		return state, nil

	case errors.Is(err, sessionstore.ErrRecordCorrupt):
		// Self-healing: drop the broken record, never surface the error.
		m.log.WarnContext(ctx, "persisted session record corrupt, clearing", slog.Any("error", err))
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.ErrorContext(ctx, "failed to clear corrupt session record", slog.Any("error", clearErr))
		}
		fallthrough

	case errors.Is(err, sessionstore.ErrRecordNotFound):
		m.mu.Lock()
		if m.state == StateUnresolved {
			m.state = StateUnauthenticated
		}
		state := m.state
		m.mu.Unlock()
		return state, nil

	default:
		return StateUnresolved, err
	}
}

// Login exchanges credentials for an identity, persists it and moves the
// session to Authenticated. On failure the state is left unchanged and the
// returned error wraps ErrAuthenticationFailed.
func (m *Manager) Login(ctx context.Context, email, password string) (*identity.Identity, error) {
	epoch, err := m.beginOp()
	if err != nil {
		return nil, err
	}
	defer m.endOp()

	id, err := m.svc.Login(ctx, email, password)
	if err != nil {
		m.log.InfoContext(ctx, "login rejected", slog.String("email", email), slog.Any("error", err))
		return nil, errors.Join(ErrAuthenticationFailed, err)
	}

	if err := m.commit(ctx, epoch, id); err != nil {
		return nil, errors.Join(ErrAuthenticationFailed, err)
	}

	m.log.InfoContext(ctx, "login succeeded", slog.String("user_id", id.ID), slog.String("handle", id.Handle))
	return id, nil
}

// Register creates a new account and signs it in. Same contract as Login
// with ErrRegistrationFailed as the failure class.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*identity.Identity, error) {
	epoch, err := m.beginOp()
	if err != nil {
		return nil, err
	}
	defer m.endOp()

	id, err := m.svc.Register(ctx, in)
	if err != nil {
		m.log.InfoContext(ctx, "registration rejected", slog.String("handle", in.Handle), slog.Any("error", err))
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	if err := m.commit(ctx, epoch, id); err != nil {
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	m.log.InfoContext(ctx, "registration succeeded", slog.String("user_id", id.ID), slog.String("handle", id.Handle))
	return id, nil
}

// Logout unconditionally clears the identity and the durable record. It
// never fails: the backend call is best-effort and store errors are only
// logged.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.svc.Logout(ctx); err != nil {
		m.log.DebugContext(ctx, "backend logout failed, ignoring", slog.Any("error", err))
	}
	m.clear(ctx, "logout")
}

// UpdateProfile merges the partial update into the current identity and
// persists the result. A no-op when unauthenticated. On failure the
// in-memory identity keeps its pre-call value.
func (m *Manager) UpdateProfile(ctx context.Context, update identity.Update) (*identity.Identity, error) {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return nil, nil
	}
	m.mu.Unlock()

	epoch, err := m.beginOp()
	if err != nil {
		return nil, err
	}
	defer m.endOp()

	id, err := m.svc.UpdateProfile(ctx, update)
	if err != nil {
		m.log.InfoContext(ctx, "profile update rejected", slog.Any("error", err))
		return nil, errors.Join(ErrProfileUpdateFailed, err)
	}

	if err := m.commit(ctx, epoch, id); err != nil {
		return nil, errors.Join(ErrProfileUpdateFailed, err)
	}

	m.log.InfoContext(ctx, "profile updated", slog.String("user_id", id.ID))
	return id, nil
}

// Invalidate is the forced-invalidation entry point for the request
// client: called on an authorization failure from any endpoint. It clears
// both the durable record and the in-memory identity so the two views of
// session state cannot diverge.
func (m *Manager) Invalidate(ctx context.Context) {
	m.clear(ctx, "authorization expired")
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns a copy of the held identity, if any.
func (m *Manager) Current() (identity.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return identity.Identity{}, false
	}
	return *m.current, true
}

// Credential returns the bearer credential for outbound requests, derived
// from the identity's identifier. False when there is nothing to attach.
func (m *Manager) Credential() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated || m.current == nil {
		return "", false
	}
	return m.current.ID, true
}

// beginOp claims the single mutating-operation slot. Overlapping calls are
// rejected rather than queued; the UI retries on user action anyway.
func (m *Manager) beginOp() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateUnresolved {
		return 0, ErrNotResolved
	}
	if m.inFlight {
		return 0, ErrOperationInFlight
	}
	m.inFlight = true
	return m.epoch, nil
}

func (m *Manager) endOp() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// commit persists and installs a new identity, unless the session was
// ended while the remote call was outstanding.
func (m *Manager) commit(ctx context.Context, epoch uint64, id *identity.Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.log.InfoContext(ctx, "discarding stale operation result", slog.String("user_id", id.ID))
		return errors.New("session ended during operation")
	}
	m.mu.Unlock()

	if err := m.store.Save(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		// The session ended between the save and now; take the record
		// back out so memory and storage agree.
		if err := m.store.Clear(ctx); err != nil {
			m.log.ErrorContext(ctx, "failed to clear durable session record", slog.Any("error", err))
		}
		return errors.New("session ended during operation")
	}
	m.current = id
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

func (m *Manager) clear(ctx context.Context, reason string) {
	m.mu.Lock()
	m.current = nil
	m.state = StateUnauthenticated
	m.epoch++
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.ErrorContext(ctx, "failed to clear durable session record", slog.Any("error", err))
	}
	m.log.InfoContext(ctx, "session cleared", slog.String("reason", reason))
}
