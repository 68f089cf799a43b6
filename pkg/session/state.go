package session

// State is the session lifecycle state. Exactly one holds at any time.
type State string

const (
	// StateUnresolved is the initial state while the durable record is
	// being read. Mutating operations are rejected until resolution.
	StateUnresolved State = "unresolved"

	// StateUnauthenticated means no identity is held.
	StateUnauthenticated State = "unauthenticated"

	// StateAuthenticated means an identity is held and persisted.
	StateAuthenticated State = "authenticated"
)
