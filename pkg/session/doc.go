// Package session owns the authenticated identity for one client process.
//
// A Manager starts Unresolved, reads the durable record exactly once via
// Resolve, then settles into Unauthenticated or Authenticated. Login,
// Register, Logout and UpdateProfile move between the two resolved states;
// Invalidate is the forced transition the request client takes on an
// authorization failure.
//
//	          Resolve
//	Unresolved ──────► Unauthenticated ◄──────────────┐
//	      │                  │    ▲                    │
//	      │ record found     │    │ Logout/Invalidate  │
//	      ▼                  ▼    │                    │
//	Authenticated ◄───── Login / Register              │
//	      │                                            │
//	      └── UpdateProfile (stays Authenticated) ─────┘
//
// The Manager is the only component that touches the store after startup.
// The request client derives its bearer credential from Credential, the
// route guard projects State — neither reads storage on its own, so the
// in-memory and persisted views cannot drift apart.
//
// Overlapping mutating calls are rejected with ErrOperationInFlight. An
// operation whose session is ended mid-flight (logout racing a slow login)
// discards its result instead of writing state nobody observes.
package session
