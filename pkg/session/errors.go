package session

import "errors"

var (
	// ErrNotResolved indicates a mutating call before Resolve completed
	ErrNotResolved = errors.New("session: not resolved yet")

	// ErrOperationInFlight indicates an overlapping mutating call
	ErrOperationInFlight = errors.New("session: operation already in flight")

	// ErrAuthenticationFailed indicates the backend rejected the login.
	// The message is safe to show next to the sign-in form.
	ErrAuthenticationFailed = errors.New("login failed, please check your credentials")

	// ErrRegistrationFailed indicates the backend rejected the registration
	ErrRegistrationFailed = errors.New("registration failed, please try again")

	// ErrProfileUpdateFailed indicates the backend rejected the update
	ErrProfileUpdateFailed = errors.New("profile update failed, please try again")
)
