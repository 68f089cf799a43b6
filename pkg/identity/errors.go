package identity

import "errors"

var (
	// ErrMissingID indicates a record without an identifier
	ErrMissingID = errors.New("identity: missing id")

	// ErrMissingHandle indicates a record without a handle
	ErrMissingHandle = errors.New("identity: missing handle")

	// ErrInvalidEmail indicates an email that cannot be an address
	ErrInvalidEmail = errors.New("identity: invalid email")

	// ErrNegativeReputation indicates a reputation below zero
	ErrNegativeReputation = errors.New("identity: negative reputation")
)
