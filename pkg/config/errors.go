package config

import "errors"

var (
	// ErrParsingConfig indicates environment variables could not be parsed
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrNilPointer indicates Load was called with a nil destination
	ErrNilPointer = errors.New("config: nil pointer")
)
