package server

import "errors"

var (
	// ErrUnknownProfile is returned when a profile name is not recognized.
	ErrUnknownProfile = errors.New("server: unknown profile")

	// ErrEmptyAddr is returned when no listen address is configured.
	ErrEmptyAddr = errors.New("server: listen address is empty")

	// ErrEmptyComponent is returned when a configured component name is empty.
	ErrEmptyComponent = errors.New("server: component name is empty")
)

// ErrAlreadyServing is returned when Serve is called on a running server.
var ErrAlreadyServing = errors.New("server: already serving")
