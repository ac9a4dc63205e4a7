package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSessionExpired indicates the bearer token was rejected by the backend
	ErrSessionExpired = errors.New("session has expired")

	// ErrServerUnreachable indicates no response reached the client
	ErrServerUnreachable = errors.New("server is unreachable")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrNotAuthenticated indicates an operation that needs a session was
	// attempted without one
	ErrNotAuthenticated = errors.New("not logged in")
)
