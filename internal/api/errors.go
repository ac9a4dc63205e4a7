package api

import (
	"errors"
	"fmt"

	"github.com/misanthropic-codes/sports360/internal/domain"
)

// ErrorKind mirrors the transport error taxonomy: failures that warrant a
// global UI reaction (network, session, server) plus ordinary
// request-specific errors that stay local to the calling screen.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindSessionExpired
	KindServer
	KindRequest
)

// APIError is returned by every failed request after classification.
// The transport never swallows an error once it is broadcast; callers
// always get it back for inline handling.
type APIError struct {
	Kind       ErrorKind
	StatusCode int    // 0 when no response was received
	Message    string // server-supplied message when present
	cause      error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network error: %s", e.Message)
	case KindSessionExpired:
		return e.Message
	case KindServer:
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.cause }

// Is maps classified errors onto the domain sentinels so callers can use
// errors.Is without importing this package's taxonomy.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrServerUnreachable:
		return e.Kind == KindNetwork
	case domain.ErrSessionExpired:
		return e.Kind == KindSessionExpired
	case domain.ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
