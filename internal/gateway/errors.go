package gateway

import (
	"errors"
	"fmt"
)

// AuthError means the call carried no usable credential: either none was
// supplied, or the backend answered 401. Callers are expected to invalidate
// the session on it, not just display the message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// HTTPError is a non-401 4xx/5xx response with the server-supplied message,
// e.g. "Already clocked in today".
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// NetworkError is a transport-level failure: no HTTP response was received.
// Client timeouts surface here too.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError means the backend answered 2xx but the body did not have
// the expected shape.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsAuth reports whether err should invalidate the session.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// UserMessage extracts the human-readable message to display for a gateway
// error, falling back to err.Error() for anything unexpected.
func UserMessage(err error) string {
	var (
		authErr *AuthError
		httpErr *HTTPError
		valErr  *ValidationError
	)
	switch {
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &httpErr):
		return httpErr.Message
	case errors.As(err, &valErr):
		return valErr.Message
	default:
		return err.Error()
	}
}
