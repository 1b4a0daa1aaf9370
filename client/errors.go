package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestInFlight is returned when an authentication call is attempted
// while another one is still outstanding.
var ErrRequestInFlight = errors.New("authentication request already in flight")

// ErrNoSession is returned by authenticated calls before Login or Register
// has established a session.
var ErrNoSession = errors.New("no active session")

// APIError is a non-2xx response from the backend. Message carries the
// backend's error text verbatim when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
