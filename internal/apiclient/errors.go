package apiclient

import (
	"errors"
	"fmt"
)

// ErrNotFound: the detail lookup matched zero tickets. Distinct from a
// transport or server failure and surfaced as its own message.
var ErrNotFound = errors.New("apiclient: ticket not found")

// NetworkError is a transport-level failure (connectivity, timeout,
// unreadable response). Transient and retryable by the user; local state is
// untouched.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success response from the backing service.
type ServerError struct {
	Op     string
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("apiclient: %s: server returned status %d", e.Op, e.Status)
}
