package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// ServerError is a rejection the client has no sentinel for, typically a
// 400 with a validation message. For mapped statuses it wraps the sentinel
// so the server's message is kept.
type ServerError struct {
	Status  int
	Message string
	kind    error
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

func (e *ServerError) Unwrap() error { return e.kind }
