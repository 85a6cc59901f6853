package services

import "errors"

// Sentinel errors mapped to HTTP status codes by the web layer.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the acting user does not own the post.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports missing or invalid user input. The web layer
// recovers from it by re-rendering the form with the message; nothing is
// written to the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports an attempt to register a username that is already
// taken. The web layer treats it like a validation failure.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
