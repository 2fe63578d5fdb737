package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Soft and hard failure kinds shared by the client core. Validation and
// NoChange are resolved entirely client-side; NotFound and NetworkError come
// back from the API layer and are passed through to the caller untouched.
var (
	// ErrNoChange signals that submitted data is identical to what is
	// already persisted. Nothing was sent to the server.
	ErrNoChange = errors.New("nothing to save")

	// ErrNotFound signals that a referenced course, section or lecture is
	// absent server-side.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyInCart signals a duplicate add; the cart is left untouched.
	ErrAlreadyInCart = errors.New("course is already in the cart")

	// ErrNeedsSection and ErrNeedsLecture are the two distinct reasons a
	// draft can fail the publishable check.
	ErrNeedsSection = errors.New("add at least one section")
	ErrNeedsLecture = errors.New("add at least one lecture in every section")

	// Token errors surfaced before any network call is attempted.
	ErrTokenMissing = errors.New("no session token stored")
	ErrTokenExpired = errors.New("session token expired")
)

// ValidationError carries per-field messages for a locally rejected form.
// It never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError wraps a field-error map produced by the validators
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NetworkError is a transport-level failure or a non-success server
// response. The core never retries; the caller decides what to do.
type NetworkError struct {
	StatusCode int    // 0 when the request never reached the server
	Message    string
}

func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return "network failure: " + e.Message
	}
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetwork reports whether err is a transport or server failure
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
