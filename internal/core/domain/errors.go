package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Common errors
var (
	// ErrInvalidInput is returned when a payload cannot be used as text
	ErrInvalidInput = errors.New("invalid text input")

	// ErrNotFound is returned when a stored document does not exist
	ErrNotFound = errors.New("document not found")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreClosed is returned when trying to use a closed repository
	ErrStoreClosed = errors.New("store is closed")
)

// OpError wraps errors with operation context
type OpError struct {
	Op  string // Operation name
	Err error  // Underlying error
}

// Error implements the error interface
func (e *OpError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("textsim: %v", e.Err)
	}
	return fmt.Sprintf("textsim: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target
func (e *OpError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError wraps an error with operation context
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// TextOf converts an untyped payload into text. Only string, []byte,
// a JSON string literal and nil are accepted; nil yields the empty text.
func TextOf(v any) (string, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		s = t
	case json.RawMessage:
		if len(t) == 0 || string(t) == "null" {
			return "", nil
		}
		if err := json.Unmarshal(t, &s); err != nil {
			return "", fmt.Errorf("%w: expected a JSON string", ErrInvalidInput)
		}
	case []byte:
		s = string(t)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidInput, v)
	}
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}
	return s, nil
}
