// Package apperr defines the error kinds surfaced by the entity services.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.
type Kind string

const (
	// KindNotFound indicates a referenced entity does not exist.
	KindNotFound Kind = "NOT_FOUND"

	// KindBadRequest indicates a rule or precondition violation.
	KindBadRequest Kind = "BAD_REQUEST"
)

// Error is a failure carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NotFound creates a NOT_FOUND error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest creates a BAD_REQUEST error.
func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindNotFound
}

// IsBadRequest reports whether err is a BAD_REQUEST error.
func IsBadRequest(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindBadRequest
}
