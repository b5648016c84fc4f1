package users

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUsernameRequired   = errors.New("users: username is required")
	ErrPasswordRequired   = errors.New("users: password is required")
	ErrUsernameTaken      = errors.New("users: username already taken")
	ErrInvalidCredentials = errors.New("users: invalid credentials")
)

// NotFoundError represents a missing user lookup.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return "users: user not found"
	}
	return fmt.Sprintf("users: user %q not found", e.Key)
}

// ValidationError carries field-level registration failures so the edge can
// re-render forms with inline messages.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "users: validation failed"
	}
	return fmt.Sprintf("users: %s %s", e.Field, e.Message)
}
