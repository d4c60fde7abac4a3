package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrDuplicateRecent covers both duplicate guards and the store's unique backstop.
	ErrDuplicateRecent = errors.New("duplicate enquiry submitted recently")
	// ErrPersistenceUnavailable wraps any store failure on the lead path.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrUnknown                = errors.New("unknown error")

	ErrPropertyNotFound = errors.New("property not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrSlugConflict     = errors.New("slug already taken")
	ErrSlugExhausted    = errors.New("no free slug within the attempt limit")
	ErrInvalidStatus    = errors.New("invalid status")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
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

// DuplicateError is ErrDuplicateRecent with the user-facing reason attached.
type DuplicateError struct {
	Reason string
}

func (e *DuplicateError) Error() string { return e.Reason }

func (e *DuplicateError) Unwrap() error { return ErrDuplicateRecent }
