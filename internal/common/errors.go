// Package common defines shared constants and sentinel errors used across
// remindkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")
	ErrDecode   = errors.New("decode error")

	// Contract-level errors.
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")

	// Host auth errors (invalid or malformed bearer token).
	ErrInvalidToken = errors.New("invalid token")
)
