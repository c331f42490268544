// Package common defines shared constants and sentinel errors used across
// the TesteMatch client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Resource errors.
	ErrNotFound = errors.New("not found")

	// Credit accounting.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// Local persistence.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)
