// Package common defines shared constants and sentinel errors used across
// the layers of DocuChat. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors, detected before any remote call is made.
	ErrEmptyMessage = errors.New("empty message")
	ErrNoFile       = errors.New("no file supplied")

	// Session errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
