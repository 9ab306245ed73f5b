// Package common defines shared constants and sentinel errors used across
// the server layers of GopherShop. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Login failure. Unknown user and wrong password share this value.
	ErrAuthenticationFailed = errors.New("incorrect username or password")

	// Token errors (malformed, bad signature, expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Caller resolution failure. Every cause of a rejected token surfaces as this.
	ErrInvalidCredentials = errors.New("invalid authentication credentials")

	// Startup configuration errors.
	ErrMisconfigured = errors.New("invalid configuration")
)
