// Package common defines shared constants and sentinel errors used across
// client and server layers of ShopNet. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Input errors. Concrete validation failures wrap ErrValidation.
	ErrValidation     = errors.New("validation error")
	ErrDuplicateEmail = errors.New("email already in use")

	// Authentication errors. The same value is returned for an unknown email
	// and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Authorization errors.
	ErrForbidden = errors.New("forbidden")

	// Onboarding errors.
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrAccountTypeLocked  = errors.New("account type already set")
	ErrTransaction        = errors.New("setup failed, try again")
)
