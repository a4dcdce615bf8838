// Package service provides application-level services for accounts,
// profiles, interview practice, recommendations, resumes, and chat.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Service methods return these for expected conditions; callers check them
// with errors.Is and the API layer maps them to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. Maps to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or wrong password. Deliberately indistinguishable between the two.
	// Maps to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrGenerationUnavailable indicates every configured text-generation
	// provider failed and the operation has no fallback content.
	// Maps to HTTP 502 Bad Gateway.
	ErrGenerationUnavailable = errors.New("content generation is currently unavailable")
)
