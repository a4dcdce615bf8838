package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for provider attempt classification. The chain iteration
// treats every attempt failure identically; these exist so callers and
// tests can still distinguish causes with errors.Is.
var (
	// ErrNotConfigured indicates the provider has no usable credential.
	// The provider stays unusable for the process lifetime until restart.
	ErrNotConfigured = errors.New("not configured")

	// ErrMalformedResponse indicates the provider responded successfully
	// but no generated text could be extracted from the payload. The
	// message is capitalized because it appears verbatim as an entry in
	// the aggregate chain failure message.
	ErrMalformedResponse = errors.New("Could not parse JSON response")
)

// StatusError reports a non-success HTTP status from a provider.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface. The message starts with the HTTP
// status so aggregate chain errors read "provider: HTTP 500: ...".
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// AttemptError records one failed provider attempt within a chain.
type AttemptError struct {
	Provider ProviderID
	Err      error
}

// Error implements the error interface in the "<providerName>: <message>"
// form used by the aggregate chain error.
func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *AttemptError) Unwrap() error {
	return e.Err
}

// ChainError is the aggregate failure returned when every provider in the
// fallback chain has failed. Attempts preserves the original attempt order.
type ChainError struct {
	Attempts []*AttemptError
}

// Error implements the error interface. The message concatenates every
// recorded "<providerName>: <message>" entry, newline-separated, in
// attempt order.
func (e *ChainError) Error() string {
	entries := make([]string, len(e.Attempts))
	for i, attempt := range e.Attempts {
		entries[i] = attempt.Error()
	}
	return strings.Join(entries, "\n")
}

// Unwrap exposes the individual attempt errors so errors.Is can match any
// of the underlying causes (e.g. ErrNotConfigured).
func (e *ChainError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, attempt := range e.Attempts {
		errs[i] = attempt
	}
	return errs
}
