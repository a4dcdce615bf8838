package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when every configured provider failed
	// to produce output. The underlying chain failure is wrapped.
	ErrGenerationFailed = errors.New("failed to generate content")

	// ErrInvalidResponse is returned when a provider produced output but it
	// could not be decoded into the expected structure.
	ErrInvalidResponse = errors.New("invalid response from language model")
)
