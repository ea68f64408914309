package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or search mode.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrAPIKeyMissing indicates the active provider needs a key and none is set.
	ErrAPIKeyMissing = errors.New("API key not configured")

	// ErrNoContent indicates a deep search accepted zero pages.
	ErrNoContent = errors.New("no content harvested")

	// ErrContentTooShort indicates fetched content fell below the acceptance threshold.
	ErrContentTooShort = errors.New("content below minimum length")

	// ErrFetchFailed indicates every fetch strategy failed for a URL.
	ErrFetchFailed = errors.New("page fetch failed")

	// ErrBrowserUnavailable indicates the scripted browser could not be started.
	ErrBrowserUnavailable = errors.New("browser unavailable")
)
