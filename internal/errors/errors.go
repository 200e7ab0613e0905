// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the interaction core. Services wrap these with
// context via Wrap; transport maps them to HTTP codes with Status.
var (
	// ErrNotFound: a referenced match or profile is absent, typically a
	// stale ID after a ban. UI guards should prevent this in practice.
	ErrNotFound = errors.New("not found")

	// ErrInvalidMessage: a send attempt with neither text nor image.
	ErrInvalidMessage = errors.New("message must contain text or an image")

	// ErrInvalidArgument: malformed or out-of-taxonomy input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrForbidden: role gate rejected the intent (e.g. non-admin ban).
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated: no session, or bad login credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrExternalService: the AI assist call failed or returned an
	// unparseable payload. Always recovered locally with a canned
	// fallback; it must never reach the presentation layer.
	ErrExternalService = errors.New("external service failure")

	// ErrPersistenceLoad: a persisted snapshot was missing or corrupt.
	// Recovered at load time by falling back to defaults.
	ErrPersistenceLoad = errors.New("persisted snapshot could not be loaded")
)

// Wrap annotates a sentinel with detail while keeping errors.Is working.
func Wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}

// Status converts core errors into HTTP status codes. Centralized here so
// handlers stay free of mapping switches.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidMessage), errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Is re-exports errors.Is so callers don't need both packages.
func Is(err, target error) bool { return errors.Is(err, target) }
