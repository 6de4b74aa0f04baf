package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// Sentinels the HTTP layer maps to status codes. Services wrap them so
// errors.Is keeps working through any further context added by callers.
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrConflict              = crerr.New("state conflict")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)

func invalidInputf(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidInput, format, args...)
}

func notFoundf(format string, args ...any) error {
	return crerr.Wrapf(ErrNotFound, format, args...)
}

func conflictf(format string, args ...any) error {
	return crerr.Wrapf(ErrConflict, format, args...)
}

// The cause stays reachable so callers can still match domain errors such
// as match.ErrInvalidTransition.
func invalidInput(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, cause)
}

func notFound(cause error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, cause)
}

func conflict(cause error) error {
	return fmt.Errorf("%w: %w", ErrConflict, cause)
}
