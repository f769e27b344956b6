package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidRequest is returned when the top-level payload cannot be accepted.
	ErrInvalidRequest = errors.New("invalid presentation request")

	// ErrPayloadTooLarge is returned when a request body exceeds the configured limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrBuildFailed is returned when the rendering library fails to assemble or encode the deck.
	ErrBuildFailed = errors.New("presentation build failed")

	// ErrElementRender marks a single element that could not be rendered.
	ErrElementRender = errors.New("element could not be rendered")

	// ErrUpstreamFetch is returned when a remote resource cannot be retrieved.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrDeckNotFound is returned when a deck ID is not present in the library.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrBusy is returned when no build slot became available before the context ended.
	ErrBusy = errors.New("no build slot available")
)

// ErrorKind is the stable, machine-readable name of an error class.
type ErrorKind string

const (
	KindInputValidation ErrorKind = "InputValidationError"
	KindElementRender   ErrorKind = "ElementRenderError"
	KindBuild           ErrorKind = "BuildError"
	KindUpstreamFetch   ErrorKind = "UpstreamFetchError"
	KindNotFound        ErrorKind = "NotFoundError"
)

// Error attaches a stable kind to an underlying error chain.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid wraps err as an InputValidationError. The result always matches ErrInvalidRequest.
func Invalid(format string, args ...any) error {
	return &Error{Kind: KindInputValidation, Err: fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))}
}

// BuildFailure wraps err as a BuildError. The result always matches ErrBuildFailed.
func BuildFailure(err error) error {
	return &Error{Kind: KindBuild, Err: fmt.Errorf("%w: %w", ErrBuildFailed, err)}
}

// FetchFailure wraps err as an UpstreamFetchError.
func FetchFailure(src string, err error) error {
	return &Error{Kind: KindUpstreamFetch, Err: fmt.Errorf("%w: %s: %w", ErrUpstreamFetch, src, err)}
}

// KindOf maps any error chain to its stable kind.
// Errors without an explicit kind are reported as build errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrPayloadTooLarge):
		return KindInputValidation
	case errors.Is(err, ErrUpstreamFetch):
		return KindUpstreamFetch
	case errors.Is(err, ErrElementRender):
		return KindElementRender
	case errors.Is(err, ErrDeckNotFound):
		return KindNotFound
	}
	return KindBuild
}

// StatusOf returns the HTTP status code associated with an error chain.
func StatusOf(err error) int {
	if errors.Is(err, ErrBusy) {
		return http.StatusServiceUnavailable
	}
	switch KindOf(err) {
	case KindInputValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamFetch:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
