// Package provider implements the LLM backends and the router that selects
// one, applies the retry/backoff discipline, and hands raw completion text
// to the normalization pipeline. Retryability is a property of the error
// kind, not of error subclassing: clients classify every failure into the
// closed taxonomy below and never retry on their own.
package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed taxonomy of provider failures.
type ErrorKind int

const (
	// KindAuth is an authentication/authorization failure. Terminal:
	// retrying is pointless.
	KindAuth ErrorKind = iota + 1
	// KindRateLimit is a provider rate limit (HTTP 429). Retryable with
	// backoff.
	KindRateLimit
	// KindTimeout is a deadline or cancellation while awaiting the backend.
	// Retryable.
	KindTimeout
	// KindNetwork is a transient transport or server-side failure.
	// Retryable.
	KindNetwork
	// KindConfig is a configuration defect (no provider configured, unknown
	// provider name). Terminal and surfaced at construction or first use.
	KindConfig
	// KindResponse is a malformed or empty backend response. Terminal for a
	// single attempt.
	KindResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindConfig:
		return "config"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Retryable reports whether the router may retry this kind of failure.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindRateLimit, KindTimeout, KindNetwork:
		return true
	default:
		return false
	}
}

// Error is the structured provider failure surfaced to callers. Attempts
// counts generation attempts made before the error was surfaced, so callers
// can distinguish "retry is pointless" from "retry was attempted and
// exhausted".
type Error struct {
	Provider string
	Kind     ErrorKind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("provider %s: %s after %d attempts: %v", e.Provider, e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// newError builds a single-attempt provider error.
func newError(provider string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Provider: provider, Kind: kind, Attempts: 1, Err: fmt.Errorf(format, args...)}
}

// IsRetryable reports whether err carries a retryable provider error kind.
func IsRetryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind.Retryable()
	}
	return false
}

// KindOf extracts the error kind, or 0 when err is not a provider error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// classifyStatus maps an HTTP status code onto the taxonomy.
func classifyStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case code == http.StatusRequestTimeout:
		return KindTimeout
	case code >= 500:
		return KindNetwork
	default:
		return KindResponse
	}
}
