// Package errors provides error handling for prdiff.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for operators (e.g. how to supply a missing token)
//
// Usage:
//
//	// Wrap with context
//	if err := fetch(); err != nil {
//	    return errors.Wrap(err, "failed to fetch diff")
//	}
//
//	// Add hints for users
//	return errors.WithHint(ErrMissingToken, "export GITHUB_TOKEN=...")
//
//	// Check error kinds
//	if errors.Is(err, errors.ErrNotFound) {
//	    // pull request or repository does not exist
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Mark attaches a sentinel to err so that Is(err, reference) holds
// without changing the error message.
var Mark = crdb.Mark

// Startup errors
var (
	// ErrMissingToken indicates no GitHub token was configured
	ErrMissingToken = New("github token not configured")

	// ErrInvalidConfig indicates a configuration value failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// Protocol errors raised by the request router
var (
	// ErrToolNotFound indicates the client called a tool this server does not register
	ErrToolNotFound = New("tool not found")

	// ErrInvalidParams indicates tool arguments failed validation
	ErrInvalidParams = New("invalid arguments")
)

// Upstream errors, normalized from GitHub API responses
var (
	// ErrUnauthorized indicates GitHub rejected the token (HTTP 401)
	ErrUnauthorized = New("unauthorized")

	// ErrForbidden indicates the token lacks access or is rate limited (HTTP 403/429)
	ErrForbidden = New("forbidden")

	// ErrNotFound indicates the repository or pull request does not exist (HTTP 404)
	ErrNotFound = New("not found")

	// ErrUpstreamUnavailable indicates a network failure or an unexpected upstream status
	ErrUpstreamUnavailable = New("upstream unavailable")
)

// IsInvalidParamsError checks if an error is or wraps ErrInvalidParams
func IsInvalidParamsError(err error) bool {
	return err != nil && Is(err, ErrInvalidParams)
}

// IsToolNotFoundError checks if an error is or wraps ErrToolNotFound
func IsToolNotFoundError(err error) bool {
	return err != nil && Is(err, ErrToolNotFound)
}

// IsUpstreamError reports whether err carries one of the upstream sentinels
func IsUpstreamError(err error) bool {
	return err != nil && IsAny(err, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrUpstreamUnavailable)
}

// NewInvalidParamsError creates an invalid-arguments error with a formatted message
func NewInvalidParamsError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidParams)
}

// NewToolNotFoundError creates a tool-not-found error naming the requested tool
func NewToolNotFoundError(name string) error {
	return Mark(Newf("unknown tool %q", name), ErrToolNotFound)
}
