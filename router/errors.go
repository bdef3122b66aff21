package router

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teranos/prdiff/errors"
)

// Error is a tool call failure carrying its JSON-RPC error code
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps a failure onto its JSON-RPC code
func classify(err error) *Error {
	var routed *Error
	if errors.As(err, &routed) {
		return routed
	}

	switch {
	case errors.IsToolNotFoundError(err):
		return &Error{Code: mcp.METHOD_NOT_FOUND, Err: err}
	case errors.IsInvalidParamsError(err):
		return &Error{Code: mcp.INVALID_PARAMS, Err: err}
	default:
		return &Error{Code: mcp.INTERNAL_ERROR, Err: err}
	}
}
