package source

import "errors"

var (
	// ErrParse indicates a page that could not be parsed. It stops
	// pagination for the query but is never returned to callers.
	ErrParse = errors.New("parse error")

	// ErrUnexpectedStatus indicates a non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
)
