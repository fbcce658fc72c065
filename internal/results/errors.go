// Package results persists ranked scrape results per media key.
package results

import "errors"

var (
	// ErrNotFound is returned when no results are stored under a key.
	ErrNotFound = errors.New("results not found")
	// ErrEmptyKey is returned when a store operation is given an empty key.
	ErrEmptyKey = errors.New("empty results key")
)
