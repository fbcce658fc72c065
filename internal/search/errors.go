// Package search turns a media identity into a deduplicated, ranked list
// of torrents: it builds queries from title variants, fans them out to the
// sources and merges what comes back.
package search

import "errors"

var (
	// ErrNoSources is returned when no sources are enabled.
	ErrNoSources = errors.New("no sources configured")

	// ErrNoTitles is returned when the metadata yields no searchable title.
	ErrNoTitles = errors.New("no searchable titles")
)
