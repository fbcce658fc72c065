package infohash

import "errors"

var (
	// ErrUnresolved indicates a reference could not be turned into an info-hash.
	ErrUnresolved = errors.New("info-hash unresolved")

	// ErrNoInfo indicates a torrent file without an info dictionary.
	ErrNoInfo = errors.New("torrent has no info dictionary")
)
