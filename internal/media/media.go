// Package media describes the movie or TV season a scrape job targets and
// derives the title variants used to search for it.
package media

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind distinguishes movies from TV shows.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

var imdbIDRegex = regexp.MustCompile(`^tt\d{7,8}$`)

var (
	// ErrInvalidIdentity indicates a malformed media identity.
	ErrInvalidIdentity = errors.New("invalid media identity")
)

// Identity names one movie, or one season of a show.
type Identity struct {
	IMDbID string
	Kind   Kind
	Season int // 0 for movies; 0 for a show means every season
}

// Validate checks the IMDb ID format and the kind/season combination.
func (id Identity) Validate() error {
	if !imdbIDRegex.MatchString(id.IMDbID) {
		return fmt.Errorf("%w: imdb id %q", ErrInvalidIdentity, id.IMDbID)
	}
	switch id.Kind {
	case KindMovie:
		if id.Season != 0 {
			return fmt.Errorf("%w: movie with season %d", ErrInvalidIdentity, id.Season)
		}
	case KindTV:
		if id.Season < 0 {
			return fmt.Errorf("%w: season %d", ErrInvalidIdentity, id.Season)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidIdentity, id.Kind)
	}
	return nil
}

// Key returns the result cache key: movie:{imdb} or tv:{imdb}:{season}.
func (id Identity) Key() string {
	if id.Kind == KindTV {
		return TVKey(id.IMDbID, id.Season)
	}
	return MovieKey(id.IMDbID)
}

func (id Identity) String() string {
	return id.Key()
}

// MovieKey builds the cache key for a movie.
func MovieKey(imdbID string) string {
	return "movie:" + imdbID
}

// TVKey builds the cache key for one season of a show.
func TVKey(imdbID string, season int) string {
	return fmt.Sprintf("tv:%s:%d", imdbID, season)
}

// ParseKind converts a CLI or config value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMovie:
		return KindMovie, nil
	case KindTV, "series", "show":
		return KindTV, nil
	}
	return "", fmt.Errorf("%w: kind %q", ErrInvalidIdentity, s)
}
