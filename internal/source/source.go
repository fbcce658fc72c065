// Package source implements the torrent index adapters. Every adapter
// fetches a query, extracts candidates, keeps those that name the target
// title and resolves their info-hashes. Failures degrade to no results.
package source

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vmunix/arrscout/pkg/infohash"
	"github.com/vmunix/arrscout/pkg/release"
)

// Source is one external torrent index.
type Source interface {
	Name() string
	// Search never fails: errors are logged and yield no results.
	Search(ctx context.Context, q Query) []Result
}

// HashResolver resolves magnet URIs, .torrent URLs and bare hashes.
type HashResolver interface {
	Resolve(ctx context.Context, ref string) (infohash.Resolution, bool)
}

// Query is one search request and the target its results are checked against.
type Query struct {
	Text      string   // sent to the index, e.g. `"the matrix" 1999`
	Title     string   // title variant the query was built from
	Qualifier string   // year or season qualifier; empty for bare-title forms
	Season    int      // 0 for movies
	Years     []string // years a matching release may carry
}

// Plain returns the query without phrase quotes, for indexes that do not
// support them.
func (q Query) Plain() string {
	return strings.TrimSpace(q.Title + " " + q.Qualifier)
}

// Result is a validated candidate with a resolved info-hash.
type Result struct {
	Title    string  `json:"title"`
	FileSize float64 `json:"file_size"` // megabytes
	Hash     string  `json:"hash"`
	Source   string  `json:"source"`
}

// SiteConfig configures one adapter.
type SiteConfig struct {
	Enabled bool
	URL     string
	APIKey  string
	Cookie  string
}

// Limits bound the work an adapter does per query.
type Limits struct {
	MaxPages       int
	MissThreshold  int
	ResolveWorkers int
}

// DefaultLimits returns the page cap, consecutive-miss threshold and
// resolver parallelism used when none are configured.
func DefaultLimits() Limits {
	return Limits{MaxPages: 5, MissThreshold: 21, ResolveWorkers: 4}
}

// Deps are the collaborators shared by all adapters.
type Deps struct {
	Fetcher  *Fetcher
	Matcher  *release.Matcher
	Resolver HashResolver
	Limits   Limits
	Log      *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Fetcher == nil {
		d.Fetcher = NewFetcher(FetchConfig{}, d.Log)
	}
	if d.Matcher == nil {
		d.Matcher = release.DefaultMatcher()
	}
	if d.Resolver == nil {
		d.Resolver = infohash.NewResolver(infohash.Options{}, d.Log)
	}
	def := DefaultLimits()
	if d.Limits.MaxPages <= 0 {
		d.Limits.MaxPages = def.MaxPages
	}
	if d.Limits.MissThreshold <= 0 {
		d.Limits.MissThreshold = def.MissThreshold
	}
	if d.Limits.ResolveWorkers <= 0 {
		d.Limits.ResolveWorkers = def.ResolveWorkers
	}
	return d
}
