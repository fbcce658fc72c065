package source

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/iter"
)

// candidate is a raw entry scraped from a page, before validation and
// hash resolution. Ref is a magnet URI, .torrent URL or bare hash.
type candidate struct {
	Title  string
	SizeMB float64
	Ref    string
}

// pageFunc fetches one page (numbered from 1) and reports whether another
// page exists.
type pageFunc func(ctx context.Context, page int) (cands []candidate, more bool, err error)

// base holds what every adapter shares.
type base struct {
	name string
	site SiteConfig
	deps Deps
	log  *slog.Logger
}

func newBase(name string, site SiteConfig, deps Deps) base {
	deps = deps.withDefaults()
	return base{
		name: name,
		site: site,
		deps: deps,
		log:  deps.Log.With("component", "source", "source", name),
	}
}

// Name returns the adapter name.
func (b *base) Name() string {
	return b.name
}

// collect walks pages until there is no next page, the page cap is hit,
// a page fails, or MissThreshold consecutive candidates were rejected.
// Accepted candidates are resolved and returned in page order.
func (b *base) collect(ctx context.Context, q Query, fetch pageFunc) []Result {
	start := time.Now()
	limits := b.deps.Limits

	var accepted []candidate
	misses, pages, seen := 0, 0, 0
	for page := 1; page <= limits.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}
		cands, more, err := fetch(ctx, page)
		if err != nil {
			b.log.Warn("page failed", "query", q.Text, "page", page, "error", err)
			break
		}
		pages++
		seen += len(cands)

		for _, c := range cands {
			if b.deps.Matcher.MeetsConditions(q.Title, q.Years, c.Title) {
				accepted = append(accepted, c)
				misses = 0
				continue
			}
			misses++
		}
		if misses >= limits.MissThreshold {
			b.log.Debug("source exhausted", "query", q.Text, "page", page, "misses", misses)
			break
		}
		if !more || len(cands) == 0 {
			break
		}
	}

	results := b.finalize(ctx, accepted)
	b.log.Debug("search complete", "query", q.Text, "pages", pages, "candidates", seen,
		"results", len(results), "duration_ms", time.Since(start).Milliseconds())
	return results
}

// finalize resolves info-hashes, keeping input order and dropping anything
// that cannot be resolved.
func (b *base) finalize(ctx context.Context, cands []candidate) []Result {
	if len(cands) == 0 {
		return nil
	}

	mapper := iter.Mapper[candidate, *Result]{MaxGoroutines: b.deps.Limits.ResolveWorkers}
	resolved := mapper.Map(cands, func(c *candidate) *Result {
		res, ok := b.deps.Resolver.Resolve(ctx, c.Ref)
		if !ok {
			return nil
		}
		size := c.SizeMB
		if size == 0 && res.HasSize {
			size = res.SizeMB
		}
		return &Result{Title: c.Title, FileSize: size, Hash: res.Hash, Source: b.name}
	})

	results := make([]Result, 0, len(resolved))
	for _, r := range resolved {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// header returns the request headers for the site's credentials.
func (b *base) header() http.Header {
	h := make(http.Header)
	if b.site.Cookie != "" {
		h.Set("Cookie", b.site.Cookie)
	}
	return h
}
