package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vmunix/arrscout/pkg/release"
	"github.com/vmunix/arrscout/pkg/torznab"
)

const torznabPageSize = 100

var (
	movieCategories = []int{2000}
	tvCategories    = []int{5000}
)

// Torznab queries a Torznab endpoint such as Jackett or a tracker's own API.
type Torznab struct {
	base
}

// NewTorznab creates the torznab adapter. The site URL is required.
func NewTorznab(site SiteConfig, deps Deps) *Torznab {
	return &Torznab{base: newBase("torznab", site, deps)}
}

// Search implements Source.
func (s *Torznab) Search(ctx context.Context, q Query) []Result {
	params := torznab.SearchParams{
		Function:   torznab.FuncSearch,
		APIKey:     s.site.APIKey,
		Query:      release.NormalizeSearchQuery(q.Text),
		Categories: movieCategories,
		Limit:      torznabPageSize,
	}
	if q.Season > 0 {
		params.Function = torznab.FuncTVSearch
		params.Season = q.Season
		params.Categories = tvCategories
	}

	return s.collect(ctx, q, func(ctx context.Context, page int) ([]candidate, bool, error) {
		p := params
		p.Offset = (page - 1) * torznabPageSize
		reqURL, err := torznab.SearchURL(s.site.URL, p)
		if err != nil {
			return nil, false, err
		}
		body, err := s.deps.Fetcher.Get(ctx, reqURL, s.header())
		if err != nil {
			return nil, false, err
		}
		items, err := torznab.Decode(bytes.NewReader(body))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
		}

		cands := make([]candidate, 0, len(items))
		for _, it := range items {
			if it.Title == "" || it.Ref() == "" {
				continue
			}
			cands = append(cands, candidate{Title: it.Title, SizeMB: bytesToMB(it.Size), Ref: it.Ref()})
		}
		return cands, len(items) >= torznabPageSize, nil
	})
}
