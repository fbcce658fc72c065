package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vmunix/arrscout/pkg/release"
)

const prowlarrPageSize = 100

// prowlarrRelease is the JSON response struct from the Prowlarr API.
type prowlarrRelease struct {
	Title       string `json:"title"`
	GUID        string `json:"guid"`
	Indexer     string `json:"indexer"`
	Protocol    string `json:"protocol"`
	DownloadURL string `json:"downloadUrl"`
	MagnetURL   string `json:"magnetUrl"`
	InfoHash    string `json:"infoHash"`
	Size        int64  `json:"size"`
}

// ref returns the best reference for resolving the release's info-hash.
func (r prowlarrRelease) ref() string {
	switch {
	case r.InfoHash != "":
		return strings.ToLower(r.InfoHash)
	case r.MagnetURL != "":
		return r.MagnetURL
	case strings.HasPrefix(r.GUID, "magnet:"):
		return r.GUID
	}
	return r.DownloadURL
}

// Prowlarr searches every torrent indexer configured in a Prowlarr instance.
type Prowlarr struct {
	base
}

// NewProwlarr creates the prowlarr adapter. The site URL and API key are required.
func NewProwlarr(site SiteConfig, deps Deps) *Prowlarr {
	return &Prowlarr{base: newBase("prowlarr", site, deps)}
}

// Search implements Source.
func (s *Prowlarr) Search(ctx context.Context, q Query) []Result {
	header := s.header()
	header.Set("X-Api-Key", s.site.APIKey)

	return s.collect(ctx, q, func(ctx context.Context, page int) ([]candidate, bool, error) {
		reqURL, err := s.searchURL(q, page)
		if err != nil {
			return nil, false, err
		}
		body, err := s.deps.Fetcher.Get(ctx, reqURL, header)
		if err != nil {
			return nil, false, err
		}

		var releases []prowlarrRelease
		if err := json.Unmarshal(body, &releases); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
		}

		cands := make([]candidate, 0, len(releases))
		for _, r := range releases {
			if r.Protocol != "" && r.Protocol != "torrent" {
				continue
			}
			if r.Title == "" || r.ref() == "" {
				continue
			}
			cands = append(cands, candidate{Title: r.Title, SizeMB: bytesToMB(r.Size), Ref: r.ref()})
		}
		return cands, len(releases) >= prowlarrPageSize, nil
	})
}

func (s *Prowlarr) searchURL(q Query, page int) (string, error) {
	reqURL, err := url.Parse(strings.TrimSuffix(s.site.URL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	reqURL.Path += "/api/v1/search"

	params := url.Values{}
	params.Set("query", release.NormalizeSearchQuery(q.Text))
	params.Set("type", "search")
	if q.Season > 0 {
		params.Set("categories", strconv.Itoa(tvCategories[0]))
	} else {
		params.Set("categories", strconv.Itoa(movieCategories[0]))
	}
	params.Set("limit", strconv.Itoa(prowlarrPageSize))
	if page > 1 {
		params.Set("offset", strconv.Itoa((page-1)*prowlarrPageSize))
	}
	reqURL.RawQuery = params.Encode()
	return reqURL.String(), nil
}
