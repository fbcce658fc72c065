package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	ytsDefaultURL = "https://yts.mx"
	ytsPageSize   = 50
)

type ytsResponse struct {
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	Data          struct {
		MovieCount int        `json:"movie_count"`
		Limit      int        `json:"limit"`
		PageNumber int        `json:"page_number"`
		Movies     []ytsMovie `json:"movies"`
	} `json:"data"`
}

type ytsMovie struct {
	Title    string       `json:"title"`
	Year     int          `json:"year"`
	Torrents []ytsTorrent `json:"torrents"`
}

type ytsTorrent struct {
	Hash       string `json:"hash"`
	Quality    string `json:"quality"`
	Type       string `json:"type"`
	VideoCodec string `json:"video_codec"`
	SizeBytes  int64  `json:"size_bytes"`
}

// YTS queries the YTS movie API. It only carries movies and does not
// support phrase or year search, so it answers bare-title movie queries
// and ignores the rest.
type YTS struct {
	base
}

// NewYTS creates the yts adapter.
func NewYTS(site SiteConfig, deps Deps) *YTS {
	if site.URL == "" {
		site.URL = ytsDefaultURL
	}
	return &YTS{base: newBase("yts", site, deps)}
}

// Search implements Source.
func (s *YTS) Search(ctx context.Context, q Query) []Result {
	if q.Season > 0 || q.Qualifier != "" {
		return nil
	}
	return s.collect(ctx, q, func(ctx context.Context, page int) ([]candidate, bool, error) {
		body, err := s.deps.Fetcher.Get(ctx, s.pageURL(q.Title, page), s.header())
		if err != nil {
			return nil, false, err
		}
		return parseYTS(body, page)
	})
}

func (s *YTS) pageURL(title string, page int) string {
	params := url.Values{}
	params.Set("query_term", title)
	params.Set("limit", strconv.Itoa(ytsPageSize))
	params.Set("page", strconv.Itoa(page))
	return strings.TrimSuffix(s.site.URL, "/") + "/api/v2/list_movies.json?" + params.Encode()
}

// parseYTS flattens every torrent of every movie into a candidate named
// like a scene release, e.g. "The Matrix 1999 1080p BluRay x264 YTS".
func parseYTS(body []byte, page int) ([]candidate, bool, error) {
	var resp ytsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if resp.Status != "ok" {
		return nil, false, fmt.Errorf("%w: status %q: %s", ErrParse, resp.Status, resp.StatusMessage)
	}

	var cands []candidate
	for _, m := range resp.Data.Movies {
		for _, t := range m.Torrents {
			if t.Hash == "" {
				continue
			}
			name := strings.Join(strings.Fields(strings.Join([]string{
				m.Title, strconv.Itoa(m.Year), t.Quality, ytsSource(t.Type), t.VideoCodec, "YTS",
			}, " ")), " ")
			cands = append(cands, candidate{
				Title:  name,
				SizeMB: bytesToMB(t.SizeBytes),
				Ref:    strings.ToLower(t.Hash),
			})
		}
	}

	limit := resp.Data.Limit
	if limit <= 0 {
		limit = ytsPageSize
	}
	more := page*limit < resp.Data.MovieCount
	return cands, more, nil
}

func ytsSource(typ string) string {
	switch strings.ToLower(typ) {
	case "bluray":
		return "BluRay"
	case "web":
		return "WEBRip"
	}
	return typ
}
