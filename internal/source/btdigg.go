package source

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const btdiggDefaultURL = "https://btdig.com"

var (
	btdiggTitleRegex  = regexp.MustCompile(`(?s)<div class="torrent_name"[^>]*>\s*<a[^>]*>(.*?)</a>`)
	btdiggSizeRegex   = regexp.MustCompile(`<span class="torrent_size"[^>]*>\s*([\d.,]+)(?:&nbsp;|\s)*([KMGT]i?B|B)\s*</span>`)
	btdiggMagnetRegex = regexp.MustCompile(`<a href="(magnet:\?xt=urn:btih:[^"]+)"`)
	btdiggPageRegex   = regexp.MustCompile(`[?&;]p=(\d+)`)
	tagRegex          = regexp.MustCompile(`<[^>]+>`)
)

// BTDigg scrapes the btdig.com DHT search engine.
type BTDigg struct {
	base
}

// NewBTDigg creates the btdigg adapter.
func NewBTDigg(site SiteConfig, deps Deps) *BTDigg {
	if site.URL == "" {
		site.URL = btdiggDefaultURL
	}
	return &BTDigg{base: newBase("btdigg", site, deps)}
}

// Search implements Source.
func (s *BTDigg) Search(ctx context.Context, q Query) []Result {
	return s.collect(ctx, q, func(ctx context.Context, page int) ([]candidate, bool, error) {
		body, err := s.deps.Fetcher.Get(ctx, s.pageURL(q.Text, page), s.header())
		if err != nil {
			return nil, false, err
		}
		cands, err := parseBTDigg(body)
		if err != nil {
			return nil, false, err
		}
		return cands, btdiggHasPage(body, page), nil
	})
}

// pageURL pages are zero-based on the site.
func (s *BTDigg) pageURL(query string, page int) string {
	return strings.TrimSuffix(s.site.URL, "/") + "/search?q=" + url.QueryEscape(query) + "&p=" + strconv.Itoa(page-1)
}

// parseBTDigg extracts the title, size and magnet of every result. The
// three lists must line up; if they do not the page is rejected.
func parseBTDigg(body []byte) ([]candidate, error) {
	titles := btdiggTitleRegex.FindAllSubmatch(body, -1)
	sizes := btdiggSizeRegex.FindAllSubmatch(body, -1)
	magnets := btdiggMagnetRegex.FindAllSubmatch(body, -1)

	if len(titles) != len(sizes) || len(titles) != len(magnets) {
		return nil, fmt.Errorf("%w: %d titles, %d sizes, %d magnets", ErrParse, len(titles), len(sizes), len(magnets))
	}

	cands := make([]candidate, 0, len(titles))
	for i := range titles {
		size, err := ParseSize(string(sizes[i][1]), string(sizes[i][2]))
		if err != nil {
			return nil, err
		}
		cands = append(cands, candidate{
			Title:  cleanHTMLText(string(titles[i][1])),
			SizeMB: size,
			Ref:    html.UnescapeString(string(magnets[i][1])),
		})
	}
	return cands, nil
}

// btdiggHasPage reports whether the pager links past the given page.
func btdiggHasPage(body []byte, page int) bool {
	for _, m := range btdiggPageRegex.FindAllSubmatch(body, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n >= page {
			return true
		}
	}
	return false
}

func cleanHTMLText(s string) string {
	s = tagRegex.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
