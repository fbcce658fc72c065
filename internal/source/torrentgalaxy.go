package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const torrentGalaxyDefaultURL = "https://torrentgalaxy.to"

// TorrentGalaxy scrapes the torrentgalaxy result table.
type TorrentGalaxy struct {
	base
}

// NewTorrentGalaxy creates the torrentgalaxy adapter.
func NewTorrentGalaxy(site SiteConfig, deps Deps) *TorrentGalaxy {
	if site.URL == "" {
		site.URL = torrentGalaxyDefaultURL
	}
	return &TorrentGalaxy{base: newBase("torrentgalaxy", site, deps)}
}

// Search implements Source.
func (s *TorrentGalaxy) Search(ctx context.Context, q Query) []Result {
	return s.collect(ctx, q, func(ctx context.Context, page int) ([]candidate, bool, error) {
		body, err := s.deps.Fetcher.Get(ctx, s.pageURL(q.Text, page), s.header())
		if err != nil {
			return nil, false, err
		}
		return parseTorrentGalaxy(body, s.site.URL, page)
	})
}

func (s *TorrentGalaxy) pageURL(query string, page int) string {
	return strings.TrimSuffix(s.site.URL, "/") + "/torrents.php?search=" + url.QueryEscape(query) +
		"&page=" + strconv.Itoa(page-1)
}

// parseTorrentGalaxy reads one result page. Rows without a title or a
// download link are skipped; a page without a result table is a parse error.
func parseTorrentGalaxy(body []byte, baseURL string, page int) ([]candidate, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}

	rows := doc.Find("div.tgxtablerow")
	if rows.Length() == 0 {
		if doc.Find("div.tgxtable").Length() == 0 {
			return nil, false, fmt.Errorf("%w: no result table", ErrParse)
		}
		return nil, false, nil
	}

	base, _ := url.Parse(baseURL)
	var cands []candidate
	rows.Each(func(_ int, row *goquery.Selection) {
		link := row.Find(`a[href^="/torrent/"]`).First()
		title, ok := link.Attr("title")
		if !ok || strings.TrimSpace(title) == "" {
			title = link.Text()
		}
		title = strings.Join(strings.Fields(title), " ")
		if title == "" {
			return
		}

		ref, _ := row.Find(`a[href^="magnet:"]`).First().Attr("href")
		if ref == "" {
			href, ok := row.Find(`a[href$=".torrent"]`).First().Attr("href")
			if !ok {
				return
			}
			ref = absoluteURL(base, href)
		}

		size, _ := ParseSizeString(row.Find("span.badge-secondary").First().Text())
		cands = append(cands, candidate{Title: title, SizeMB: size, Ref: ref})
	})

	// The site numbers pages from 0, so the next page is ?page=<page>.
	next := false
	doc.Find("#pager a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		next = pagerIndex(href) == page
		return !next
	})
	return cands, next, nil
}

// pagerIndex returns the page query parameter of a pager link, or -1.
func pagerIndex(href string) int {
	u, err := url.Parse(href)
	if err != nil {
		return -1
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return -1
	}
	return n
}

func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
