// Package torznab implements the search side of the Torznab indexer API
// served by Jackett, Prowlarr and most private trackers.
package torznab

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrAPI indicates the indexer answered with a Torznab error document.
var ErrAPI = errors.New("torznab error")

// Item is one release from a Torznab feed.
type Item struct {
	Title       string
	GUID        string
	Link        string
	Size        int64
	InfoHash    string
	MagnetURL   string
	Seeders     int
	PublishDate time.Time
}

// Ref returns the best reference for resolving the item's info-hash:
// the infohash attribute, then the magnet link, then the download link.
func (it Item) Ref() string {
	switch {
	case it.InfoHash != "":
		return strings.ToLower(it.InfoHash)
	case it.MagnetURL != "":
		return it.MagnetURL
	case strings.HasPrefix(it.GUID, "magnet:"):
		return it.GUID
	}
	return it.Link
}

// Search functions.
const (
	FuncSearch   = "search"
	FuncTVSearch = "tvsearch"
)

// SearchParams describes a t=search or t=tvsearch request.
type SearchParams struct {
	Function   string // FuncSearch when empty
	APIKey     string
	Query      string
	Season     int // tvsearch only
	Categories []int
	Limit      int
	Offset     int
}

// SearchURL builds the request URL for a search against baseURL.
func SearchURL(baseURL string, p SearchParams) (string, error) {
	reqURL, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/api")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	fn := p.Function
	if fn == "" {
		fn = FuncSearch
	}

	params := url.Values{}
	params.Set("t", fn)
	if p.APIKey != "" {
		params.Set("apikey", p.APIKey)
	}
	if p.Query != "" {
		params.Set("q", p.Query)
	}
	if fn == FuncTVSearch && p.Season > 0 {
		params.Set("season", strconv.Itoa(p.Season))
	}
	if len(p.Categories) > 0 {
		cats := make([]string, len(p.Categories))
		for i, cat := range p.Categories {
			cats[i] = strconv.Itoa(cat)
		}
		params.Set("cat", strings.Join(cats, ","))
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		params.Set("offset", strconv.Itoa(p.Offset))
	}
	reqURL.RawQuery = params.Encode()
	return reqURL.String(), nil
}

// Torznab RSS response structures. Attributes are matched by local name so
// both torznab: and newznab: prefixed feeds decode.
type document struct {
	XMLName     xml.Name
	Code        string     `xml:"code,attr"`
	Description string     `xml:"description,attr"`
	Channel     rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title     string       `xml:"title"`
	GUID      string       `xml:"guid"`
	Link      string       `xml:"link"`
	Size      int64        `xml:"size"`
	PubDate   string       `xml:"pubDate"`
	Enclosure rssEnclosure `xml:"enclosure"`
	Attrs     []rssAttr    `xml:"attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
}

type rssAttr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Decode parses a Torznab feed.
func Decode(r io.Reader) ([]Item, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	switch doc.XMLName.Local {
	case "rss":
	case "error":
		return nil, fmt.Errorf("%w %s: %s", ErrAPI, doc.Code, doc.Description)
	default:
		return nil, fmt.Errorf("parse response: unexpected root <%s>", doc.XMLName.Local)
	}

	items := make([]Item, 0, len(doc.Channel.Items))
	for _, ri := range doc.Channel.Items {
		it := Item{
			Title: strings.TrimSpace(ri.Title),
			GUID:  ri.GUID,
			Link:  ri.Link,
		}

		if ri.Enclosure.Length > 0 {
			it.Size = ri.Enclosure.Length
		} else if ri.Size > 0 {
			it.Size = ri.Size
		}
		if it.Link == "" {
			it.Link = ri.Enclosure.URL
		}

		for _, attr := range ri.Attrs {
			switch strings.ToLower(attr.Name) {
			case "infohash":
				it.InfoHash = strings.ToLower(attr.Value)
			case "magneturl":
				it.MagnetURL = attr.Value
			case "seeders":
				it.Seeders, _ = strconv.Atoi(attr.Value)
			case "size":
				if it.Size == 0 {
					it.Size, _ = strconv.ParseInt(attr.Value, 10, 64)
				}
			}
		}

		it.PublishDate = parseDate(ri.PubDate)
		items = append(items, it)
	}
	return items, nil
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, format := range []string{
		time.RFC1123Z,
		"Mon, 02 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 MST",
		time.RFC1123,
	} {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
