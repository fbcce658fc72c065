package release

import (
	"regexp"
	"strings"

	"github.com/moistari/rls"
)

// tagRegex finds the first scene tag after the title: a year, a season
// marker or a quality token.
var tagRegex = regexp.MustCompile(`(?i)[\s._\-(\[]+((19|20)\d{2}|s\d{1,2}(e\d{1,3})?|season\s*\d+|2160p|1080p|720p|576p|480p|4k|uhd|bluray|blu-ray|bdrip|brrip|web-?dl|webrip|hdtv|dvdrip|x264|x265|hevc|remux)\b`)

// Parse extracts title and quality information from a release name.
func Parse(name string) Info {
	r := rls.ParseString(name)
	info := Info{
		Title:      strings.TrimSpace(r.Title),
		Year:       int(r.Year),
		Season:     int(r.Series),
		Episode:    int(r.Episode),
		Resolution: r.Resolution,
		Source:     r.Source,
		Group:      r.Group,
		Type:       r.Type.String(),
	}
	if info.Title == "" {
		info.Title = fallbackTitle(name)
	}
	info.CleanTitle = CleanTitle(info.Title)
	if info.CleanTitle == "" {
		info.CleanTitle = CleanTitle(name)
	}
	return info
}

// CanonicalTitle returns the release title with quality and scene tags
// stripped, normalized for grouping.
func CanonicalTitle(name string) string {
	return Parse(name).CleanTitle
}

// fallbackTitle cuts the name at the first scene tag.
func fallbackTitle(name string) string {
	if loc := tagRegex.FindStringIndex(name); loc != nil && loc[0] > 0 {
		name = name[:loc[0]]
	}
	name = strings.NewReplacer(".", " ", "_", " ").Replace(name)
	return strings.TrimSpace(name)
}
