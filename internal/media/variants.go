package media

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/arrscout/pkg/release"
)

var (
	plainSeasonRegex = regexp.MustCompile(`(?i)^\s*season\s+\d+\s*$`)
	digitsRegex      = regexp.MustCompile(`\d+`)
	trailingYear     = regexp.MustCompile(`\s+(19|20)\d{2}$`)
)

// VariantSet holds the title spellings and dates a job searches with.
// Titles are distinct, lowercase and ordered: primary, original,
// alternates and slugs, then the symbol-preserving form.
type VariantSet struct {
	Titles  []string
	Year    int
	AirDate string

	Season     int
	SeasonName string // set only when the season is not named "Season N"
	SeasonCode string // alternate season number, e.g. "2" for "Part 2"
	SeasonYear int    // set only when it differs from Year

	// SeasonCodeFromName is set when SeasonCode was read from the digits
	// in the season name rather than given explicitly.
	SeasonCodeFromName bool
}

// Primary returns the primary cleaned title.
func (v VariantSet) Primary() string {
	if len(v.Titles) == 0 {
		return ""
	}
	return v.Titles[0]
}

// Years returns the distinct years a release may carry, in order of
// preference.
func (v VariantSet) Years() []string {
	var years []string
	seen := make(map[int]bool)
	for _, y := range []int{v.Year, v.SeasonYear, yearOf(v.AirDate)} {
		if y <= 0 || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// Normalize derives the title variants for a movie (season 0) or one
// season of a show. It is deterministic and does no I/O.
func Normalize(md Metadata, season int) VariantSet {
	vs := VariantSet{
		Year:    md.Year,
		AirDate: md.AirDate,
		Season:  season,
	}
	if vs.Year == 0 {
		vs.Year = yearOf(md.AirDate)
	}

	primary := release.SearchTitle(md.Title)
	if primary == "" {
		return vs
	}
	known := map[string]bool{primary: true}
	vs.Titles = append(vs.Titles, primary)

	add := func(title string) {
		if title == "" || known[title] {
			return
		}
		known[title] = true
		vs.Titles = append(vs.Titles, title)
	}

	if md.HasRatings && md.OriginalTitle != "" {
		add(release.SearchTitle(md.OriginalTitle))
	}
	for _, alt := range md.AlternateTitles {
		add(release.SearchTitle(alt))
	}
	for _, u := range md.AggregatorURLs {
		add(slugTitle(u))
	}
	if lite := release.LiteTitle(md.Title); lite != primary {
		add(lite)
	}

	if season > 0 {
		normalizeSeason(&vs, md, season)
	}
	return vs
}

func normalizeSeason(vs *VariantSet, md Metadata, number int) {
	s, ok := md.Season(number)
	if !ok {
		return
	}
	if s.AirDate != "" {
		vs.AirDate = s.AirDate
		if y := yearOf(s.AirDate); y > 0 && y != md.Year {
			vs.SeasonYear = y
		}
	}

	name := strings.TrimSpace(s.Name)
	if name == "" || plainSeasonRegex.MatchString(name) {
		return
	}
	vs.SeasonName = release.SearchTitle(name)

	code, fromName := strings.TrimSpace(s.Code), false
	if code == "" {
		code, fromName = digitsRegex.FindString(name), true
	}
	if code != "" && code != strconv.Itoa(number) {
		if n, err := strconv.Atoi(code); err != nil || n != number {
			vs.SeasonCode = code
			vs.SeasonCodeFromName = fromName
		}
	}
}

// slugTitle turns a review aggregator URL such as
// https://www.rottentomatoes.com/m/the_matrix_1999 into "the matrix".
func slugTitle(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	slug := path.Base(strings.TrimSuffix(u.Path, "/"))
	if slug == "." || slug == "/" {
		return ""
	}
	slug = strings.NewReplacer("_", " ", "-", " ").Replace(slug)
	return trailingYear.ReplaceAllString(release.SearchTitle(slug), "")
}
