package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// ErrNoTitle indicates metadata without a primary title.
var ErrNoTitle = errors.New("metadata has no title")

// SeasonInfo describes one season of a show.
type SeasonInfo struct {
	Number  int    `json:"number"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code,omitempty"`
	AirDate string `json:"air_date,omitempty"` // "2019-04-14"
}

// Metadata is what the metadata resolver knows about a title.
type Metadata struct {
	Title           string       `json:"title"`
	OriginalTitle   string       `json:"original_title,omitempty"`
	AlternateTitles []string     `json:"alternate_titles,omitempty"`
	Year            int          `json:"year,omitempty"`
	AirDate         string       `json:"air_date,omitempty"`
	HasRatings      bool         `json:"has_ratings,omitempty"`
	AggregatorURLs  []string     `json:"aggregator_urls,omitempty"` // review aggregator pages, e.g. rottentomatoes.com/m/the_matrix
	Seasons         []SeasonInfo `json:"seasons,omitempty"`
}

// ReadMetadata decodes metadata JSON.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var md Metadata
	if err := json.NewDecoder(r).Decode(&md); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	if md.Title == "" {
		return Metadata{}, ErrNoTitle
	}
	return md, nil
}

// ReadMetadataFile decodes metadata JSON from a file.
func ReadMetadataFile(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open metadata: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadMetadata(f)
}

// Season returns the season with the given number.
func (md Metadata) Season(number int) (SeasonInfo, bool) {
	for _, s := range md.Seasons {
		if s.Number == number {
			return s, true
		}
	}
	return SeasonInfo{}, false
}

// Jobs expands an identity into independent scrape jobs. A show without a
// season becomes one job per known season; specials (season 0) are skipped.
func Jobs(id Identity, md Metadata) []Identity {
	if id.Kind != KindTV || id.Season > 0 {
		return []Identity{id}
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, s := range md.Seasons {
		if s.Number <= 0 || seen[s.Number] {
			continue
		}
		seen[s.Number] = true
		numbers = append(numbers, s.Number)
	}
	sort.Ints(numbers)

	jobs := make([]Identity, 0, len(numbers))
	for _, n := range numbers {
		jobs = append(jobs, Identity{IMDbID: id.IMDbID, Kind: KindTV, Season: n})
	}
	return jobs
}

// yearOf extracts the year from a "2024-03-01" style date.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
