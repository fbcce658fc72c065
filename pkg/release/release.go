// Package release parses, normalizes and matches torrent release names
// against known media titles.
package release

// Info contains parsed release information.
type Info struct {
	Title      string `json:"title"`
	Year       int    `json:"year,omitempty"`
	Season     int    `json:"season,omitempty"`
	Episode    int    `json:"episode,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	Source     string `json:"source,omitempty"`
	Group      string `json:"group,omitempty"`
	Type       string `json:"type,omitempty"`

	// Normalized title used to group releases of the same work
	CleanTitle string `json:"clean_title"`
}
