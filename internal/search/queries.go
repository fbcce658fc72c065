package search

import (
	"fmt"
	"strconv"

	"github.com/vmunix/arrscout/internal/media"
	"github.com/vmunix/arrscout/internal/source"
)

// Queries builds the query forms for a job, variant by variant.
//
// Movies get `"title" year` and `"title"`. Seasons get `"title" sNN`, the
// season name and an explicit alternate season code when present, and the
// bare title only for season 1, since unqualified searches mostly find the
// first season. A code read from the season name ("Part 2") is only sent
// as part of the name query.
func Queries(id media.Identity, vs media.VariantSet) []source.Query {
	years := vs.Years()
	seen := make(map[string]bool)
	var queries []source.Query

	add := func(title, qualifier string) {
		text := `"` + title + `"`
		if qualifier != "" {
			text += " " + qualifier
		}
		if seen[text] {
			return
		}
		seen[text] = true
		queries = append(queries, source.Query{
			Text:      text,
			Title:     title,
			Qualifier: qualifier,
			Season:    id.Season,
			Years:     years,
		})
	}

	for _, title := range vs.Titles {
		if id.Kind != media.KindTV {
			if vs.Year > 0 {
				add(title, strconv.Itoa(vs.Year))
			}
			add(title, "")
			continue
		}

		add(title, seasonCode(id.Season))
		if vs.SeasonName != "" {
			add(title, vs.SeasonName)
		}
		if vs.SeasonCode != "" && !vs.SeasonCodeFromName {
			if n, err := strconv.Atoi(vs.SeasonCode); err == nil {
				add(title, seasonCode(n))
			} else {
				add(title, vs.SeasonCode)
			}
		}
		if id.Season == 1 {
			add(title, "")
		}
	}
	return queries
}

func seasonCode(n int) string {
	return fmt.Sprintf("s%02d", n)
}
