package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMetadata(t *testing.T) {
	input := `{
		"title": "Breaking Bad",
		"year": 2008,
		"has_ratings": true,
		"seasons": [
			{"number": 1, "name": "Season 1", "air_date": "2008-01-20"},
			{"number": 2, "name": "Season 2", "air_date": "2009-03-08"}
		]
	}`

	md, err := ReadMetadata(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Breaking Bad", md.Title)
	assert.Equal(t, 2008, md.Year)
	require.Len(t, md.Seasons, 2)
	assert.Equal(t, "2009-03-08", md.Seasons[1].AirDate)
}

func TestReadMetadata_Errors(t *testing.T) {
	_, err := ReadMetadata(strings.NewReader(`{"year": 2008}`))
	assert.ErrorIs(t, err, ErrNoTitle)

	_, err = ReadMetadata(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestJobs(t *testing.T) {
	md := Metadata{
		Title: "Show",
		Seasons: []SeasonInfo{
			{Number: 2}, {Number: 0, Name: "Specials"}, {Number: 1}, {Number: 2},
		},
	}

	t.Run("show expands to seasons", func(t *testing.T) {
		jobs := Jobs(Identity{IMDbID: "tt0903747", Kind: KindTV}, md)
		require.Len(t, jobs, 2)
		assert.Equal(t, "tv:tt0903747:1", jobs[0].Key())
		assert.Equal(t, "tv:tt0903747:2", jobs[1].Key())
	})

	t.Run("single season", func(t *testing.T) {
		id := Identity{IMDbID: "tt0903747", Kind: KindTV, Season: 2}
		assert.Equal(t, []Identity{id}, Jobs(id, md))
	})

	t.Run("movie", func(t *testing.T) {
		id := Identity{IMDbID: "tt0133093", Kind: KindMovie}
		assert.Equal(t, []Identity{id}, Jobs(id, Metadata{Title: "The Matrix"}))
	})
}
