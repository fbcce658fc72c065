package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Movie(t *testing.T) {
	info := Parse("The.Matrix.1999.1080p.BluRay.x264-GROUP")

	assert.Equal(t, "The Matrix", info.Title)
	assert.Equal(t, 1999, info.Year)
	assert.Equal(t, "GROUP", info.Group)
	assert.Equal(t, "matrix", info.CleanTitle)
}

func TestParse_Episode(t *testing.T) {
	info := Parse("Breaking.Bad.S01E02.720p.HDTV.x264-CTU")

	assert.Equal(t, "Breaking Bad", info.Title)
	assert.Equal(t, 1, info.Season)
	assert.Equal(t, 2, info.Episode)
	assert.Equal(t, "breaking bad", info.CleanTitle)
}

func TestCanonicalTitle_GroupsVariants(t *testing.T) {
	a := CanonicalTitle("The.Matrix.1999.1080p.BluRay.x264-GROUP")
	b := CanonicalTitle("The Matrix (1999) [2160p] [WEB-DL]")
	assert.Equal(t, a, b)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "Some Movie", fallbackTitle("Some_Movie.2020.1080p"))
	assert.Equal(t, "Show Name", fallbackTitle("Show.Name.S02E03.WEB-DL"))
	assert.Equal(t, "NoTags", fallbackTitle("NoTags"))
}
