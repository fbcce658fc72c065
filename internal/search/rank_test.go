package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vmunix/arrscout/internal/search"
	"github.com/vmunix/arrscout/internal/source"
	"github.com/vmunix/arrscout/pkg/release"
)

func resultHashes(rs []source.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Hash
	}
	return out
}

func TestDedupe(t *testing.T) {
	in := []source.Result{
		{Title: "first", Hash: "a", Source: "btdigg"},
		{Title: "second", Hash: "b"},
		{Title: "third", Hash: "a", Source: "yts"},
		{Title: "fourth", Hash: "c"},
		{Title: "fifth", Hash: "b"},
	}

	out := search.Dedupe(in)

	assert.Equal(t, []string{"a", "b", "c"}, resultHashes(out))
	assert.Equal(t, "btdigg", out[0].Source)
	assert.Empty(t, search.Dedupe(nil))
}

func TestGroupByParsedTitle(t *testing.T) {
	in := []source.Result{
		{Title: "The.Matrix.1999.1080p.BluRay.x264-GROUP", FileSize: 10, Hash: "a"},
		{Title: "Matrix.Parody.2000.720p.WEB-DL", FileSize: 50, Hash: "b"},
		{Title: "The.Matrix.1999.720p.WEB-DL.x264-OTHER", FileSize: 5, Hash: "c"},
		{Title: "The.Matrix.1999.2160p.UHD.BluRay.x265-HDR", FileSize: 20, Hash: "d"},
	}

	out := search.GroupByParsedTitle(in)

	assert.Equal(t, []string{"d", "a", "c", "b"}, resultHashes(out))

	freq := make(map[string]int)
	for _, r := range out {
		freq[release.CanonicalTitle(r.Title)]++
	}
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t,
			freq[release.CanonicalTitle(out[i-1].Title)],
			freq[release.CanonicalTitle(out[i].Title)])
	}
}

func TestGroupByParsedTitle_StableOnTies(t *testing.T) {
	in := []source.Result{
		{Title: "Alpha.2001.1080p", FileSize: 100, Hash: "1"},
		{Title: "Beta.2002.1080p", FileSize: 100, Hash: "2"},
		{Title: "Gamma.2003.1080p", FileSize: 100, Hash: "3"},
	}
	assert.Equal(t, []string{"1", "2", "3"}, resultHashes(search.GroupByParsedTitle(in)))
}

func TestSortByFileSize(t *testing.T) {
	in := []source.Result{
		{FileSize: 1.5, Hash: "a"},
		{FileSize: 700, Hash: "b"},
		{FileSize: 1.5, Hash: "c"},
		{FileSize: 4000, Hash: "d"},
	}

	out := search.SortByFileSize(in)

	assert.Equal(t, []string{"d", "b", "a", "c"}, resultHashes(out))
	assert.Equal(t, "a", in[0].Hash, "input is not modified")
}
