package search

import (
	"cmp"
	"slices"

	"github.com/vmunix/arrscout/internal/source"
	"github.com/vmunix/arrscout/pkg/release"
)

// Dedupe keeps the first result seen for each hash, preserving order.
func Dedupe(results []source.Result) []source.Result {
	seen := make(map[string]bool, len(results))
	out := make([]source.Result, 0, len(results))
	for _, r := range results {
		if seen[r.Hash] {
			continue
		}
		seen[r.Hash] = true
		out = append(out, r)
	}
	return out
}

// GroupByParsedTitle orders results by how many results share their
// canonical release title, most first, then by file size, largest first.
// Equal results keep their input order.
func GroupByParsedTitle(results []source.Result) []source.Result {
	canonical := make([]string, len(results))
	freq := make(map[string]int)
	for i, r := range results {
		canonical[i] = release.CanonicalTitle(r.Title)
		freq[canonical[i]]++
	}

	type ranked struct {
		source.Result
		freq int
	}
	items := make([]ranked, len(results))
	for i, r := range results {
		items[i] = ranked{Result: r, freq: freq[canonical[i]]}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		if c := cmp.Compare(b.freq, a.freq); c != 0 {
			return c
		}
		return cmp.Compare(b.FileSize, a.FileSize)
	})

	out := make([]source.Result, len(items))
	for i, it := range items {
		out[i] = it.Result
	}
	return out
}

// SortByFileSize orders results by file size, largest first. Equal sizes
// keep their input order.
func SortByFileSize(results []source.Result) []source.Result {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b source.Result) int {
		return cmp.Compare(b.FileSize, a.FileSize)
	})
	return out
}
