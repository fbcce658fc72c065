// Command collect-titles browses the configured torznab feed for recent
// release titles, for use in building test suites for release name
// parsing and title matching.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/vmunix/arrscout/internal/config"
	"github.com/vmunix/arrscout/internal/source"
	"github.com/vmunix/arrscout/pkg/release"
	"github.com/vmunix/arrscout/pkg/torznab"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to config file")
	output := flag.String("output", "testdata/releases.csv", "Output CSV file")
	pagesPerCategory := flag.Int("pages", 10, "Pages to fetch per category")
	limit := flag.Int("limit", 100, "Results per page")
	flag.Parse()

	if err := run(*configPath, *output, *pagesPerCategory, *limit, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// Categories to browse.
var categories = []struct {
	name string
	cats []int
}{
	{"movie", []int{2000, 2010, 2020, 2030, 2040, 2045, 2050}},
	{"tv", []int{5000, 5010, 5020, 5030, 5040, 5045, 5050, 5070}},
}

func run(configPath, output string, pages, limit int, w io.Writer) error {
	cfg, err := config.LoadWithoutValidation(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	site, ok := cfg.Sites()["torznab"]
	if !ok || site.URL == "" {
		return fmt.Errorf("no torznab source configured")
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	fetcher := source.NewFetcher(cfg.FetchConfig(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Dedupe by title
	seen := make(map[string]bool)
	var results []record

	for _, cat := range categories {
		for page := 0; page < pages; page++ {
			items, err := fetchPage(ctx, fetcher, site, cat.cats, limit, page*limit)
			if err != nil {
				fmt.Fprintf(w, "  %s page %d: error: %v\n", cat.name, page+1, err)
				break
			}

			newCount := 0
			for _, it := range items {
				if it.Title == "" || seen[it.Title] {
					continue
				}
				seen[it.Title] = true
				newCount++

				results = append(results, record{
					Title:     it.Title,
					Canonical: release.CanonicalTitle(it.Title),
					SizeMB:    float64(it.Size) / (1024 * 1024),
					Category:  cat.name,
				})
			}

			fmt.Fprintf(w, "  %s page %d: %d results, %d new\n", cat.name, page+1, len(items), newCount)

			if len(items) < limit {
				break // No more results
			}
		}
	}

	fmt.Fprintf(w, "\nTotal unique titles: %d\n", len(results))

	if err := writeCSV(output, results); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	fmt.Fprintf(w, "Written to %s\n", output)
	return nil
}

func fetchPage(ctx context.Context, fetcher *source.Fetcher, site source.SiteConfig, cats []int, limit, offset int) ([]torznab.Item, error) {
	reqURL, err := torznab.SearchURL(site.URL, torznab.SearchParams{
		APIKey:     site.APIKey,
		Categories: cats,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	body, err := fetcher.Get(ctx, reqURL, nil)
	if err != nil {
		return nil, err
	}
	return torznab.Decode(bytes.NewReader(body))
}

type record struct {
	Title     string
	Canonical string
	SizeMB    float64
	Category  string
}

func writeCSV(path string, records []record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"title", "canonical", "size_mb", "category"}); err != nil {
		return err
	}

	// Data
	for _, r := range records {
		if err := w.Write([]string{
			r.Title,
			r.Canonical,
			strconv.FormatFloat(r.SizeMB, 'f', 1, 64),
			r.Category,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
