package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrscout/internal/jobs"
	"github.com/vmunix/arrscout/internal/media"
	"github.com/vmunix/arrscout/internal/source"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the configured sites for a movie or series",
	Long: `Scrape the configured torrent sites for one movie, one season, or every
season of a series, and store the ranked results in the result cache.

Metadata is read from a JSON file:
  {"title": "The Matrix", "year": 1999, "alternate_titles": ["Matrix"]}

Examples:
  arrscout scrape --imdb tt0133093 --metadata matrix.json
  arrscout scrape --imdb tt0903747 --kind tv --season 2 --metadata bb.json
  arrscout scrape --imdb tt0903747 --kind tv --metadata bb.json --force`,
	Args: cobra.NoArgs,
	RunE: runScrapeCmd,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().String("imdb", "", "IMDb ID (tt1234567)")
	scrapeCmd.Flags().String("kind", "movie", "Media kind: movie or tv")
	scrapeCmd.Flags().Int("season", 0, "Season number (tv only; 0 scrapes every season)")
	scrapeCmd.Flags().StringP("metadata", "m", "", "Path to metadata JSON file")
	scrapeCmd.Flags().Bool("force", false, "Rescrape keys already marked done")
	_ = scrapeCmd.MarkFlagRequired("imdb")
	_ = scrapeCmd.MarkFlagRequired("metadata")
	_ = scrapeCmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(media.KindMovie), string(media.KindTV)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	imdbID, _ := cmd.Flags().GetString("imdb")
	kindStr, _ := cmd.Flags().GetString("kind")
	season, _ := cmd.Flags().GetInt("season")
	mdPath, _ := cmd.Flags().GetString("metadata")
	force, _ := cmd.Flags().GetBool("force")

	id, err := parseIdentity(imdbID, kindStr, season)
	if err != nil {
		return err
	}
	md, err := media.ReadMetadataFile(mdPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg.Log, logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	outcomes, runErr := a.runner.Run(ctx, id, md, jobs.Options{Force: force})
	log.Info("scrape finished", "key", id.Key(), "jobs", len(outcomes), "duration_ms", time.Since(start).Milliseconds())

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, outcomeReports(outcomes)); err != nil {
			return err
		}
	} else {
		printOutcomes(out, outcomes)
	}
	return runErr
}

func parseIdentity(imdbID, kindStr string, season int) (media.Identity, error) {
	kind, err := media.ParseKind(kindStr)
	if err != nil {
		return media.Identity{}, err
	}
	id := media.Identity{IMDbID: imdbID, Kind: kind, Season: season}
	if err := id.Validate(); err != nil {
		return media.Identity{}, err
	}
	return id, nil
}

// outcomeReport is the JSON form of a job outcome.
type outcomeReport struct {
	Key        string          `json:"key"`
	Skipped    bool            `json:"skipped,omitempty"`
	Error      string          `json:"error,omitempty"`
	DurationMS int64           `json:"duration_ms"`
	Results    []source.Result `json:"results"`
}

func outcomeReports(outcomes []jobs.Outcome) []outcomeReport {
	reports := make([]outcomeReport, len(outcomes))
	for i, o := range outcomes {
		reports[i] = outcomeReport{
			Key:        o.Key,
			Skipped:    o.Skipped,
			DurationMS: o.Duration.Milliseconds(),
			Results:    o.Results,
		}
		if reports[i].Results == nil {
			reports[i].Results = []source.Result{}
		}
		if o.Err != nil {
			reports[i].Error = o.Err.Error()
		}
	}
	return reports
}

func printOutcomes(w io.Writer, outcomes []jobs.Outcome) {
	for i, o := range outcomes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		switch {
		case o.Skipped:
			fmt.Fprintf(w, "%s: already done (use --force to rescrape)\n", o.Key)
		case o.Err != nil:
			fmt.Fprintf(w, "%s: failed: %v\n", o.Key, o.Err)
		default:
			fmt.Fprintf(w, "%s: %d results in %s\n", o.Key, len(o.Results), o.Duration.Round(time.Millisecond))
			printResultTable(w, o.Results)
		}
	}
}

func printResultTable(w io.Writer, results []source.Result) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  # │ %-56s │ %9s │ %-13s │ %s\n", "RELEASE", "SIZE", "SOURCE", "HASH")
	fmt.Fprintln(w, "────┼──────────────────────────────────────────────────────────┼───────────┼───────────────┼─────────────────────────────────────────")
	for i, r := range results {
		fmt.Fprintf(w, " %2d │ %-56s │ %9s │ %-13s │ %s\n",
			i+1, truncate(r.Title, 56), formatSize(r.FileSize), r.Source, r.Hash)
	}
}
