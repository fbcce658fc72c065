package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrscout/internal/media"
	"github.com/vmunix/arrscout/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results [key]",
	Short: "Show cached results",
	Long: `Show the results stored for a key.

The key is movie:<imdb> or tv:<imdb>:<season>, or it can be built
from flags.

Examples:
  arrscout results movie:tt0133093
  arrscout results --imdb tt0903747 --kind tv --season 1 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResultsCmd,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().String("imdb", "", "IMDb ID (tt1234567)")
	resultsCmd.Flags().String("kind", "movie", "Media kind: movie or tv")
	resultsCmd.Flags().Int("season", 0, "Season number (tv only)")
}

func runResultsCmd(cmd *cobra.Command, args []string) error {
	key, err := resultsKey(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	db, err := results.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := results.NewSQLiteStore(db)
	ctx := cmd.Context()
	list, err := store.GetResults(ctx, key)
	if errors.Is(err, results.ErrNotFound) {
		return fmt.Errorf("no results cached for %s", key)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, list)
	}

	status := "in progress"
	if store.IsDone(ctx, key) {
		status = "done"
	}
	fmt.Fprintf(out, "%s: %d results (%s)\n", key, len(list), status)
	printResultTable(out, list)
	return nil
}

func resultsKey(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	imdbID, _ := cmd.Flags().GetString("imdb")
	if imdbID == "" {
		return "", fmt.Errorf("usage: arrscout results <key> or arrscout results --imdb <id>")
	}
	kindStr, _ := cmd.Flags().GetString("kind")
	season, _ := cmd.Flags().GetInt("season")
	id, err := parseIdentity(imdbID, kindStr, season)
	if err != nil {
		return "", err
	}
	if id.Kind == media.KindTV && id.Season == 0 {
		return "", fmt.Errorf("--season is required for tv results")
	}
	return id.Key(), nil
}
