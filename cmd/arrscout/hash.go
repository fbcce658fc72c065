package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrscout/pkg/infohash"
)

var hashCmd = &cobra.Command{
	Use:   "hash <magnet|url|hash>",
	Short: "Resolve a magnet link or .torrent URL to its info-hash",
	Long: `Resolve a torrent reference to its 40-character info-hash.

Examples:
  arrscout hash "magnet:?xt=urn:btih:..."
  arrscout hash https://example.org/download/123.torrent`,
	Args: cobra.ExactArgs(1),
	RunE: runHashCmd,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

type hashReport struct {
	Hash   string  `json:"hash"`
	SizeMB float64 `json:"size_mb,omitempty"`
}

func runHashCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg.Log, logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	fc := cfg.FetchConfig()
	resolver := infohash.NewResolver(infohash.Options{Timeout: fc.Timeout, UserAgent: fc.UserAgent}, log)

	res, ok := resolver.Resolve(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("%s: %w", args[0], infohash.ErrUnresolved)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, hashReport{Hash: res.Hash, SizeMB: res.SizeMB})
	}
	fmt.Fprintln(out, res.Hash)
	if res.HasSize {
		fmt.Fprintf(out, "Size: %s\n", formatSize(res.SizeMB))
	}
	return nil
}
