package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrscout/pkg/release"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <release-name>",
	Short: "Parse a release name",
	Long: `Parse a release name and show its canonical title.

Examples:
  arrscout parse "The.Matrix.1999.2160p.UHD.BluRay.x265-GROUP"
  arrscout parse --file releases.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read release names from file (one per line)")
	// Note: --json is inherited from root as persistent flag
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	var releaseNames []string
	if inputFile != "" {
		names, err := readReleaseFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		releaseNames = names
	} else if len(args) > 0 {
		releaseNames = []string{args[0]}
	} else {
		return fmt.Errorf("usage: arrscout parse <release-name> or arrscout parse --file <filename>")
	}

	infos := make([]release.Info, 0, len(releaseNames))
	for _, name := range releaseNames {
		infos = append(infos, release.Parse(name))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		// For single result, output object; for multiple, output array
		if len(infos) == 1 {
			return printJSON(out, infos[0])
		}
		return printJSON(out, infos)
	}
	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printHumanReadable(out, info)
	}
	return nil
}

// readReleaseFile reads release names from a file, one per line.
func readReleaseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}

func printHumanReadable(w io.Writer, info release.Info) {
	fmt.Fprintf(w, "Title:       %s\n", valueOrEmpty(info.Title))
	if info.Year > 0 {
		fmt.Fprintf(w, "Year:        %d\n", info.Year)
	}
	if info.Season > 0 || info.Episode > 0 {
		fmt.Fprintf(w, "Season:      %d\n", info.Season)
		fmt.Fprintf(w, "Episode:     %d\n", info.Episode)
	}
	if info.Resolution != "" {
		fmt.Fprintf(w, "Resolution:  %s\n", info.Resolution)
	}
	if info.Source != "" {
		fmt.Fprintf(w, "Source:      %s\n", info.Source)
	}
	if info.Group != "" {
		fmt.Fprintf(w, "Group:       %s\n", info.Group)
	}
	fmt.Fprintf(w, "Clean Title: %s\n", valueOrEmpty(info.CleanTitle))
}

func valueOrEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
