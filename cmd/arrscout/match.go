package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrscout/pkg/release"
)

var matchCmd = &cobra.Command{
	Use:   "match [flags] <target> <candidate>",
	Short: "Check whether a release name matches a title",
	Long: `Run the title matcher on one release name and explain the verdict.

Examples:
  arrscout match "the matrix" "The.Matrix.1999.1080p.BluRay.x264-GROUP" --year 1999
  arrscout match "dune part two" "Dune.Part.Two.2024.2160p.WEB-DL" --year 2024 --json
  arrscout match "spirited away" "Sen.to.Chihiro.no.Kamikakushi.2001.1080p" --alias "sen to chihiro no kamikakushi"`,
	Args: cobra.ExactArgs(2),
	RunE: runMatchCmd,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringSlice("year", nil, "Accepted release year (repeatable)")
	matchCmd.Flags().StringSlice("alias", nil, "Other title of the same work (repeatable)")
}

// matchReport explains a matcher verdict.
type matchReport struct {
	Target         string   `json:"target"`
	Candidate      string   `json:"candidate"`
	Years          []string `json:"years,omitempty"`
	Match          bool     `json:"match"`
	Banned         bool     `json:"banned"`
	Accepted       bool     `json:"accepted"`
	MustHaveTerms  []string `json:"must_have_terms"`
	CanonicalTitle string   `json:"canonical_title"`
	Similarity     float64  `json:"similarity"`
	Confidence     string   `json:"confidence"`
	ClosestTitle   string   `json:"closest_title,omitempty"`
	YearAgreement  string   `json:"year_agreement"`

	VariantScores []release.VariantScore `json:"variant_scores"`
}

func runMatchCmd(cmd *cobra.Command, args []string) error {
	years, _ := cmd.Flags().GetStringSlice("year")
	aliases, _ := cmd.Flags().GetStringSlice("alias")

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	matcher, err := cfg.Matcher()
	if err != nil {
		return err
	}

	titles := []string{release.SearchTitle(args[0])}
	for _, a := range aliases {
		titles = append(titles, release.SearchTitle(a))
	}
	report := buildMatchReport(matcher, titles, args[1], years)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), report)
	}
	printMatchReport(cmd.OutOrStdout(), report)
	return nil
}

// buildMatchReport runs the matcher against each title variant; titles[0]
// is the primary title. The candidate is accepted through the first
// variant it matches without a banned word.
func buildMatchReport(m *release.Matcher, titles []string, candidate string, years []string) matchReport {
	sim := release.ScoreRelease(titles, years, candidate)
	r := matchReport{
		Target:         titles[0],
		Candidate:      candidate,
		Years:          years,
		CanonicalTitle: sim.Canonical,
		Similarity:     sim.Score,
		Confidence:     sim.Confidence.String(),
		ClosestTitle:   sim.Best,
		YearAgreement:  string(sim.Year),
		VariantScores:  sim.Variants,
	}
	for _, title := range titles {
		match := m.Matches(title, years, candidate)
		banned := m.Banned(title, candidate)
		if match && !banned {
			r.Target, r.Match, r.Banned, r.Accepted = title, true, false, true
			break
		}
		if title == titles[0] {
			r.Match, r.Banned = match, banned
		}
	}
	r.MustHaveTerms = m.MustHaveTerms(r.Target)
	if r.MustHaveTerms == nil {
		r.MustHaveTerms = []string{}
	}
	return r
}

func printMatchReport(w io.Writer, r matchReport) {
	verdict := "REJECTED"
	if r.Accepted {
		verdict = "ACCEPTED"
	}
	fmt.Fprintf(w, "Verdict:     %s\n", verdict)
	fmt.Fprintf(w, "Target:      %s\n", r.Target)
	fmt.Fprintf(w, "Candidate:   %s\n", r.Candidate)
	fmt.Fprintf(w, "Canonical:   %s\n", r.CanonicalTitle)
	fmt.Fprintf(w, "Matches:     %t\n", r.Match)
	fmt.Fprintf(w, "Banned word: %t\n", r.Banned)
	if len(r.MustHaveTerms) > 0 {
		fmt.Fprintf(w, "Must have:   %v\n", r.MustHaveTerms)
	}
	fmt.Fprintf(w, "Similarity:  %.2f (%s)\n", r.Similarity, r.Confidence)
	if r.YearAgreement != "" {
		fmt.Fprintf(w, "Year:        %s\n", r.YearAgreement)
	}
	if len(r.VariantScores) > 1 {
		for _, v := range r.VariantScores {
			fmt.Fprintf(w, "  %-30s %.2f\n", v.Title, v.Score)
		}
	}
}
