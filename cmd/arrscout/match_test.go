package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/arrscout/pkg/release"
)

func testMatcher() *release.Matcher {
	return release.NewMatcher(release.NewWordlist("the", "of"), release.NewWordlist("parody"))
}

func TestBuildMatchReport_Accepted(t *testing.T) {
	r := buildMatchReport(testMatcher(), []string{"the matrix"}, "The.Matrix.1999.1080p.BluRay.x264-GROUP", []string{"1999"})

	assert.True(t, r.Match)
	assert.False(t, r.Banned)
	assert.True(t, r.Accepted)
	assert.Equal(t, []string{"matrix"}, r.MustHaveTerms)
	assert.Equal(t, "matrix", r.CanonicalTitle)
	assert.Equal(t, "high", r.Confidence)
	assert.Equal(t, "agrees", r.YearAgreement)
}

func TestBuildMatchReport_Banned(t *testing.T) {
	r := buildMatchReport(testMatcher(), []string{"the matrix"}, "The.Matrix.Parody.1999.720p", []string{"1999"})

	assert.True(t, r.Match)
	assert.True(t, r.Banned)
	assert.False(t, r.Accepted)
}

func TestBuildMatchReport_WrongYear(t *testing.T) {
	r := buildMatchReport(testMatcher(), []string{"the matrix"}, "The.Matrix.2021.1080p", []string{"1999"})

	assert.False(t, r.Match)
	assert.False(t, r.Accepted)
}

func TestBuildMatchReport_AcceptedThroughAlias(t *testing.T) {
	titles := []string{"spirited away", "sen to chihiro no kamikakushi"}
	r := buildMatchReport(testMatcher(), titles, "Sen.to.Chihiro.no.Kamikakushi.2001.1080p.BluRay", []string{"2001"})

	assert.True(t, r.Accepted)
	assert.Equal(t, "sen to chihiro no kamikakushi", r.Target)
	assert.Equal(t, "sen to chihiro no kamikakushi", r.ClosestTitle)
	assert.Len(t, r.VariantScores, 2)
}

func TestPrintMatchReport(t *testing.T) {
	var buf bytes.Buffer
	printMatchReport(&buf, matchReport{
		Target:        "the matrix",
		Candidate:     "The.Matrix.1999",
		Match:         true,
		Accepted:      true,
		MustHaveTerms: []string{"matrix"},
		Confidence:    "high",
		Similarity:    1,
		YearAgreement: "agrees",
		VariantScores: []release.VariantScore{{Title: "the matrix", Score: 1}, {Title: "matrix", Score: 0.9}},
	})
	out := buf.String()
	assert.Contains(t, out, "Verdict:     ACCEPTED")
	assert.Contains(t, out, "Must have:   [matrix]")
	assert.Contains(t, out, "Similarity:  1.00 (high)")
	assert.Contains(t, out, "Year:        agrees")
	assert.Contains(t, out, "the matrix")
}
