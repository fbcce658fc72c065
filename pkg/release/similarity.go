package release

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/hbollon/go-edlib"
)

// sequenceRegex extracts sequel and part numbers from titles.
var sequenceRegex = regexp.MustCompile(`\b(\d{1,3})\b`)

// MatchConfidence grades a similarity score.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceFor(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// YearAgreement says how a release year relates to the accepted years.
type YearAgreement string

const (
	YearUnknown  YearAgreement = "unknown"  // release or target carries no year
	YearAgrees   YearAgreement = "agrees"   // release year is accepted
	YearConflict YearAgreement = "conflict" // release year is not accepted
)

// VariantScore is the similarity of a release to one title variant.
type VariantScore struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Similarity describes how closely a release name resembles a work known
// by several title variants. It is a diagnostic and plays no part in
// filtering.
type Similarity struct {
	Canonical  string          // canonical title of the release
	Best       string          // closest title variant
	Score      float64         // best variant score after year adjustment (0.0-1.0)
	Confidence MatchConfidence // grade of Score
	Year       YearAgreement
	Variants   []VariantScore // raw score per variant, in input order
}

// ScoreRelease compares a release name against every title variant. The
// release is reduced to its canonical title and scored with Jaro-Winkler
// similarity, adjusted when sequel numbers agree or disagree. The best
// variant score is then adjusted for year agreement.
func ScoreRelease(titles []string, years []string, name string) Similarity {
	info := Parse(name)
	sim := Similarity{Canonical: info.CleanTitle, Year: yearAgreement(info.Year, years)}
	if len(titles) == 0 {
		return sim
	}

	candidateNums := sequenceRegex.FindAllString(info.CleanTitle, -1)
	sim.Variants = make([]VariantScore, 0, len(titles))
	for _, title := range titles {
		target := CleanTitle(title)
		score := float64(edlib.JaroWinklerSimilarity(target, info.CleanTitle))
		score = adjustScoreForNumbers(score, sequenceRegex.FindAllString(target, -1), candidateNums)
		sim.Variants = append(sim.Variants, VariantScore{Title: title, Score: score})
		if score > sim.Score {
			sim.Best = title
			sim.Score = score
		}
	}

	switch sim.Year {
	case YearAgrees:
		sim.Score = min(sim.Score*1.05, 1.0)
	case YearConflict:
		sim.Score *= 0.80
	}
	sim.Confidence = confidenceFor(sim.Score)
	if sim.Confidence == ConfidenceNone {
		sim.Best = ""
	}
	return sim
}

func yearAgreement(year int, years []string) YearAgreement {
	if year == 0 || len(years) == 0 {
		return YearUnknown
	}
	if slices.Contains(years, strconv.Itoa(year)) {
		return YearAgrees
	}
	return YearConflict
}

// adjustScoreForNumbers rewards matching sequence numbers and penalizes
// missing or different ones.
func adjustScoreForNumbers(score float64, targetNums, candidateNums []string) float64 {
	if len(targetNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range targetNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
