package release

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s`)
	alnumSpacesRegex = regexp.MustCompile(`^[a-z0-9\s]+$`)
)

const (
	// Minimum rune lengths for a bare substring match to count without a year.
	singleTokenLength = 5
	multiTokenLength  = 9

	lastChanceWords = 4
	bannedMinLength = 3
)

// Matcher decides whether a release title names a target title.
// The dictionaries are injected so tests can run without the embedded lists.
type Matcher struct {
	english *Wordlist
	banned  *Wordlist
}

// NewMatcher creates a matcher. Nil wordlists behave as empty.
func NewMatcher(english, banned *Wordlist) *Matcher {
	return &Matcher{english: english, banned: banned}
}

// DefaultMatcher uses the embedded English and banned wordlists.
func DefaultMatcher() *Matcher {
	return NewMatcher(DefaultEnglish(), DefaultBanned())
}

// MeetsConditions reports whether candidate matches target and carries no banned word.
func (m *Matcher) MeetsConditions(target string, years []string, candidate string) bool {
	return m.Matches(target, years, candidate) && !m.Banned(target, candidate)
}

// Matches reports whether candidate plausibly names target released in one of years.
func (m *Matcher) Matches(target string, years []string, candidate string) bool {
	target = strings.ToLower(strings.TrimSpace(target))
	candidate = strings.ToLower(candidate)
	if target == "" || candidate == "" {
		return false
	}
	hasYear := containsYear(candidate, years)

	if !whitespaceRegex.MatchString(target) {
		if m.UncommonCount(target) == 0 {
			return fuzzyContains(candidate, target) && hasYear
		}
		nakedTarget, nakedCandidate := Naked(target), Naked(candidate)
		if runeLen(nakedTarget) > singleTokenLength && fuzzyContains(nakedCandidate, nakedTarget) {
			return true
		}
		return fuzzyContains(candidate, target) && hasYear
	}

	if alnumSpacesRegex.MatchString(target) {
		strippedTarget, strippedCandidate := StripSpaces(target), StripSpaces(candidate)
		if fuzzyContains(strippedCandidate, strippedTarget) &&
			(runeLen(strippedTarget) > multiTokenLength || hasYear) {
			return true
		}
	} else {
		strippedTarget, strippedCandidate := StripSpaces(target), StripSpaces(candidate)
		nakedTarget, nakedCandidate := Naked(strippedTarget), Naked(strippedCandidate)
		if runeLen(nakedTarget) > multiTokenLength && fuzzyContains(nakedCandidate, nakedTarget) {
			return true
		}
		if runeLen(strippedTarget) > multiTokenLength && fuzzyContains(strippedCandidate, strippedTarget) {
			return true
		}
		if fuzzyContains(candidate, target) && hasYear {
			return true
		}
	}

	if lastChance(target) {
		return true
	}

	return hasYear && includesTerms(candidate, m.MustHaveTerms(target))
}

// Banned reports whether the parsed candidate title contains a banned word
// that the target title does not contain itself.
func (m *Matcher) Banned(target, candidate string) bool {
	if m.banned.Len() == 0 {
		return false
	}
	target = strings.ToLower(target)
	for _, word := range strings.Fields(CanonicalTitle(candidate)) {
		if runeLen(word) < bannedMinLength {
			continue
		}
		if m.banned.Contains(word) && !strings.Contains(target, word) {
			return true
		}
	}
	return false
}

// UncommonCount counts target words missing from the English dictionary.
// A target without whitespace is tested as one token.
func (m *Matcher) UncommonCount(target string) int {
	return len(m.MustHaveTerms(target))
}

// MustHaveTerms returns the target words missing from the English dictionary,
// in title order.
func (m *Matcher) MustHaveTerms(target string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(target)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" || m.english.Contains(word) || m.english.Contains(RemoveDiacritics(word)) {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// lastChance removes every word of target, or its folded forms, from a
// scratch copy of target. Titles with more than four words where all but
// at most one word could be removed are accepted without a year.
func lastChance(target string) bool {
	words := strings.Fields(target)
	if len(words) <= lastChanceWords {
		return false
	}
	scratch := target
	removed := 0
	for _, word := range words {
		if next, ok := removeTerm(scratch, word); ok {
			scratch = next
			removed++
		}
	}
	return removed+1 >= len(words)
}

// includesTerms strips each term from candidate in order and reports
// whether all of them were found.
func includesTerms(candidate string, terms []string) bool {
	scratch := candidate
	for _, term := range terms {
		next, ok := removeTerm(scratch, term)
		if !ok {
			return false
		}
		scratch = next
	}
	return true
}

func removeTerm(s, term string) (string, bool) {
	for _, form := range []string{term, RemoveDiacritics(term), CollapseRepeats(term)} {
		if form != "" && strings.Contains(s, form) {
			return strings.Replace(s, form, "", 1), true
		}
	}
	folded := RemoveDiacritics(s)
	if plain := RemoveDiacritics(term); plain != "" && strings.Contains(folded, plain) {
		return strings.Replace(folded, plain, "", 1), true
	}
	return s, false
}

// fuzzyContains is substring containment that tolerates doubled letters
// and accents on either side.
func fuzzyContains(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	if strings.Contains(haystack, needle) {
		return true
	}
	if strings.Contains(CollapseRepeats(haystack), CollapseRepeats(needle)) {
		return true
	}
	return strings.Contains(RemoveDiacritics(haystack), RemoveDiacritics(needle))
}

// containsYear reports whether s mentions any of years or a neighbouring year.
func containsYear(s string, years []string) bool {
	for _, y := range years {
		y = strings.TrimSpace(y)
		if y == "" {
			continue
		}
		if strings.Contains(s, y) {
			return true
		}
		n, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		if strings.Contains(s, strconv.Itoa(n-1)) || strings.Contains(s, strconv.Itoa(n+1)) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return len([]rune(s))
}
