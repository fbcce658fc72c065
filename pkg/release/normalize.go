package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanNumeralRegex matches Roman numerals II-IX when preceded by a space (not at start of string).
// Does NOT match standalone "I" to avoid false positives like "I Robot".
// Does NOT match standalone "X" to avoid false positives like "SPY x FAMILY", "American History X".
// Does NOT match at start of string to avoid false positives like "VII Days".
// Case-insensitive to work with lowercased input from CleanTitle.
var romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

// NormalizeRomanNumerals converts Roman numerals (II-IX) to Arabic numbers.
// Does not convert standalone "I" to avoid false positives.
// Does not convert Roman numerals at the start of the string.
func NormalizeRomanNumerals(s string) string {
	return romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		roman := strings.TrimSpace(match)
		if arabic, ok := romanToArabic[strings.ToUpper(roman)]; ok {
			return " " + arabic
		}
		return match
	})
}

// CleanTitle normalizes a title for grouping and similarity purposes.
// Removes articles, punctuation, accents, normalizes whitespace, and converts Roman numerals.
func CleanTitle(title string) string {
	s := strings.ToLower(title)

	// Convert Roman numerals to Arabic numbers (must be before accent removal)
	s = NormalizeRomanNumerals(s)
	s = RemoveDiacritics(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Split on colon to handle subtitles (e.g., "Léon: The Professional")
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	return collapseSpaces(keepLettersDigits(s, ' '))
}

// SearchTitle prepares a metadata title for use as a query and match target.
// Lowercases, folds accents, turns "&" into "and", drops apostrophes and
// replaces every other symbol with a space. Articles are kept because
// release names keep them.
func SearchTitle(title string) string {
	s := strings.ToLower(title)
	s = RemoveDiacritics(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "")
	return collapseSpaces(keepLettersDigits(s, ' '))
}

// LiteTitle lowercases and collapses whitespace but keeps symbols.
func LiteTitle(title string) string {
	return collapseSpaces(strings.ToLower(title))
}

// RemoveDiacritics strips combining marks, so "é" becomes "e".
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// CollapseRepeats squeezes runs of the same character into one,
// so "exampleemoviee" becomes "examplemovie".
func CollapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Naked keeps only letters and digits.
func Naked(s string) string {
	return keepLettersDigits(s, -1)
}

// StripSpaces removes all whitespace.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeSearchQuery prepares query text for Torznab and Prowlarr, which
// treat a bare "&" badly. "&" becomes "and" and whitespace is collapsed;
// case, quotes and other punctuation are kept.
func NormalizeSearchQuery(query string) string {
	return collapseSpaces(strings.ReplaceAll(query, "&", " and "))
}

func keepLettersDigits(s string, replacement rune) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		if replacement >= 0 && unicode.IsSpace(r) {
			return ' '
		}
		return replacement
	}, s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
