package extract

import (
	"regexp"
	"strings"
)

// addressPatterns are tried in order; the first match wins. The first shape
// is a leading house number followed by street text; the comma after the
// number is only optional behind an explicit "No." marker, otherwise date
// and quantity lines would match too. The second shape falls back to any
// line carrying a street-type keyword (English or Malay).
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?mi)^\s*(?:no\.?\s*\d{1,5}[a-z]?\s*,?|\d{1,5}[a-z]?\s*,)\s*[a-z][^\n]{3,}$`),
	regexp.MustCompile(`(?mi)^[^\n]*\b(?:jalan|jln|lorong|lrg|taman|tmn|persiaran|lebuh|street|road|rd|avenue|ave|lane)\b[^\n]*$`),
}

// Address returns the first address-shaped line in the text, or "".
func Address(text string) string {
	for _, re := range addressPatterns {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// phonePatterns are tried in order: international, grouped-digit,
// parenthesized area code, then a generic local-number shape.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[-. ]?\d{1,3}[-. ]?\d{3,4}[-. ]?\d{3,4}`),
	regexp.MustCompile(`\b0\d{1,2}[-. ]\d{3,4}[-. ]?\d{3,4}\b`),
	regexp.MustCompile(`\(\d{2,3}\)[-. ]?\d{3,4}[-. ]?\d{3,4}`),
	regexp.MustCompile(`\b\d{2,3}-\d{6,8}\b`),
}

// Phone returns the first phone-shaped token in the text, or "".
func Phone(text string) string {
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}
