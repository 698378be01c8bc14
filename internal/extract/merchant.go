package extract

import (
	"regexp"
	"strings"
)

const merchantScanLines = 6

var (
	// structuralKeyword matches lines that belong to the receipt's
	// scaffolding rather than its header.
	structuralKeyword = regexp.MustCompile(`(?i)\b(receipt|invoice|subtotal|total|balance|change|tax|summary)\b`)
	digitOrCurrency   = regexp.MustCompile(`(?i)[0-9]|` + currencyMarkers)
	// addressShaped matches street/lot/unit-type tokens, English and common
	// Malay abbreviations.
	addressShaped = regexp.MustCompile(`(?i)\b(jalan|jln|lorong|lrg|taman|tmn|persiaran|lebuh|kampung|kg|street|st|road|rd|avenue|ave|lane|ln|lot|unit|block|blk|floor|level)\b`)
)

func isAllUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

// Merchant scans the first few non-empty lines for the merchant name. Lines
// with structural keywords, digits, currency markers, or an address shape
// are skipped. A fully-uppercase line wins outright; otherwise the first
// qualifying line within the first three is accepted. If nothing qualifies,
// the very first non-empty line is returned as a last resort.
func Merchant(text string) string {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return ""
	}

	limit := min(merchantScanLines, len(lines))
	candidate := ""
	candidateIdx := -1
	for i := range limit {
		l := lines[i]
		if structuralKeyword.MatchString(l) || digitOrCurrency.MatchString(l) || addressShaped.MatchString(l) {
			continue
		}
		if isAllUpper(l) {
			return l
		}
		if candidateIdx == -1 {
			candidate, candidateIdx = l, i
		}
	}
	if candidateIdx >= 0 && candidateIdx < 3 {
		return candidate
	}
	return lines[0]
}
