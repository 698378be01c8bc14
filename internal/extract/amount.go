package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// totalPatterns are keyword-anchored total shapes in priority order. Each
// captures the two-decimal amount in group 1.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:grand\s*)?total\s*:?\s*(?:` + currencyMarkers + `)?\s*(\d+[.,]\d{2})`),
	regexp.MustCompile(`(?i)\bamount\s*due\s*:?\s*(?:` + currencyMarkers + `)?\s*(\d+[.,]\d{2})`),
	regexp.MustCompile(`(?i)\bbalance\s*due\s*:?\s*(?:` + currencyMarkers + `)?\s*(\d+[.,]\d{2})`),
}

var (
	currencyAmount = regexp.MustCompile(`(?i)(?:` + currencyMarkers + `)\s*(\d+[.,]\d{2})`)
	bareAmount     = regexp.MustCompile(`\b\d+[.,]\d{2}\b`)
)

// normalizeAmount canonicalizes the decimal separator to a dot.
func normalizeAmount(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// maxAmount returns the largest amount among candidates, or "".
func maxAmount(candidates []string) string {
	best := ""
	bestVal := 0.0
	for _, c := range candidates {
		n := normalizeAmount(c)
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			continue
		}
		if best == "" || v > bestVal {
			best, bestVal = n, v
		}
	}
	return best
}

// Total extracts the transaction total. Keyword-anchored patterns are tried
// first; failing those, the maximum currency-marked amount wins; failing
// that, the maximum bare two-decimal amount anywhere in the text.
func Total(text string) string {
	for _, re := range totalPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return normalizeAmount(m[1])
		}
	}

	var marked []string
	for _, m := range currencyAmount.FindAllStringSubmatch(text, -1) {
		marked = append(marked, m[1])
	}
	if best := maxAmount(marked); best != "" {
		return best
	}

	return maxAmount(bareAmount.FindAllString(text, -1))
}
