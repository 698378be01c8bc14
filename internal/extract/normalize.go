package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// currencyMarkers matches the currency tokens receipts in scope use.
const currencyMarkers = `RM|MYR|USD|SGD|\$|€|£`

// rewriteRule is one ordered normalization pass. Later rules assume the
// line-splitting of earlier rules has already happened, so the table order
// is load-bearing.
type rewriteRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

var rewriteRules = []rewriteRule{
	// "RM45.90" -> "RM 45.90"
	{
		name: "currency-digit-spacing",
		re:   regexp.MustCompile(`(?i)(` + currencyMarkers + `)(\d)`),
		repl: "${1} ${2}",
	},
	// "8.50Nasi" -> "8.50\nNasi": the recognizer ran a price and the next
	// line's description together.
	{
		name: "split-amount-then-letters",
		re:   regexp.MustCompile(`(\d+[.,]\d{2})([A-Za-z]{2,})`),
		repl: "${1}\n${2}",
	},
	// "Lemak8.50" -> "Lemak\n8.50"
	{
		name: "split-letters-then-amount",
		re:   regexp.MustCompile(`([A-Za-z]{2,})(\d+[.,]\d{2})`),
		repl: "${1}\n${2}",
	},
	// "45.90TOTAL" / "45.90 Total" glued after an amount gets its own line.
	{
		name: "split-glued-totals-keyword",
		re:   regexp.MustCompile(`(?i)(\d+[.,]\d{2})[ \t]*((?:grand[ \t]*)?total|amount[ \t]*due|balance[ \t]*due)`),
		repl: "${1}\n${2}",
	},
	// Canonicalize "GRAND TOTAL : RM45.90" and friends to "Total: RM 45.90"
	// so total extraction only needs one anchored shape.
	{
		name: "canonical-total-token",
		re:   regexp.MustCompile(`(?i)\b((?:grand[ \t]*)?total|amount[ \t]*due|balance[ \t]*due)[ \t]*:?[ \t]*(` + currencyMarkers + `)[ \t]*(\d+[.,]\d{2})`),
		repl: "Total: ${2} ${3}",
	},
}

// Normalize applies unicode NFC normalization followed by the ordered
// rewrite rules. It is pure and applied exactly once before any field
// extraction.
func Normalize(text string) string {
	s := norm.NFC.String(text)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, rule := range rewriteRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	return s
}

// nonEmptyLines splits text into trimmed, non-empty lines.
func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
