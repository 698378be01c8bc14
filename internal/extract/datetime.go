package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

const monthNames = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

// expandYear prefixes two-digit years with "20".
func expandYear(y string) int {
	if len(y) == 2 {
		y = "20" + y
	}
	n, _ := strconv.Atoi(y)
	return n
}

// datePattern pairs a regex with a handler that resolves the captured
// groups into year/month/day. Patterns are tried in order; the first
// pattern whose handler accepts its match wins.
type datePattern struct {
	re    *regexp.Regexp
	build func(m []string) (year, month, day int, ok bool)
}

var datePatterns = []datePattern{
	// YYYY-MM-DD-like
	{
		re: regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\b`),
		build: func(m []string) (int, int, int, bool) {
			y, _ := strconv.Atoi(m[1])
			mo, _ := strconv.Atoi(m[2])
			d, _ := strconv.Atoi(m[3])
			return y, mo, d, true
		},
	},
	// DD-MM-YYYY-like; when the first group fits a month it is treated as
	// month-first. This is a heuristic, not a guarantee.
	{
		re: regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})\b`),
		build: func(m []string) (int, int, int, bool) {
			a, _ := strconv.Atoi(m[1])
			b, _ := strconv.Atoi(m[2])
			y := expandYear(m[3])
			if a > 12 {
				return y, b, a, true
			}
			return y, a, b, true
		},
	},
	// "25 Dec 2024" (day first)
	{
		re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthNames + `)[a-z]*\.?,?\s+(\d{2,4})\b`),
		build: func(m []string) (int, int, int, bool) {
			d, _ := strconv.Atoi(m[1])
			mo := monthIndex[strings.ToLower(m[2])]
			return expandYear(m[3]), mo, d, true
		},
	},
	// "Dec 25, 2024" (month first)
	{
		re: regexp.MustCompile(`(?i)\b(` + monthNames + `)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{2,4})\b`),
		build: func(m []string) (int, int, int, bool) {
			mo := monthIndex[strings.ToLower(m[1])]
			d, _ := strconv.Atoi(m[2])
			return expandYear(m[3]), mo, d, true
		},
	},
}

// Date returns the first recognizable transaction date in the text,
// normalized to YYYY-MM-DD, or "". Normalization is idempotent: an input
// already containing a YYYY-MM-DD date yields that date unchanged.
func Date(text string) string {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		y, mo, d, ok := p.build(m)
		if !ok || mo < 1 || mo > 12 || d < 1 || d > 31 {
			continue
		}
		return fmt.Sprintf("%04d-%02d-%02d", y, mo, d)
	}
	return ""
}

// timePatterns are tried in order; group 1 captures the time token. The
// leading and trailing guards keep a shorter shape from matching inside a
// longer one (e.g. H:MM inside H:MM:SS).
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^:\d])(\d{1,2}:\d{2}\s*[AaPp][Mm])\b`),
	regexp.MustCompile(`(?:^|[^:\d])(\d{1,2}:\d{2}:\d{2}\s*[AaPp][Mm])\b`),
	regexp.MustCompile(`(?:^|[^:\d])(\d{1,2}:\d{2}:\d{2})(?:[^:\d]|$)`),
	regexp.MustCompile(`(?:^|[^:\d])(\d{1,2}:\d{2})(?:[^:\d]|$)`),
	regexp.MustCompile(`\b(\d{1,2}\s*[AaPp][Mm])\b`),
}

// Time returns the first time-shaped token in the text, or "".
func Time(text string) string {
	for _, re := range timePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
