package extract

import (
	"regexp"
	"strings"
)

// nonItemKeyword rejects matched descriptions that are really summary or
// payment lines, not products.
var nonItemKeyword = regexp.MustCompile(`(?i)\b(sub\s*total|subtotal|total|tax|gst|sst|vat|discount|tip|change|cash|credit|debit|card|visa|mastercard|amex|service\s*charge|rounding|balance|invoice|receipt|thank)\b`)

// itemShape pairs a per-line pattern with the capture-group indexes of the
// description and the price. Shapes are tried in order per line; the first
// match wins.
type itemShape struct {
	re    *regexp.Regexp
	item  int
	price int
}

var itemShapes = []itemShape{
	// "Nasi Lemak 8.50" / "Nasi Lemak RM 8.50"
	{
		re:    regexp.MustCompile(`(?i)^([a-z][a-z .,'&/-]*?)\s+(?:` + currencyMarkers + `)?\s*(\d+[.,]\d{2})$`),
		item:  1,
		price: 2,
	},
	// "Teh Tarik 2 x 2.00 4.00" (quantity and unit price, total last)
	{
		re:    regexp.MustCompile(`(?i)^([a-z][a-z .,'&/-]*?)\s+\d{1,3}\s*[x@]\s*\d+[.,]\d{2}\s+(?:` + currencyMarkers + `)?\s*(\d+[.,]\d{2})$`),
		item:  1,
		price: 2,
	},
	// "2 x Teh Tarik 4.00"
	{
		re:    regexp.MustCompile(`(?i)^\d{1,3}\s*x?\s+([a-z][a-z .,'&/-]*?)\s+(?:` + currencyMarkers + `)?\s*(\d+[.,]\d{2})$`),
		item:  1,
		price: 2,
	},
	// generic description-amount pair separated by wide whitespace
	{
		re:    regexp.MustCompile(`^(.+?)\s{2,}(\d+[.,]\d{2})$`),
		item:  1,
		price: 2,
	},
}

// LineItems scans the text line by line for product/price pairs. A line
// whose matched description carries a non-item keyword produces nothing.
func LineItems(text string) []LineItem {
	var items []LineItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, shape := range itemShapes {
			m := shape.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			desc := strings.TrimSpace(m[shape.item])
			if nonItemKeyword.MatchString(desc) {
				break
			}
			items = append(items, LineItem{
				Item:  desc,
				Price: normalizeAmount(m[shape.price]),
			})
			break
		}
	}
	return items
}
