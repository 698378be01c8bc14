package extract

// LineItem is a single recognized product/price pair from the receipt body.
type LineItem struct {
	Item  string `json:"item"`
	Price string `json:"price"`
}

// Fields holds the structured values extracted from recognized receipt text.
// Absent fields are empty strings / empty slices, never errors: an
// extraction miss is a normal outcome.
type Fields struct {
	Merchant  string     `json:"merchant_name"`
	Address   string     `json:"merchant_address"`
	Phone     string     `json:"phone"`
	Date      string     `json:"transaction_date"`
	Time      string     `json:"transaction_time"`
	Total     string     `json:"total_amount"`
	LineItems []LineItem `json:"line_items"`
}

// Extract normalizes raw recognized text once and runs every field
// extractor over it. The extractors are independent and side-effect-free.
func Extract(raw string) Fields {
	text := Normalize(raw)
	return Fields{
		Merchant:  Merchant(text),
		Address:   Address(text),
		Phone:     Phone(text),
		Date:      Date(text),
		Time:      Time(text),
		Total:     Total(text),
		LineItems: LineItems(text),
	}
}
