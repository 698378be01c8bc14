package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerchant_AllUpperHeaderWins(t *testing.T) {
	text := "Welcome\nRESTORAN MAKMUR\n12, Jalan Bukit Bintang\nTotal: RM 11.00"
	assert.Equal(t, "RESTORAN MAKMUR", Merchant(text))
}

func TestMerchant_SkipsAddressAndStructuralLines(t *testing.T) {
	text := "Receipt\n12, Jalan Bukit Bintang\nKedai Kopi Ali\nTotal: RM 5.00"
	assert.Equal(t, "Kedai Kopi Ali", Merchant(text))
}

func TestMerchant_SkipsLinesWithDigitsOrCurrency(t *testing.T) {
	text := "Tel 03-12345678\nRM Stall\nMakan Place\nsomething else"
	assert.Equal(t, "Makan Place", Merchant(text))
}

func TestMerchant_FirstLineFallback(t *testing.T) {
	// Every scanned line is disqualified, so the first line comes back.
	text := "Receipt #4521\nInvoice copy\nTotal: RM 9.00"
	assert.Equal(t, "Receipt #4521", Merchant(text))
}

func TestMerchant_CandidateBeyondThirdLineRejected(t *testing.T) {
	// The only qualifying line sits at index 3, past the acceptance window.
	text := "Receipt\nInvoice\nTotal 1.00\nMixed Case Shop\nTax 0.00"
	assert.Equal(t, "Receipt", Merchant(text))
}

func TestMerchant_EmptyText(t *testing.T) {
	assert.Equal(t, "", Merchant(""))
	assert.Equal(t, "", Merchant("\n\n  \n"))
}
