package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal_KeywordAnchored(t *testing.T) {
	text := "Nasi Lemak 8.50\nTeh Tarik 2.50\nTotal: RM 45.90"
	assert.Equal(t, "45.90", Total(text))
}

func TestTotal_KeywordBeatsLargerAmount(t *testing.T) {
	// The anchored keyword wins even when a larger amount appears elsewhere.
	text := "Deposit 99.00\nTotal: RM 45.90"
	assert.Equal(t, "45.90", Total(text))
}

func TestTotal_GrandTotalAndDueVariants(t *testing.T) {
	assert.Equal(t, "45.90", Total("GRAND TOTAL 45.90"))
	assert.Equal(t, "10.00", Total("Amount Due: $ 10.00"))
	assert.Equal(t, "7.25", Total("Balance Due 7.25"))
}

func TestTotal_PlainAndGrandTotalShareOneTier(t *testing.T) {
	// Plain and grand totals are a single keyword tier; the first occurrence
	// wins regardless of which variant it is.
	assert.Equal(t, "45.90", Total("Total 45.90\nGrand Total 99.00"))
	assert.Equal(t, "99.00", Total("Grand Total 99.00\nTotal 45.90"))
	// Both keyword variants outrank the amount-due shapes.
	assert.Equal(t, "45.90", Total("Amount Due 99.00\nGrand Total 45.90"))
}

func TestTotal_MaxCurrencyMarkedFallback(t *testing.T) {
	text := "RM 12.00 something\nRM 45.90 other"
	assert.Equal(t, "45.90", Total(text))
}

func TestTotal_MaxBareAmountFallback(t *testing.T) {
	text := "item one 12.00\nitem two 45.90"
	assert.Equal(t, "45.90", Total(text))
}

func TestTotal_CommaDecimalSeparator(t *testing.T) {
	assert.Equal(t, "45.90", Total("Total: RM 45,90"))
}

func TestTotal_NoAmounts(t *testing.T) {
	assert.Empty(t, Total("no numbers here"))
}

func TestMaxAmount(t *testing.T) {
	assert.Equal(t, "45.90", maxAmount([]string{"12.00", "45,90", "3.10"}))
	assert.Empty(t, maxAmount(nil))
}
