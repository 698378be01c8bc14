package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CurrencyDigitSpacing(t *testing.T) {
	assert.Equal(t, "RM 45.90", Normalize("RM45.90"))
	assert.Equal(t, "$ 12.00", Normalize("$12.00"))
}

func TestNormalize_SplitsAmountGluedToLetters(t *testing.T) {
	got := Normalize("8.50Nasi Lemak")
	assert.Contains(t, got, "8.50\nNasi Lemak")
}

func TestNormalize_SplitsLettersGluedToAmount(t *testing.T) {
	got := Normalize("Lemak8.50")
	assert.Contains(t, got, "Lemak\n8.50")
}

func TestNormalize_SplitsGluedTotalsKeyword(t *testing.T) {
	got := Normalize("11.00TOTAL")
	assert.Contains(t, got, "11.00\nTOTAL")
}

func TestNormalize_CanonicalTotalToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain", "Total: RM 45.90"},
		{"no colon", "TOTAL RM45.90"},
		{"grand total", "GRAND TOTAL : RM 45.90"},
		{"amount due", "Amount Due RM 45.90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Normalize(tt.in), "Total: RM 45.90")
		})
	}
}

func TestNormalize_DoesNotCanonicalizeSubtotal(t *testing.T) {
	got := Normalize("Subtotal: RM 9.00")
	assert.NotContains(t, got, "Total: RM 9.00")
}

func TestNormalize_PureAndRepeatable(t *testing.T) {
	in := "RM45.90TOTAL glued"
	first := Normalize(in)
	assert.Equal(t, first, Normalize(first))
}

func TestNonEmptyLines(t *testing.T) {
	lines := nonEmptyLines("a\n\n  \nb\n c ")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}
