package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems_DescriptionThenAmount(t *testing.T) {
	items := LineItems("Nasi Lemak 8.50")
	require.Len(t, items, 1)
	assert.Equal(t, LineItem{Item: "Nasi Lemak", Price: "8.50"}, items[0])
}

func TestLineItems_CurrencyMarkedPrice(t *testing.T) {
	items := LineItems("Teh Tarik RM 2.50")
	require.Len(t, items, 1)
	assert.Equal(t, LineItem{Item: "Teh Tarik", Price: "2.50"}, items[0])
}

func TestLineItems_QuantityWithUnitPrice(t *testing.T) {
	items := LineItems("Teh Tarik 2 x 2.00 4.00")
	require.Len(t, items, 1)
	assert.Equal(t, LineItem{Item: "Teh Tarik", Price: "4.00"}, items[0])
}

func TestLineItems_QuantityPrefixed(t *testing.T) {
	items := LineItems("2 x Teh Tarik 4.00")
	require.Len(t, items, 1)
	assert.Equal(t, LineItem{Item: "Teh Tarik", Price: "4.00"}, items[0])
}

func TestLineItems_BlacklistedDescriptions(t *testing.T) {
	for _, line := range []string{
		"SUBTOTAL 8.50",
		"Total 11.00",
		"Service Charge 1.10",
		"VISA 11.00",
		"Change 5.00",
	} {
		assert.Empty(t, LineItems(line), "line %q should yield no item", line)
	}
}

func TestLineItems_MultiLineReceipt(t *testing.T) {
	text := "Nasi Lemak 8.50\nTeh Tarik 2.50\nSUBTOTAL 11.00\nTotal: RM 11.00"
	items := LineItems(text)
	require.Len(t, items, 2)
	assert.Equal(t, "Nasi Lemak", items[0].Item)
	assert.Equal(t, "Teh Tarik", items[1].Item)
}

func TestLineItems_CommaPriceNormalized(t *testing.T) {
	items := LineItems("Kopi O 1,80")
	require.Len(t, items, 1)
	assert.Equal(t, "1.80", items[0].Price)
}

func TestLineItems_NoMatches(t *testing.T) {
	assert.Empty(t, LineItems("just some words\nand more words"))
}
