package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress_HouseNumberShape(t *testing.T) {
	text := "RESTORAN MAKMUR\n12, Jalan Bukit Bintang\nTel: 03-21481234"
	assert.Equal(t, "12, Jalan Bukit Bintang", Address(text))
}

func TestAddress_NoPrefixedNumber(t *testing.T) {
	text := "No. 45A, Persiaran Gurney\nGeorgetown"
	assert.Equal(t, "No. 45A, Persiaran Gurney", Address(text))
}

func TestAddress_NoMarkerWithoutComma(t *testing.T) {
	text := "SUNWAY PHARMACY\nNo. 5 Big Plaza\nSelangor"
	assert.Equal(t, "No. 5 Big Plaza", Address(text))
}

func TestAddress_BareNumberStillNeedsComma(t *testing.T) {
	// Without a comma or a "No." marker a leading number is not enough;
	// date and quantity lines must not pass as addresses.
	assert.Equal(t, "", Address("25 Dec 2024 12:45 PM"))
	assert.Equal(t, "", Address("2 x Teh Tarik 4.00"))
}

func TestAddress_StreetKeywordFallback(t *testing.T) {
	text := "Some Shop\nLorong Haji Taib\nKuala Lumpur"
	assert.Equal(t, "Lorong Haji Taib", Address(text))
}

func TestAddress_EnglishStreetKeyword(t *testing.T) {
	text := "Corner Cafe\nOrchard Road near the park"
	assert.Equal(t, "Orchard Road near the park", Address(text))
}

func TestAddress_None(t *testing.T) {
	assert.Equal(t, "", Address("RESTORAN MAKMUR\nTotal: RM 11.00"))
}

func TestPhone_Shapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "international", text: "Call +60 3 2148 1234 now", want: "+60 3 2148 1234"},
		{name: "grouped local", text: "Tel: 03-2148 1234", want: "03-2148 1234"},
		{name: "parenthesized area code", text: "Phone (603) 2148-1234", want: "(603) 2148-1234"},
		{name: "generic dashed", text: "Fax 603-21481234", want: "603-21481234"},
		{name: "none", text: "no numbers here", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.text))
		})
	}
}
