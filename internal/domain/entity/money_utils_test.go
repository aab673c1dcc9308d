package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	testCases := []struct {
		amount   int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{1000, "10.00"},
		{1015, "10.15"},
		{-50, "-0.50"},
		{-123456, "-1234.56"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatMinorUnits(tc.amount))
		})
	}
}

func TestStoreBalanceFormatting(t *testing.T) {
	b := StoreBalance{Store: Store{ID: 1, Name: "LOJA"}, Balance: -2550}
	assert.Equal(t, "-25.50", b.FormattedBalance())
	assert.True(t, MinorUnitsToDecimal(1000).Equal(MinorUnitsToDecimal(1000)))
}
