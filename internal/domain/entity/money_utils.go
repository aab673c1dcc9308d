package entity

import (
	"github.com/shopspring/decimal"
)

// MinorUnitDecimalPlaces is the number of decimal places of the currency minor unit
const MinorUnitDecimalPlaces = 2

// FormatMinorUnits renders an amount in minor units as a fixed two-decimal string
// For example:
// - 1015 becomes "10.15"
// - -50 becomes "-0.50"
func FormatMinorUnits(amount int64) string {
	return MinorUnitsToDecimal(amount).StringFixed(MinorUnitDecimalPlaces)
}

// MinorUnitsToDecimal converts an amount in minor units to currency units
func MinorUnitsToDecimal(amount int64) decimal.Decimal {
	return decimal.New(amount, -MinorUnitDecimalPlaces)
}
