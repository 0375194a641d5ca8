package utils

import (
	"github.com/shopspring/decimal"
)

// FormatEuro formats an amount with two decimal places and the euro sign.
// Example: amount 12.3456 returns "12.35 €"
func FormatEuro(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2) + " €"
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
