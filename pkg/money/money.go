// Package money provides small helpers for currency arithmetic on
// shopspring decimals with proper financial precision.
package money

import (
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// CentEpsilon is the threshold below which a balance counts as cleared.
var CentEpsilon = decimal.NewFromFloat(0.01)

// Round rounds an amount to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Monthly converts an annual amount or rate to monthly.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders an amount as a dollar string with two decimals.
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
