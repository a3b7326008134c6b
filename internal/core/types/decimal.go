// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Quantity represents a stock quantity with full precision.
// Quantities and prices share the same fixed-precision representation so
// ledger sums never drift from the cached product quantity.
type Quantity = decimal.Decimal

// MoneyScale is the number of decimal places stored for prices.
const MoneyScale int32 = 2

// DefaultQuantityScale is the number of decimal places accepted for
// quantities unless overridden by configuration.
const DefaultQuantityScale int32 = 2

// Must parses a decimal from a string, panics on error.
// Use only for constants and tests.
func Must(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns the zero decimal value.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// HasScaleAtMost reports whether d can be represented with at most the given
// number of decimal places without rounding.
func HasScaleAtMost(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Truncate(scale))
}

// IsValidQuantity reports whether d is a positive quantity within scale.
func IsValidQuantity(d decimal.Decimal, scale int32) bool {
	return d.IsPositive() && HasScaleAtMost(d, scale)
}

// IsValidPrice reports whether d is a positive price with at most two
// decimal places.
func IsValidPrice(d decimal.Decimal) bool {
	return d.IsPositive() && HasScaleAtMost(d, MoneyScale)
}
