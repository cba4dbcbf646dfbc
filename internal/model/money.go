package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultBalance is the starting balance every wallet is created with.
var DefaultBalance = decimal.RequireFromString("100.00")

// Money parsing errors.
var (
	ErrBadAmount         = errors.New("invalid amount")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountTooSmall    = errors.New("amount rounds to zero")
)

// ParseAmount parses a user-supplied currency amount into a decimal rounded
// to cents (round half up). Zero, negative and unparsable inputs are
// rejected; inputs that round down to zero cents are rejected too.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}
	d = RoundCents(d)
	if d.IsZero() {
		return decimal.Zero, ErrAmountTooSmall
	}
	return d, nil
}

// RoundCents rounds a decimal to two places, half away from zero.
// All balances and payouts pass through here before persisting.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount the way chat messages show currency.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
