// Package roulette implements the American roulette rules: the 38-pocket
// wheel, standard coloring and the bet payout table. Like the craps package
// it is pure; the service layer owns wallets and persistence.
package roulette

import (
	"math/rand"
	"strconv"
)

// Pocket is one of the 38 wheel positions: 0, 00 and 1-36.
// The double zero is represented by the out-of-band value 37.
type Pocket int

// DoubleZero is the 00 pocket.
const DoubleZero Pocket = 37

// Color of a pocket.
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Valid reports whether p is an actual wheel position.
func (p Pocket) Valid() bool {
	return p >= 0 && p <= DoubleZero
}

// Zero reports whether the pocket is 0 or 00, which never satisfy
// color, parity, half or dozen bets.
func (p Pocket) Zero() bool {
	return p == 0 || p == DoubleZero
}

// Color returns the standard color of the pocket.
func (p Pocket) Color() Color {
	switch {
	case p.Zero():
		return Green
	case redNumbers[int(p)]:
		return Red
	default:
		return Black
	}
}

// String renders the pocket as shown on the table, with "00" for the
// double zero.
func (p Pocket) String() string {
	if p == DoubleZero {
		return "00"
	}
	return strconv.Itoa(int(p))
}

// ParsePocket parses "0", "00" or "1".."36" into a Pocket.
func ParsePocket(s string) (Pocket, bool) {
	if s == "00" {
		return DoubleZero, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 36 {
		return 0, false
	}
	return Pocket(n), true
}

// Spin draws one uniformly random pocket from the 38 positions.
func Spin(rng *rand.Rand) Pocket {
	return Pocket(rng.Intn(38))
}
