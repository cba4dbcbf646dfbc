package craps

import "math/rand"

// Roll is the outcome of throwing two dice.
type Roll struct {
	Die1 int
	Die2 int
}

// Sum returns the combined value of both dice.
func (r Roll) Sum() int {
	return r.Die1 + r.Die2
}

// Hard reports whether the roll came the hard way (doubles).
func (r Roll) Hard() bool {
	return r.Die1 == r.Die2
}

// Valid reports whether both dice are in [1,6].
func (r Roll) Valid() bool {
	return r.Die1 >= 1 && r.Die1 <= 6 && r.Die2 >= 1 && r.Die2 <= 6
}

// RollDice throws two independent dice using the supplied source.
func RollDice(rng *rand.Rand) Roll {
	return Roll{Die1: rng.Intn(6) + 1, Die2: rng.Intn(6) + 1}
}

// IsPointNumber reports whether a come-out roll of sum establishes a point.
func IsPointNumber(sum int) bool {
	switch sum {
	case 4, 5, 6, 8, 9, 10:
		return true
	}
	return false
}
