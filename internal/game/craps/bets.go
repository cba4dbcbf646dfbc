// Package craps implements the Craps dice rules: the bet catalog, the
// per-bet payout table and the roll resolution logic. The package is pure;
// persistence and chat formatting live in the service layer.
package craps

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"casino-game-bot/internal/model"
)

// Kind enumerates every supported Craps wager.
type Kind int

const (
	PassLine Kind = iota
	DontPass
	Field
	Place // with a number in {4,5,6,8,9,10}
	Hard  // with a number in {4,6,8,10}
	AnyCraps
	AnySeven
	Two
	Three
	Eleven
	Twelve
	Horn
)

// Bet is a parsed bet key: a kind plus, for numbered kinds, the target number.
type Bet struct {
	Kind   Kind
	Number int
}

// Errors returned by Parse and CheckAmount.
var (
	ErrUnknownBet   = errors.New("unknown craps bet")
	ErrHornMultiple = errors.New("horn bets must be a multiple of 4")
)

var placeNumbers = []int{4, 5, 6, 8, 9, 10}
var hardNumbers = []int{4, 6, 8, 10}

var simpleKeys = map[string]Kind{
	"pass_line": PassLine,
	"dont_pass": DontPass,
	"field":     Field,
	"any_craps": AnyCraps,
	"any_seven": AnySeven,
	"two":       Two,
	"three":     Three,
	"eleven":    Eleven,
	"twelve":    Twelve,
	"horn":      Horn,
}

// Parse turns a bet key such as "pass_line", "place_6" or "hard_8" into a Bet.
func Parse(key string) (Bet, error) {
	if kind, ok := simpleKeys[key]; ok {
		return Bet{Kind: kind}, nil
	}
	if rest, ok := strings.CutPrefix(key, "place_"); ok {
		if n, err := strconv.Atoi(rest); err == nil && contains(placeNumbers, n) {
			return Bet{Kind: Place, Number: n}, nil
		}
	}
	if rest, ok := strings.CutPrefix(key, "hard_"); ok {
		if n, err := strconv.Atoi(rest); err == nil && contains(hardNumbers, n) {
			return Bet{Kind: Hard, Number: n}, nil
		}
	}
	return Bet{}, fmt.Errorf("%w: %s", ErrUnknownBet, key)
}

// Key returns the canonical string form used in the wallet's bet ledger.
func (b Bet) Key() string {
	switch b.Kind {
	case Place:
		return fmt.Sprintf("place_%d", b.Number)
	case Hard:
		return fmt.Sprintf("hard_%d", b.Number)
	default:
		for key, kind := range simpleKeys {
			if kind == b.Kind {
				return key
			}
		}
		return "unknown"
	}
}

// Name returns the human-readable bet name for chat messages.
func (b Bet) Name() string {
	switch b.Kind {
	case Place:
		return fmt.Sprintf("Place %d", b.Number)
	case Hard:
		return fmt.Sprintf("Hard %d", b.Number)
	default:
		parts := strings.Split(b.Key(), "_")
		for i, p := range parts {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
		return strings.Join(parts, " ")
	}
}

// OneRoll reports whether the bet always resolves on the next roll.
func (b Bet) OneRoll() bool {
	switch b.Kind {
	case Field, AnyCraps, AnySeven, Two, Three, Eleven, Twelve, Horn:
		return true
	}
	return false
}

// LineBet reports whether the bet rides on the pass/don't-pass line.
func (b Bet) LineBet() bool {
	return b.Kind == PassLine || b.Kind == DontPass
}

// ValidKeys lists every accepted bet key, sorted, for error messages.
func ValidKeys() []string {
	keys := make([]string, 0, len(simpleKeys)+len(placeNumbers)+len(hardNumbers))
	for k := range simpleKeys {
		keys = append(keys, k)
	}
	for _, n := range placeNumbers {
		keys = append(keys, fmt.Sprintf("place_%d", n))
	}
	for _, n := range hardNumbers {
		keys = append(keys, fmt.Sprintf("hard_%d", n))
	}
	sort.Strings(keys)
	return keys
}

// CheckAmount validates kind-specific amount constraints. A horn bet splits
// into four equal portions, so it must be an exact multiple of 4.
func (b Bet) CheckAmount(amount decimal.Decimal) error {
	if b.Kind != Horn {
		return nil
	}
	four := decimal.NewFromInt(4)
	if amount.Mod(four).IsZero() {
		return nil
	}
	nearest := amount.Div(four).Round(0).Mul(four)
	if !nearest.IsPositive() {
		nearest = four
	}
	return fmt.Errorf("%w (try %s)", ErrHornMultiple, model.FormatMoney(nearest))
}

// AllowedInPhase reports whether the bet may be placed in the given phase.
// Line bets cannot go down once a point is established.
func (b Bet) AllowedInPhase(phase model.CrapsPhase) bool {
	if b.LineBet() && phase == model.PhasePoint {
		return false
	}
	return true
}

func contains(ns []int, n int) bool {
	for _, v := range ns {
		if v == n {
			return true
		}
	}
	return false
}
