package roulette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"casino-game-bot/internal/model"
)

// Kind enumerates the supported roulette wagers.
type Kind int

const (
	Straight Kind = iota // a single number, including 0 and 00
	RedBet
	BlackBet
	EvenBet
	OddBet
	Low  // 1-18
	High // 19-36
	FirstDozen
	SecondDozen
	ThirdDozen
)

// Bet is a parsed roulette bet key. Pocket is only used for straight bets.
type Bet struct {
	Kind   Kind
	Pocket Pocket
}

// ErrUnknownBet is returned by Parse for keys outside the catalog.
var ErrUnknownBet = errors.New("unknown roulette bet")

var simpleKeys = map[string]Kind{
	"red":          RedBet,
	"black":        BlackBet,
	"even":         EvenBet,
	"odd":          OddBet,
	"low":          Low,
	"high":         High,
	"first_dozen":  FirstDozen,
	"second_dozen": SecondDozen,
	"third_dozen":  ThirdDozen,
}

// Parse turns a bet key such as "red" or "straight_17" into a Bet.
func Parse(key string) (Bet, error) {
	if kind, ok := simpleKeys[key]; ok {
		return Bet{Kind: kind}, nil
	}
	if rest, ok := strings.CutPrefix(key, "straight_"); ok {
		if p, ok := ParsePocket(rest); ok {
			return Bet{Kind: Straight, Pocket: p}, nil
		}
	}
	return Bet{}, fmt.Errorf("%w: %s", ErrUnknownBet, key)
}

// Key returns the canonical ledger key for the bet.
func (b Bet) Key() string {
	if b.Kind == Straight {
		return "straight_" + b.Pocket.String()
	}
	for key, kind := range simpleKeys {
		if kind == b.Kind {
			return key
		}
	}
	return "unknown"
}

// Name returns the human-readable bet name for chat messages.
func (b Bet) Name() string {
	switch b.Kind {
	case Straight:
		return "Straight " + b.Pocket.String()
	case Low:
		return "Low (1-18)"
	case High:
		return "High (19-36)"
	default:
		parts := strings.Split(b.Key(), "_")
		for i, p := range parts {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
		return strings.Join(parts, " ")
	}
}

// ValidKeys lists every accepted bet key for error messages. Straight bets
// are summarized as a pattern rather than all 38 variants.
func ValidKeys() []string {
	return []string{
		"straight_<0|00|1-36>", "red", "black", "even", "odd",
		"low", "high", "first_dozen", "second_dozen", "third_dozen",
	}
}

// payout returns the winnings-per-unit multiplier for the bet kind.
func (b Bet) payout() decimal.Decimal {
	switch b.Kind {
	case Straight:
		return decimal.NewFromInt(35)
	case FirstDozen, SecondDozen, ThirdDozen:
		return decimal.NewFromInt(2)
	default:
		return decimal.NewFromInt(1)
	}
}

// Wins reports whether the bet is satisfied by the drawn pocket.
// 0 and 00 only ever satisfy their own straight bets.
func (b Bet) Wins(result Pocket) bool {
	switch b.Kind {
	case Straight:
		return b.Pocket == result
	}
	if result.Zero() {
		return false
	}
	n := int(result)
	switch b.Kind {
	case RedBet:
		return result.Color() == Red
	case BlackBet:
		return result.Color() == Black
	case EvenBet:
		return n%2 == 0
	case OddBet:
		return n%2 == 1
	case Low:
		return n >= 1 && n <= 18
	case High:
		return n >= 19 && n <= 36
	case FirstDozen:
		return n >= 1 && n <= 12
	case SecondDozen:
		return n >= 13 && n <= 24
	case ThirdDozen:
		return n >= 25 && n <= 36
	}
	return false
}

// Winnings returns the payout (excluding the returned principal) for a
// winning bet of the given stake, or zero when the bet loses.
func (b Bet) Winnings(result Pocket, amount decimal.Decimal) decimal.Decimal {
	if !b.Wins(result) {
		return decimal.Zero
	}
	return model.RoundCents(amount.Mul(b.payout()))
}
