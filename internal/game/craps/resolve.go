package craps

import (
	"github.com/shopspring/decimal"

	"casino-game-bot/internal/model"
)

// Verdict classifies what a roll did to a single bet.
type Verdict int

const (
	// VerdictContinue means the bet neither won nor lost and stays up.
	VerdictContinue Verdict = iota
	// VerdictOff means the bet is inactive this roll (place/hard on come-out)
	// and stays up untouched.
	VerdictOff
	// VerdictWin credits Returned plus Winnings to the player.
	VerdictWin
	// VerdictLose forfeits the principal deducted at placement time.
	VerdictLose
	// VerdictPush credits Returned only.
	VerdictPush
)

// Outcome describes the effect of one roll on one bet. Returned is the
// principal credited back on a win or push; for most wins that is the full
// stake, for a horn win only the winning quarter. Continues reports whether
// the bet stays in the ledger for the next roll.
type Outcome struct {
	Verdict   Verdict
	Winnings  decimal.Decimal
	Returned  decimal.Decimal
	Continues bool
}

// Credit is the total amount added to the player's balance for this outcome.
func (o Outcome) Credit() decimal.Decimal {
	switch o.Verdict {
	case VerdictWin, VerdictPush:
		return o.Returned.Add(o.Winnings)
	}
	return decimal.Zero
}

// Payout odds as winnings-per-unit-staked, excluding the returned principal.
var (
	oddsEven     = decimal.NewFromInt(1)
	oddsField2   = decimal.NewFromInt(2)
	oddsField12  = decimal.NewFromInt(3)
	oddsAnyCraps = decimal.NewFromInt(7)
	oddsAnySeven = decimal.NewFromInt(4)
	oddsAces     = decimal.NewFromInt(30) // two and twelve
	oddsAceDeuce = decimal.NewFromInt(15) // three and eleven
)

// placeOdds returns the place-bet payout ratio for a number.
func placeOdds(number int) decimal.Decimal {
	switch number {
	case 4, 10:
		return decimal.NewFromInt(9).Div(decimal.NewFromInt(5))
	case 5, 9:
		return decimal.NewFromInt(7).Div(decimal.NewFromInt(5))
	default: // 6, 8
		return decimal.NewFromInt(7).Div(decimal.NewFromInt(6))
	}
}

// hardOdds returns the hard-way payout ratio for a number.
func hardOdds(number int) decimal.Decimal {
	switch number {
	case 4, 10:
		return decimal.NewFromInt(7)
	default: // 6, 8
		return decimal.NewFromInt(9)
	}
}

// hornOdds returns the per-number odds a winning horn portion is paid at.
func hornOdds(sum int) decimal.Decimal {
	if sum == 2 || sum == 12 {
		return oddsAces
	}
	return oddsAceDeuce // 3 or 11
}

func win(amount, odds decimal.Decimal) Outcome {
	return Outcome{
		Verdict:  VerdictWin,
		Winnings: model.RoundCents(amount.Mul(odds)),
		Returned: amount,
	}
}

func lose() Outcome { return Outcome{Verdict: VerdictLose} }
func keep() Outcome { return Outcome{Verdict: VerdictContinue, Continues: true} }
func off() Outcome  { return Outcome{Verdict: VerdictOff, Continues: true} }

// Resolve evaluates a single bet against one roll given the table state.
// It implements the full per-bet rule table; the caller applies Credit to the
// balance and drops bets whose Continues flag is false.
func Resolve(b Bet, amount decimal.Decimal, r Roll, st *model.CrapsState) Outcome {
	sum := r.Sum()
	comeOut := st.Phase == model.PhaseComeOut

	switch b.Kind {
	case PassLine:
		if comeOut {
			switch {
			case sum == 7 || sum == 11:
				return win(amount, oddsEven)
			case sum == 2 || sum == 3 || sum == 12:
				return lose()
			default:
				return keep()
			}
		}
		switch {
		case sum == st.Point:
			return win(amount, oddsEven)
		case sum == 7:
			return lose()
		default:
			return keep()
		}

	case DontPass:
		if comeOut {
			switch {
			case sum == 2 || sum == 3:
				return win(amount, oddsEven)
			case sum == 7 || sum == 11:
				return lose()
			case sum == 12:
				// Push on 12: the stake comes back and the bet stays up,
				// matching the table's behavior rather than a plain push.
				return Outcome{Verdict: VerdictPush, Returned: amount, Continues: true}
			default:
				return keep()
			}
		}
		switch {
		case sum == 7:
			return win(amount, oddsEven)
		case sum == st.Point:
			return lose()
		default:
			return keep()
		}

	case Field:
		switch sum {
		case 2:
			return win(amount, oddsField2)
		case 12:
			return win(amount, oddsField12)
		case 3, 4, 9, 10, 11:
			return win(amount, oddsEven)
		default: // 5, 6, 7, 8
			return lose()
		}

	case Place:
		if comeOut {
			return off()
		}
		switch {
		case sum == b.Number:
			// Place bets stay working after a win.
			o := win(amount, placeOdds(b.Number))
			o.Continues = true
			return o
		case sum == 7:
			return lose()
		default:
			return keep()
		}

	case Hard:
		if comeOut {
			return off()
		}
		switch {
		case sum == 7:
			return lose()
		case sum == b.Number && r.Hard():
			return win(amount, hardOdds(b.Number))
		case sum == b.Number: // rolled the easy way
			return lose()
		default:
			return keep()
		}

	case AnyCraps:
		if sum == 2 || sum == 3 || sum == 12 {
			return win(amount, oddsAnyCraps)
		}
		return lose()

	case AnySeven:
		if sum == 7 {
			return win(amount, oddsAnySeven)
		}
		return lose()

	case Two:
		if sum == 2 {
			return win(amount, oddsAces)
		}
		return lose()

	case Three:
		if sum == 3 {
			return win(amount, oddsAceDeuce)
		}
		return lose()

	case Eleven:
		if sum == 11 {
			return win(amount, oddsAceDeuce)
		}
		return lose()

	case Twelve:
		if sum == 12 {
			return win(amount, oddsAces)
		}
		return lose()

	case Horn:
		// One quarter of the stake rides on each of 2, 3, 11 and 12; the
		// winning portion is paid at that number's odds, the rest forfeits.
		if sum == 2 || sum == 3 || sum == 11 || sum == 12 {
			portion := amount.Div(decimal.NewFromInt(4))
			return Outcome{
				Verdict:  VerdictWin,
				Winnings: model.RoundCents(portion.Mul(hornOdds(sum))),
				Returned: model.RoundCents(portion),
			}
		}
		return lose()
	}

	return lose()
}

// NextState applies the phase transition rule for a roll and returns the new
// table state plus whether anything changed.
func NextState(st *model.CrapsState, r Roll) (model.CrapsState, bool) {
	next := *st
	sum := r.Sum()

	if st.Phase == model.PhaseComeOut {
		if IsPointNumber(sum) {
			next.Phase = model.PhasePoint
			next.Point = sum
		}
	} else {
		if sum == st.Point || sum == 7 {
			next.Phase = model.PhaseComeOut
			next.Point = 0
		}
	}

	return next, next.Phase != st.Phase || next.Point != st.Point
}
