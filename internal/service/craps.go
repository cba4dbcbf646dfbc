package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"casino-game-bot/internal/game/craps"
	"casino-game-bot/internal/model"
	"casino-game-bot/internal/repository"
)

// ResolveCrapsRound rolls the shared dice and settles every open Craps bet
// in the conversation. With no open bets it refuses to roll and leaves the
// table phase untouched. All wallet and state writes for the round commit
// in one transaction.
func (s *CasinoService) ResolveCrapsRound(ctx context.Context, chatID string) (string, error) {
	return s.resolveCrapsRound(ctx, chatID, s.rollDice)
}

// ResolveCrapsRoundWithRoll settles a round using a fixed roll. It exists
// for replaying recorded rounds and for deterministic tests.
func (s *CasinoService) ResolveCrapsRoundWithRoll(ctx context.Context, chatID string, roll craps.Roll) (string, error) {
	return s.resolveCrapsRound(ctx, chatID, func() craps.Roll { return roll })
}

func (s *CasinoService) resolveCrapsRound(ctx context.Context, chatID string, roller func() craps.Roll) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		return s.ledger.InTx(ctx, func(led repository.Ledger) error {
			wallets, err := led.WalletsWithOpenBets(ctx, chatID, model.GameCraps)
			if err != nil {
				return err
			}
			if len(wallets) == 0 {
				msg = "🎲 No bets on the table. Place a bet before rolling."
				return nil
			}

			roll := roller()
			sum := roll.Sum()
			st, err := led.GetCrapsState(ctx, chatID)
			if err != nil {
				return err
			}

			lines := []string{fmt.Sprintf("🎲 Rolled %d + %d = %d.", roll.Die1, roll.Die2, sum)}

			for _, pid := range sortedPlayerIDs(wallets) {
				w := wallets[pid]
				bets := w.Bets(model.GameCraps)
				kept := make(map[string]decimal.Decimal, len(bets))

				for _, key := range sortedKeys(bets) {
					amount := bets[key]
					bet, err := craps.Parse(key)
					if err != nil {
						// A corrupted ledger key; drop it and return the stake.
						log.Warn().Str("chat_id", chatID).Str("player_id", pid).
							Str("bet", key).Msg("unknown bet key in ledger, refunding")
						w.Balance = w.Balance.Add(amount)
						continue
					}

					o := craps.Resolve(bet, amount, roll, st)
					w.Balance = w.Balance.Add(o.Credit())
					if o.Continues {
						kept[key] = amount
					}
					lines = append(lines, verdictLine(w.DisplayName, bet.Name(), amount, o))
				}

				w.SetBets(model.GameCraps, kept)
				if err := led.SaveWallet(ctx, w); err != nil {
					return err
				}
				lines = append(lines, fmt.Sprintf("💰 %s balance: %s", w.DisplayName, model.FormatMoney(w.Balance)))
			}

			next, changed := craps.NextState(st, roll)
			if changed {
				if err := led.SaveCrapsState(ctx, &next); err != nil {
					return err
				}
			}
			if line := transitionLine(st, &next, sum); line != "" {
				lines = append(lines, line)
			}

			msg = strings.Join(lines, "\n")
			return nil
		})
	})
	return msg, err
}

func verdictLine(name, betName string, amount decimal.Decimal, o craps.Outcome) string {
	switch o.Verdict {
	case craps.VerdictWin:
		return fmt.Sprintf("✅ %s: %s wins %s!", name, betName, model.FormatMoney(o.Winnings))
	case craps.VerdictLose:
		return fmt.Sprintf("❌ %s: %s loses %s.", name, betName, model.FormatMoney(amount))
	case craps.VerdictPush:
		return fmt.Sprintf("🔄 %s: %s pushes, %s returned.", name, betName, model.FormatMoney(o.Returned))
	case craps.VerdictOff:
		return fmt.Sprintf("⏸️ %s: %s is off for the come out roll.", name, betName)
	default:
		return fmt.Sprintf("⏳ %s: %s is still working.", name, betName)
	}
}

func transitionLine(before, after *model.CrapsState, sum int) string {
	switch {
	case before.Phase == model.PhaseComeOut && after.Phase == model.PhasePoint:
		return fmt.Sprintf("🎯 Point is set to %d.", after.Point)
	case before.Phase == model.PhasePoint && after.Phase == model.PhaseComeOut && sum == 7:
		return "💥 Seven out! New come out roll."
	case before.Phase == model.PhasePoint && after.Phase == model.PhaseComeOut:
		return fmt.Sprintf("🎉 Point %d hit! New come out roll.", before.Point)
	}
	return ""
}
