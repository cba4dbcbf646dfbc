package service

import (
	"context"
	"fmt"
	"strings"

	"casino-game-bot/internal/game/roulette"
	"casino-game-bot/internal/model"
	"casino-game-bot/internal/repository"
)

// ResolveRouletteRound spins the wheel and settles every open Roulette bet
// in the conversation. Winning bets are credited with their stake plus
// winnings; every bet, winning or losing, is cleared after the spin.
func (s *CasinoService) ResolveRouletteRound(ctx context.Context, chatID string) (string, error) {
	return s.resolveRouletteRound(ctx, chatID, s.spinWheel)
}

// ResolveRouletteRoundWithPocket settles a round using a fixed result. It
// exists for replaying recorded rounds and for deterministic tests.
func (s *CasinoService) ResolveRouletteRoundWithPocket(ctx context.Context, chatID string, p roulette.Pocket) (string, error) {
	return s.resolveRouletteRound(ctx, chatID, func() roulette.Pocket { return p })
}

func (s *CasinoService) resolveRouletteRound(ctx context.Context, chatID string, spinner func() roulette.Pocket) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		return s.ledger.InTx(ctx, func(led repository.Ledger) error {
			wallets, err := led.WalletsWithOpenBets(ctx, chatID, model.GameRoulette)
			if err != nil {
				return err
			}
			if len(wallets) == 0 {
				msg = "🎡 No bets on the table. Place a bet before spinning."
				return nil
			}

			result := spinner()
			lines := []string{fmt.Sprintf("🎡 The ball lands on... %s (%s)!", result, result.Color())}
			anyWinner := false

			for _, pid := range sortedPlayerIDs(wallets) {
				w := wallets[pid]
				bets := w.Bets(model.GameRoulette)

				for _, key := range sortedKeys(bets) {
					amount := bets[key]
					bet, parseErr := roulette.Parse(key)
					if parseErr != nil {
						w.Balance = w.Balance.Add(amount)
						continue
					}

					if bet.Wins(result) {
						winnings := bet.Winnings(result, amount)
						w.Balance = w.Balance.Add(amount).Add(winnings)
						lines = append(lines, fmt.Sprintf("✅ %s: %s wins %s!",
							w.DisplayName, bet.Name(), model.FormatMoney(winnings)))
						anyWinner = true
					} else {
						lines = append(lines, fmt.Sprintf("❌ %s: %s loses %s.",
							w.DisplayName, bet.Name(), model.FormatMoney(amount)))
					}
				}

				w.SetBets(model.GameRoulette, nil)
				if err := led.SaveWallet(ctx, w); err != nil {
					return err
				}
				lines = append(lines, fmt.Sprintf("💰 %s balance: %s", w.DisplayName, model.FormatMoney(w.Balance)))
			}

			if !anyWinner {
				lines = append(lines, "😢 No winners this spin.")
			}

			msg = strings.Join(lines, "\n")
			return nil
		})
	})
	return msg, err
}
