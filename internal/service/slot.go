package service

import (
	"context"
	"fmt"
	"strings"

	"casino-game-bot/internal/game/slot"
	"casino-game-bot/internal/model"
)

// PlaySlot charges the fixed spin cost, spins the Zeus grid and credits any
// line winnings. Unlike the table games a spin resolves immediately, so the
// whole thing is a single wallet write.
func (s *CasinoService) PlaySlot(ctx context.Context, chatID, playerID, playerName string) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		w, err := s.ledger.GetWallet(ctx, chatID, playerID)
		if err != nil {
			return err
		}
		w.DisplayName = playerName

		if slot.SpinCost.GreaterThan(w.Balance) {
			msg = fmt.Sprintf("%s, insufficient balance. A spin costs %s and you have %s.",
				playerName, model.FormatMoney(slot.SpinCost), model.FormatMoney(w.Balance))
			return nil
		}
		w.Balance = w.Balance.Sub(slot.SpinCost)

		grid := s.spinGrid()
		matches := grid.Matches()
		total := slot.TotalWinnings(matches)
		w.Balance = w.Balance.Add(total)

		if err := s.ledger.SaveWallet(ctx, w); err != nil {
			return err
		}

		lines := []string{fmt.Sprintf("🎰 %s pulls the lever (%s):", playerName, model.FormatMoney(slot.SpinCost))}
		lines = append(lines, grid.Format())
		for _, m := range matches {
			if m.Jackpot {
				lines = append(lines, fmt.Sprintf("👑 JACKPOT! A full line of %s pays %s!", slot.Zeus, model.FormatMoney(m.Winnings())))
			} else {
				lines = append(lines, fmt.Sprintf("✨ %d× %s pays %s", m.Count, m.Symbol, model.FormatMoney(m.Winnings())))
			}
		}
		if len(matches) == 0 {
			lines = append(lines, "No winning lines this time.")
		} else {
			lines = append(lines, fmt.Sprintf("🏆 Total winnings: %s", model.FormatMoney(total)))
		}
		lines = append(lines, fmt.Sprintf("💰 Balance: %s", model.FormatMoney(w.Balance)))

		msg = strings.Join(lines, "\n")
		return nil
	})
	return msg, err
}
