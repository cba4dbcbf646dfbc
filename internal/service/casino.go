// Package service implements the dispatcher-facing casino operations:
// bet placement, round resolution, status and reset. User mistakes come back
// as plain chat messages, never as errors; errors are reserved for
// persistence failures.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"casino-game-bot/internal/game/craps"
	"casino-game-bot/internal/game/roulette"
	"casino-game-bot/internal/game/slot"
	"casino-game-bot/internal/model"
	"casino-game-bot/internal/pkg/lock"
	"casino-game-bot/internal/repository"
)

// CasinoService orchestrates the games against the ledger. All operations
// for one conversation are serialized by the conversation lock, and every
// round's wallet and state writes commit in a single transaction.
type CasinoService struct {
	ledger repository.Ledger
	locks  *lock.ChatLock

	rngMu sync.Mutex
	rng   *rand.Rand

	rollDice  func() craps.Roll
	spinWheel func() roulette.Pocket
	spinGrid  func() slot.Grid
}

// Option customizes a CasinoService, mainly for deterministic tests.
type Option func(*CasinoService)

// WithDiceRoller overrides the craps dice source.
func WithDiceRoller(fn func() craps.Roll) Option {
	return func(s *CasinoService) { s.rollDice = fn }
}

// WithWheelSpinner overrides the roulette wheel source.
func WithWheelSpinner(fn func() roulette.Pocket) Option {
	return func(s *CasinoService) { s.spinWheel = fn }
}

// WithGridSpinner overrides the slot grid source.
func WithGridSpinner(fn func() slot.Grid) Option {
	return func(s *CasinoService) { s.spinGrid = fn }
}

// NewCasinoService creates a CasinoService backed by the given ledger.
func NewCasinoService(ledger repository.Ledger, locks *lock.ChatLock, opts ...Option) *CasinoService {
	s := &CasinoService{
		ledger: ledger,
		locks:  locks,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.rollDice = func() craps.Roll {
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		return craps.RollDice(s.rng)
	}
	s.spinWheel = func() roulette.Pocket {
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		return roulette.Spin(s.rng)
	}
	s.spinGrid = func() slot.Grid {
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		return slot.Spin(s.rng)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBet validates and commits a wager. The bet key determines the game:
// craps and roulette catalogs are disjoint. Validation failures return a
// descriptive message with no state mutated; an error is only returned for
// persistence failures.
func (s *CasinoService) PlaceBet(ctx context.Context, chatID, playerID, playerName, betKey, amountStr string) (string, error) {
	amount, err := model.ParseAmount(amountStr)
	if err != nil {
		return fmt.Sprintf("❌ Invalid bet amount %q. Use a positive amount like 10 or 2.50.", amountStr), nil
	}

	if bet, err := craps.Parse(betKey); err == nil {
		return s.placeCrapsBet(ctx, chatID, playerID, playerName, bet, amount)
	}
	if bet, err := roulette.Parse(betKey); err == nil {
		return s.placeRouletteBet(ctx, chatID, playerID, playerName, bet, amount)
	}

	valid := append(craps.ValidKeys(), roulette.ValidKeys()...)
	return fmt.Sprintf("❌ Invalid bet type: %s. Valid types: %s", betKey, strings.Join(valid, ", ")), nil
}

func (s *CasinoService) placeCrapsBet(ctx context.Context, chatID, playerID, playerName string, bet craps.Bet, amount decimal.Decimal) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		w, err := s.ledger.GetWallet(ctx, chatID, playerID)
		if err != nil {
			return err
		}
		w.DisplayName = playerName

		if amount.GreaterThan(w.Balance) {
			msg = fmt.Sprintf("%s, insufficient balance. You have %s, need %s.",
				playerName, model.FormatMoney(w.Balance), model.FormatMoney(amount))
			return nil
		}

		st, err := s.ledger.GetCrapsState(ctx, chatID)
		if err != nil {
			return err
		}
		if !bet.AllowedInPhase(st.Phase) {
			msg = fmt.Sprintf("❌ Cannot place %s bet when point is %d.", bet.Name(), st.Point)
			return nil
		}
		if checkErr := bet.CheckAmount(amount); checkErr != nil {
			msg = fmt.Sprintf("❌ %v.", checkErr)
			return nil
		}

		bets := w.Bets(model.GameCraps)
		total := bets[bet.Key()].Add(amount)
		bets[bet.Key()] = total
		w.Balance = w.Balance.Sub(amount)

		if err := s.ledger.SaveWallet(ctx, w); err != nil {
			return err
		}

		msg = fmt.Sprintf("%s placed %s on %s. Total on %s: %s. New balance: %s",
			playerName, model.FormatMoney(amount), bet.Name(), bet.Key(),
			model.FormatMoney(total), model.FormatMoney(w.Balance))
		return nil
	})
	return msg, err
}

func (s *CasinoService) placeRouletteBet(ctx context.Context, chatID, playerID, playerName string, bet roulette.Bet, amount decimal.Decimal) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		w, err := s.ledger.GetWallet(ctx, chatID, playerID)
		if err != nil {
			return err
		}
		w.DisplayName = playerName

		if amount.GreaterThan(w.Balance) {
			msg = fmt.Sprintf("%s, insufficient balance. You have %s, need %s.",
				playerName, model.FormatMoney(w.Balance), model.FormatMoney(amount))
			return nil
		}

		bets := w.Bets(model.GameRoulette)
		total := bets[bet.Key()].Add(amount)
		bets[bet.Key()] = total
		w.Balance = w.Balance.Sub(amount)

		if err := s.ledger.SaveWallet(ctx, w); err != nil {
			return err
		}

		msg = fmt.Sprintf("%s placed %s on %s. Total on %s: %s. New balance: %s",
			playerName, model.FormatMoney(amount), bet.Name(), bet.Key(),
			model.FormatMoney(total), model.FormatMoney(w.Balance))
		return nil
	})
	return msg, err
}

// GetStatus renders the player's balance and open bets, plus the shared
// dice phase for Craps. It refreshes the stored display name as a side
// effect but never touches balances or bets.
func (s *CasinoService) GetStatus(ctx context.Context, chatID, playerID, playerName string, game model.Game) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		w, err := s.ledger.GetWallet(ctx, chatID, playerID)
		if err != nil {
			return err
		}
		if w.DisplayName != playerName {
			w.DisplayName = playerName
			if err := s.ledger.SaveWallet(ctx, w); err != nil {
				return err
			}
		}

		var lines []string
		switch game {
		case model.GameCraps:
			st, err := s.ledger.GetCrapsState(ctx, chatID)
			if err != nil {
				return err
			}
			lines = append(lines, fmt.Sprintf("--- 🎲 Craps: %s ---", playerName))
			if st.Phase == model.PhasePoint {
				lines = append(lines, fmt.Sprintf("Phase: Point is %d", st.Point))
			} else {
				lines = append(lines, "Phase: Come Out")
			}
		case model.GameRoulette:
			lines = append(lines, fmt.Sprintf("--- 🎡 Roulette: %s ---", playerName))
		}

		lines = append(lines, fmt.Sprintf("💰 Balance: %s", model.FormatMoney(w.Balance)))

		bets := w.Bets(game)
		if len(bets) == 0 {
			lines = append(lines, "🤷 Your Active Bets: None")
		} else {
			lines = append(lines, "📝 Your Active Bets:")
			for _, key := range sortedKeys(bets) {
				lines = append(lines, fmt.Sprintf("  • %s: %s", betName(game, key), model.FormatMoney(bets[key])))
			}
		}

		msg = strings.Join(lines, "\n")
		return nil
	})
	return msg, err
}

// ResetPlayer restores the default balance and clears the player's open
// bets for the given game.
func (s *CasinoService) ResetPlayer(ctx context.Context, chatID, playerID, playerName string, game model.Game) (msg string, err error) {
	err = s.locks.WithLock(chatID, func() error {
		w, err := s.ledger.GetWallet(ctx, chatID, playerID)
		if err != nil {
			return err
		}
		w.DisplayName = playerName
		w.Balance = s.ledger.StartBalance()
		w.SetBets(game, nil)

		if err := s.ledger.SaveWallet(ctx, w); err != nil {
			return err
		}

		msg = fmt.Sprintf("✅ Your balance has been reset to %s. Your bets are cleared. ✨",
			model.FormatMoney(w.Balance))
		return nil
	})
	return msg, err
}

// CrapsTable exposes the conversation's current phase and point for UIs.
func (s *CasinoService) CrapsTable(ctx context.Context, chatID string) (*model.CrapsState, error) {
	return s.ledger.GetCrapsState(ctx, chatID)
}

// Wallet exposes a single wallet (balance and open bets) for UIs.
func (s *CasinoService) Wallet(ctx context.Context, chatID, playerID string) (*model.Wallet, error) {
	return s.ledger.GetWallet(ctx, chatID, playerID)
}

// betName renders a ledger key as a display name for either game.
func betName(game model.Game, key string) string {
	switch game {
	case model.GameRoulette:
		if b, err := roulette.Parse(key); err == nil {
			return b.Name()
		}
	default:
		if b, err := craps.Parse(key); err == nil {
			return b.Name()
		}
	}
	return key
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPlayerIDs(m map[string]*model.Wallet) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
