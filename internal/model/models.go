// Package model defines the data models shared by the casino engine.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game identifies which casino game a wallet's bets belong to.
type Game string

const (
	GameCraps    Game = "craps"
	GameRoulette Game = "roulette"
)

// CrapsPhase is the shared dice phase of a conversation's Craps table.
type CrapsPhase string

const (
	// PhaseComeOut is the initial phase; line bets resolve on naturals and craps.
	PhaseComeOut CrapsPhase = "come_out"
	// PhasePoint means a point number is established and the shooter keeps rolling.
	PhasePoint CrapsPhase = "point"
)

// CrapsState is the per-conversation shared Craps table state.
// Point is only meaningful in PhasePoint; zero means no point.
type CrapsState struct {
	ChatID    string     `db:"chat_id"`
	Phase     CrapsPhase `db:"phase"`
	Point     int        `db:"point"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// NewCrapsState returns the default table state for a fresh conversation.
func NewCrapsState(chatID string) *CrapsState {
	return &CrapsState{ChatID: chatID, Phase: PhaseComeOut}
}

// Wallet is the per-conversation-per-player account: a cash balance plus the
// player's open wagers for each game. The balance reflects cash not at risk;
// every amount in an open-bet map has already been deducted at placement time.
type Wallet struct {
	ChatID       string                     `db:"chat_id"`
	PlayerID     string                     `db:"player_id"`
	DisplayName  string                     `db:"display_name"`
	Balance      decimal.Decimal            `db:"balance"`
	CrapsBets    map[string]decimal.Decimal `db:"craps_bets"`
	RouletteBets map[string]decimal.Decimal `db:"roulette_bets"`
	CreatedAt    time.Time                  `db:"created_at"`
	UpdatedAt    time.Time                  `db:"updated_at"`
}

// NewWallet returns a fresh wallet with the default starting balance.
func NewWallet(chatID, playerID, displayName string) *Wallet {
	return &Wallet{
		ChatID:       chatID,
		PlayerID:     playerID,
		DisplayName:  displayName,
		Balance:      DefaultBalance,
		CrapsBets:    make(map[string]decimal.Decimal),
		RouletteBets: make(map[string]decimal.Decimal),
	}
}

// Bets returns the open-bet map for the given game. Callers mutate the
// returned map in place; it is never nil.
func (w *Wallet) Bets(g Game) map[string]decimal.Decimal {
	switch g {
	case GameRoulette:
		if w.RouletteBets == nil {
			w.RouletteBets = make(map[string]decimal.Decimal)
		}
		return w.RouletteBets
	default:
		if w.CrapsBets == nil {
			w.CrapsBets = make(map[string]decimal.Decimal)
		}
		return w.CrapsBets
	}
}

// SetBets replaces the open-bet map for the given game.
func (w *Wallet) SetBets(g Game, bets map[string]decimal.Decimal) {
	if bets == nil {
		bets = make(map[string]decimal.Decimal)
	}
	switch g {
	case GameRoulette:
		w.RouletteBets = bets
	default:
		w.CrapsBets = bets
	}
}

// HasOpenBets reports whether the wallet has at least one non-zero bet
// for the given game.
func (w *Wallet) HasOpenBets(g Game) bool {
	for _, amt := range w.Bets(g) {
		if amt.IsPositive() {
			return true
		}
	}
	return false
}
