// Package repository provides the data access layer for the casino ledger:
// per-conversation Craps table state and per-conversation-per-player wallets.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"casino-game-bot/internal/model"
)

// Ledger is the persistence contract the casino service depends on. Getters
// return fresh defaults for absent records without persisting them; a read
// failure on an existing record is an error, never a silent reset. Writers
// are idempotent upserts. InTx runs fn against a transaction-bound Ledger so
// a whole round's wallet and state writes commit or roll back together.
type Ledger interface {
	GetCrapsState(ctx context.Context, chatID string) (*model.CrapsState, error)
	SaveCrapsState(ctx context.Context, st *model.CrapsState) error
	GetWallet(ctx context.Context, chatID, playerID string) (*model.Wallet, error)
	SaveWallet(ctx context.Context, w *model.Wallet) error
	WalletsWithOpenBets(ctx context.Context, chatID string, game model.Game) (map[string]*model.Wallet, error)
	AllWallets(ctx context.Context, chatID string) (map[string]*model.Wallet, error)
	StartBalance() decimal.Decimal
	InTx(ctx context.Context, fn func(Ledger) error) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LedgerStore implements Ledger on PostgreSQL.
type LedgerStore struct {
	pool         *pgxpool.Pool
	q            querier
	startBalance decimal.Decimal
}

// NewLedgerStore creates a LedgerStore. A zero startBalance falls back to
// the standard default wallet balance.
func NewLedgerStore(pool *pgxpool.Pool, startBalance decimal.Decimal) *LedgerStore {
	if startBalance.IsZero() {
		startBalance = model.DefaultBalance
	}
	return &LedgerStore{pool: pool, q: pool, startBalance: startBalance}
}

// StartBalance returns the balance fresh and reset wallets receive.
func (s *LedgerStore) StartBalance() decimal.Decimal {
	return s.startBalance
}

// InTx runs fn with a Ledger bound to a single transaction.
func (s *LedgerStore) InTx(ctx context.Context, fn func(Ledger) error) error {
	if s.pool == nil {
		// Already inside a transaction; just reuse it.
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&LedgerStore{q: tx, startBalance: s.startBalance})
	})
}

// GetCrapsState returns the conversation's Craps table state, or a fresh
// come-out state if the conversation has never rolled. The default is not
// persisted until the first SaveCrapsState.
func (s *LedgerStore) GetCrapsState(ctx context.Context, chatID string) (*model.CrapsState, error) {
	const query = `
		SELECT chat_id, phase, point, updated_at
		FROM craps_states
		WHERE chat_id = $1
	`

	var st model.CrapsState
	err := s.q.QueryRow(ctx, query, chatID).Scan(&st.ChatID, &st.Phase, &st.Point, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewCrapsState(chatID), nil
		}
		return nil, fmt.Errorf("failed to get craps state: %w", err)
	}

	return &st, nil
}

// SaveCrapsState upserts the conversation's Craps table state.
func (s *LedgerStore) SaveCrapsState(ctx context.Context, st *model.CrapsState) error {
	const query = `
		INSERT INTO craps_states (chat_id, phase, point, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (chat_id) DO UPDATE
		SET phase = EXCLUDED.phase, point = EXCLUDED.point, updated_at = NOW()
	`

	if _, err := s.q.Exec(ctx, query, st.ChatID, st.Phase, st.Point); err != nil {
		return fmt.Errorf("failed to save craps state: %w", err)
	}
	return nil
}

// GetWallet returns the player's wallet for a conversation, or a fresh
// default-balance wallet if they have never played there. The default is not
// persisted until the first SaveWallet.
func (s *LedgerStore) GetWallet(ctx context.Context, chatID, playerID string) (*model.Wallet, error) {
	const query = `
		SELECT chat_id, player_id, display_name, balance::text,
		       craps_bets, roulette_bets, created_at, updated_at
		FROM wallets
		WHERE chat_id = $1 AND player_id = $2
	`

	w, err := scanWallet(s.q.QueryRow(ctx, query, chatID, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fresh := model.NewWallet(chatID, playerID, "")
			fresh.Balance = s.startBalance
			return fresh, nil
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return w, nil
}

// SaveWallet upserts a wallet. The write is durable once the call (or the
// surrounding transaction) returns.
func (s *LedgerStore) SaveWallet(ctx context.Context, w *model.Wallet) error {
	const query = `
		INSERT INTO wallets (chat_id, player_id, display_name, balance, craps_bets, roulette_bets, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, NOW(), NOW())
		ON CONFLICT (chat_id, player_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    balance = EXCLUDED.balance,
		    craps_bets = EXCLUDED.craps_bets,
		    roulette_bets = EXCLUDED.roulette_bets,
		    updated_at = NOW()
	`

	crapsJSON, err := betsToJSON(w.CrapsBets)
	if err != nil {
		return fmt.Errorf("failed to encode craps bets: %w", err)
	}
	rouletteJSON, err := betsToJSON(w.RouletteBets)
	if err != nil {
		return fmt.Errorf("failed to encode roulette bets: %w", err)
	}

	_, err = s.q.Exec(ctx, query,
		w.ChatID, w.PlayerID, w.DisplayName, w.Balance.StringFixed(2), crapsJSON, rouletteJSON)
	if err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

// WalletsWithOpenBets returns the wallets of every player in the
// conversation holding at least one open bet for the named game. Round
// resolution uses this to scope itself to active participants.
func (s *LedgerStore) WalletsWithOpenBets(ctx context.Context, chatID string, game model.Game) (map[string]*model.Wallet, error) {
	col := "craps_bets"
	if game == model.GameRoulette {
		col = "roulette_bets"
	}
	query := fmt.Sprintf(`
		SELECT chat_id, player_id, display_name, balance::text,
		       craps_bets, roulette_bets, created_at, updated_at
		FROM wallets
		WHERE chat_id = $1 AND %s <> '{}'::jsonb
	`, col)

	return s.queryWallets(ctx, query, chatID)
}

// AllWallets returns every wallet in the conversation.
func (s *LedgerStore) AllWallets(ctx context.Context, chatID string) (map[string]*model.Wallet, error) {
	const query = `
		SELECT chat_id, player_id, display_name, balance::text,
		       craps_bets, roulette_bets, created_at, updated_at
		FROM wallets
		WHERE chat_id = $1
	`

	return s.queryWallets(ctx, query, chatID)
}

func (s *LedgerStore) queryWallets(ctx context.Context, query, chatID string) (map[string]*model.Wallet, error) {
	rows, err := s.q.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := make(map[string]*model.Wallet)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets[w.PlayerID] = w
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallets: %w", err)
	}

	return wallets, nil
}

func scanWallet(row pgx.Row) (*model.Wallet, error) {
	var (
		w            model.Wallet
		balance      string
		crapsJSON    []byte
		rouletteJSON []byte
	)
	err := row.Scan(&w.ChatID, &w.PlayerID, &w.DisplayName, &balance,
		&crapsJSON, &rouletteJSON, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if w.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("corrupt balance %q: %w", balance, err)
	}
	if w.CrapsBets, err = betsFromJSON(crapsJSON); err != nil {
		return nil, fmt.Errorf("corrupt craps bets: %w", err)
	}
	if w.RouletteBets, err = betsFromJSON(rouletteJSON); err != nil {
		return nil, fmt.Errorf("corrupt roulette bets: %w", err)
	}

	return &w, nil
}

// Bet amounts are serialized as decimal strings, never floats, so stored
// values never pick up binary rounding drift.
func betsToJSON(bets map[string]decimal.Decimal) ([]byte, error) {
	m := make(map[string]string, len(bets))
	for key, amt := range bets {
		m[key] = amt.StringFixed(2)
	}
	return json.Marshal(m)
}

func betsFromJSON(data []byte) (map[string]decimal.Decimal, error) {
	if len(data) == 0 {
		return make(map[string]decimal.Decimal), nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	bets := make(map[string]decimal.Decimal, len(m))
	for key, s := range m {
		amt, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("bet %s has amount %q: %w", key, s, err)
		}
		bets[key] = amt
	}
	return bets, nil
}
