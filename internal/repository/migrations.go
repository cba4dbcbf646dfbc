package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Migrate creates the ledger schema. Statements are idempotent so running
// them on every startup is safe.
func Migrate(ctx context.Context, q querier) error {
	log.Info().Msg("Running database migrations...")

	_, err := q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS craps_states (
			chat_id TEXT PRIMARY KEY,
			phase TEXT NOT NULL DEFAULT 'come_out',
			point INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("migration craps_states: %w", err)
	}

	_, err = q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS wallets (
			chat_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			balance NUMERIC(14,2) NOT NULL,
			craps_bets JSONB NOT NULL DEFAULT '{}',
			roulette_bets JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (chat_id, player_id)
		);
		CREATE INDEX IF NOT EXISTS idx_wallets_craps_open
			ON wallets(chat_id) WHERE craps_bets <> '{}'::jsonb;
		CREATE INDEX IF NOT EXISTS idx_wallets_roulette_open
			ON wallets(chat_id) WHERE roulette_bets <> '{}'::jsonb;
	`)
	if err != nil {
		return fmt.Errorf("migration wallets: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
