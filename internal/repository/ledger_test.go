// Integration tests spin up a PostgreSQL container via testcontainers-go
// and are skipped when Docker is not available.
package repository

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"casino-game-bot/internal/model"
)

func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	return cmd.Run() == nil
}

// setupTestDB creates a PostgreSQL container, runs the migrations and
// returns a connection pool. Skips the test if Docker is not available.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return pool, cleanup
}

func TestLedgerStore_CrapsStateRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLedgerStore(pool, decimal.Zero)
	ctx := context.Background()

	// A never-seen conversation gets the default come-out state.
	st, err := store.GetCrapsState(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseComeOut, st.Phase)
	assert.Equal(t, 0, st.Point)

	st.Phase = model.PhasePoint
	st.Point = 8
	require.NoError(t, store.SaveCrapsState(ctx, st))

	got, err := store.GetCrapsState(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, model.PhasePoint, got.Phase)
	assert.Equal(t, 8, got.Point)
	assert.False(t, got.UpdatedAt.IsZero())

	// Upsert back to come out.
	got.Phase = model.PhaseComeOut
	got.Point = 0
	require.NoError(t, store.SaveCrapsState(ctx, got))

	got, err = store.GetCrapsState(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseComeOut, got.Phase)
}

func TestLedgerStore_WalletRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLedgerStore(pool, decimal.Zero)
	ctx := context.Background()

	// Absent wallet comes back fresh with the start balance, not persisted.
	w, err := store.GetWallet(ctx, "chat1", "p1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(model.DefaultBalance))
	assert.Empty(t, w.CrapsBets)

	w.DisplayName = "Alice"
	w.Balance = decimal.RequireFromString("88.25")
	w.CrapsBets["pass_line"] = decimal.RequireFromString("10.00")
	w.CrapsBets["place_6"] = decimal.RequireFromString("1.75")
	w.RouletteBets["straight_00"] = decimal.RequireFromString("4.00")
	require.NoError(t, store.SaveWallet(ctx, w))

	got, err := store.GetWallet(ctx, "chat1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("88.25")),
		"balance came back as %s", got.Balance)
	assert.True(t, got.CrapsBets["pass_line"].Equal(decimal.RequireFromString("10.00")))
	assert.True(t, got.CrapsBets["place_6"].Equal(decimal.RequireFromString("1.75")))
	assert.True(t, got.RouletteBets["straight_00"].Equal(decimal.RequireFromString("4.00")))

	// Upsert with cleared bets.
	got.CrapsBets = map[string]decimal.Decimal{}
	require.NoError(t, store.SaveWallet(ctx, got))

	got, err = store.GetWallet(ctx, "chat1", "p1")
	require.NoError(t, err)
	assert.Empty(t, got.CrapsBets)
	assert.Len(t, got.RouletteBets, 1)
}

func TestLedgerStore_StartBalance(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	custom := decimal.RequireFromString("250.00")
	store := NewLedgerStore(pool, custom)
	ctx := context.Background()

	assert.True(t, store.StartBalance().Equal(custom))

	w, err := store.GetWallet(ctx, "chat1", "p1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(custom))
}

func TestLedgerStore_WalletsWithOpenBets(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLedgerStore(pool, decimal.Zero)
	ctx := context.Background()

	save := func(playerID string, crapsBets, rouletteBets map[string]decimal.Decimal) {
		w := model.NewWallet("chat1", playerID, playerID)
		if crapsBets != nil {
			w.CrapsBets = crapsBets
		}
		if rouletteBets != nil {
			w.RouletteBets = rouletteBets
		}
		require.NoError(t, store.SaveWallet(ctx, w))
	}

	ten := decimal.RequireFromString("10.00")
	save("p1", map[string]decimal.Decimal{"pass_line": ten}, nil)
	save("p2", nil, map[string]decimal.Decimal{"red": ten})
	save("p3", nil, nil)

	// A wallet in another conversation must never leak in.
	other := model.NewWallet("chat2", "p9", "p9")
	other.CrapsBets["field"] = ten
	require.NoError(t, store.SaveWallet(ctx, other))

	crapsWallets, err := store.WalletsWithOpenBets(ctx, "chat1", model.GameCraps)
	require.NoError(t, err)
	require.Len(t, crapsWallets, 1)
	assert.Contains(t, crapsWallets, "p1")

	rouletteWallets, err := store.WalletsWithOpenBets(ctx, "chat1", model.GameRoulette)
	require.NoError(t, err)
	require.Len(t, rouletteWallets, 1)
	assert.Contains(t, rouletteWallets, "p2")

	all, err := store.AllWallets(ctx, "chat1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLedgerStore_InTxRollsBackOnError(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLedgerStore(pool, decimal.Zero)
	ctx := context.Background()

	w := model.NewWallet("chat1", "p1", "Alice")
	require.NoError(t, store.SaveWallet(ctx, w))

	boom := errors.New("boom")
	err := store.InTx(ctx, func(led Ledger) error {
		inner, err := led.GetWallet(ctx, "chat1", "p1")
		if err != nil {
			return err
		}
		inner.Balance = decimal.RequireFromString("1.00")
		if err := led.SaveWallet(ctx, inner); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The write inside the failed transaction must not be visible.
	got, err := store.GetWallet(ctx, "chat1", "p1")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(model.DefaultBalance),
		"balance after rollback: %s", got.Balance)
}

func TestLedgerStore_InTxCommits(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLedgerStore(pool, decimal.Zero)
	ctx := context.Background()

	err := store.InTx(ctx, func(led Ledger) error {
		w, err := led.GetWallet(ctx, "chat1", "p1")
		if err != nil {
			return err
		}
		w.Balance = decimal.RequireFromString("42.00")
		if err := led.SaveWallet(ctx, w); err != nil {
			return err
		}

		st, err := led.GetCrapsState(ctx, "chat1")
		if err != nil {
			return err
		}
		st.Phase = model.PhasePoint
		st.Point = 9
		return led.SaveCrapsState(ctx, st)
	})
	require.NoError(t, err)

	w, err := store.GetWallet(ctx, "chat1", "p1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.RequireFromString("42.00")))

	st, err := store.GetCrapsState(ctx, "chat1")
	require.NoError(t, err)
	assert.Equal(t, model.PhasePoint, st.Phase)
	assert.Equal(t, 9, st.Point)
}
