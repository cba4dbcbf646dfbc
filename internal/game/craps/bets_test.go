package craps

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-game-bot/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		key     string
		kind    Kind
		number  int
		wantErr bool
	}{
		{"pass_line", PassLine, 0, false},
		{"dont_pass", DontPass, 0, false},
		{"field", Field, 0, false},
		{"place_6", Place, 6, false},
		{"place_10", Place, 10, false},
		{"hard_8", Hard, 8, false},
		{"any_craps", AnyCraps, 0, false},
		{"horn", Horn, 0, false},
		{"place_7", 0, 0, true},
		{"place_2", 0, 0, true},
		{"hard_5", 0, 0, true},
		{"hard_", 0, 0, true},
		{"place_", 0, 0, true},
		{"bogus", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			b, err := Parse(tt.key)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownBet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, b.Kind)
			assert.Equal(t, tt.number, b.Number)
		})
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, key := range ValidKeys() {
		b, err := Parse(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, b.Key())
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		key  string
		name string
	}{
		{"pass_line", "Pass Line"},
		{"dont_pass", "Dont Pass"},
		{"field", "Field"},
		{"place_6", "Place 6"},
		{"hard_10", "Hard 10"},
		{"any_craps", "Any Craps"},
		{"any_seven", "Any Seven"},
		{"horn", "Horn"},
	}

	for _, tt := range tests {
		b, err := Parse(tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.name, b.Name())
	}
}

func TestCheckAmountHorn(t *testing.T) {
	horn := Bet{Kind: Horn}

	require.NoError(t, horn.CheckAmount(decimal.RequireFromString("4")))
	require.NoError(t, horn.CheckAmount(decimal.RequireFromString("20")))
	require.NoError(t, horn.CheckAmount(decimal.RequireFromString("100.00")))

	err := horn.CheckAmount(decimal.RequireFromString("10"))
	require.ErrorIs(t, err, ErrHornMultiple)

	err = horn.CheckAmount(decimal.RequireFromString("4.50"))
	require.ErrorIs(t, err, ErrHornMultiple)

	// Non-horn bets never restrict the amount.
	pass := Bet{Kind: PassLine}
	require.NoError(t, pass.CheckAmount(decimal.RequireFromString("3.33")))
}

func TestAllowedInPhase(t *testing.T) {
	pass := Bet{Kind: PassLine}
	dont := Bet{Kind: DontPass}
	place := Bet{Kind: Place, Number: 6}
	field := Bet{Kind: Field}

	assert.True(t, pass.AllowedInPhase(model.PhaseComeOut))
	assert.True(t, dont.AllowedInPhase(model.PhaseComeOut))
	assert.False(t, pass.AllowedInPhase(model.PhasePoint))
	assert.False(t, dont.AllowedInPhase(model.PhasePoint))
	assert.True(t, place.AllowedInPhase(model.PhasePoint))
	assert.True(t, field.AllowedInPhase(model.PhasePoint))
}

func TestOneRoll(t *testing.T) {
	oneRoll := []string{"field", "any_craps", "any_seven", "two", "three", "eleven", "twelve", "horn"}
	for _, key := range oneRoll {
		b, err := Parse(key)
		require.NoError(t, err)
		assert.True(t, b.OneRoll(), key)
	}

	multiRoll := []string{"pass_line", "dont_pass", "place_6", "hard_8"}
	for _, key := range multiRoll {
		b, err := Parse(key)
		require.NoError(t, err)
		assert.False(t, b.OneRoll(), key)
	}
}
