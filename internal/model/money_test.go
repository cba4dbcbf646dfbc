package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  error
	}{
		{"integer", "10", "10.00", nil},
		{"two decimals", "2.50", "2.50", nil},
		{"rounds half up", "1.005", "1.01", nil},
		{"rounds down", "1.004", "1.00", nil},
		{"many decimals", "3.14159", "3.14", nil},
		{"not a number", "abc", "", ErrBadAmount},
		{"empty", "", "", ErrBadAmount},
		{"negative", "-5", "", ErrAmountNotPositive},
		{"zero", "0", "", ErrAmountNotPositive},
		{"rounds to zero", "0.001", "", ErrAmountTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12.345", "12.35"},
		{"12.344", "12.34"},
		{"12.005", "12.01"},
		{"0.125", "0.13"},
		{"7.00", "7.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := decimal.RequireFromString(tt.input)
			assert.Equal(t, tt.expected, RoundCents(d).StringFixed(2))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$100.00", FormatMoney(DefaultBalance))
	assert.Equal(t, "$0.50", FormatMoney(decimal.RequireFromString("0.5")))
	assert.Equal(t, "$-3.25", FormatMoney(decimal.RequireFromString("-3.25")))
}

// ParseAmount never returns more than two decimal places, and the result is
// always positive.
func TestParseAmountProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 10_000_000).Draw(t, "cents")
		input := decimal.New(cents, -2).String()

		got, err := ParseAmount(input)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", input, err)
		}
		if !got.IsPositive() {
			t.Fatalf("ParseAmount(%q) = %s, not positive", input, got)
		}
		if got.Exponent() < -2 {
			t.Fatalf("ParseAmount(%q) = %s has more than two decimal places", input, got)
		}
		if !got.Equal(decimal.New(cents, -2)) {
			t.Fatalf("ParseAmount(%q) = %s, want exact value back", input, got)
		}
	})
}

func TestWalletBets(t *testing.T) {
	w := NewWallet("chat1", "player1", "Alice")

	assert.Equal(t, DefaultBalance, w.Balance)
	assert.False(t, w.HasOpenBets(GameCraps))
	assert.False(t, w.HasOpenBets(GameRoulette))

	w.Bets(GameCraps)["pass_line"] = decimal.RequireFromString("10.00")
	assert.True(t, w.HasOpenBets(GameCraps))
	assert.False(t, w.HasOpenBets(GameRoulette))

	w.SetBets(GameCraps, nil)
	assert.False(t, w.HasOpenBets(GameCraps))
	assert.NotNil(t, w.CrapsBets)
}
