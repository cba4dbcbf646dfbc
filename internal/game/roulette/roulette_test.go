package roulette

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParsePocket(t *testing.T) {
	tests := []struct {
		input string
		want  Pocket
		ok    bool
	}{
		{"0", 0, true},
		{"00", DoubleZero, true},
		{"1", 1, true},
		{"36", 36, true},
		{"17", 17, true},
		{"37", 0, false},
		{"-1", 0, false},
		{"000", 0, false},
		{"red", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, ok := ParsePocket(tt.input)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, p)
			}
		})
	}
}

func TestPocketString(t *testing.T) {
	assert.Equal(t, "0", Pocket(0).String())
	assert.Equal(t, "00", DoubleZero.String())
	assert.Equal(t, "17", Pocket(17).String())
}

func TestPocketColor(t *testing.T) {
	assert.Equal(t, Green, Pocket(0).Color())
	assert.Equal(t, Green, DoubleZero.Color())
	assert.Equal(t, Red, Pocket(1).Color())
	assert.Equal(t, Black, Pocket(2).Color())
	assert.Equal(t, Red, Pocket(32).Color())
	assert.Equal(t, Black, Pocket(17).Color())
	assert.Equal(t, Red, Pocket(36).Color())

	// Exactly 18 red and 18 black pockets.
	red, black := 0, 0
	for n := 1; n <= 36; n++ {
		switch Pocket(n).Color() {
		case Red:
			red++
		case Black:
			black++
		}
	}
	assert.Equal(t, 18, red)
	assert.Equal(t, 18, black)
}

func TestParse(t *testing.T) {
	b, err := Parse("red")
	require.NoError(t, err)
	assert.Equal(t, RedBet, b.Kind)

	b, err = Parse("straight_17")
	require.NoError(t, err)
	assert.Equal(t, Straight, b.Kind)
	assert.Equal(t, Pocket(17), b.Pocket)

	b, err = Parse("straight_00")
	require.NoError(t, err)
	assert.Equal(t, DoubleZero, b.Pocket)

	_, err = Parse("straight_37")
	require.ErrorIs(t, err, ErrUnknownBet)
	_, err = Parse("corner_1")
	require.ErrorIs(t, err, ErrUnknownBet)
	_, err = Parse("")
	require.ErrorIs(t, err, ErrUnknownBet)
}

func TestKeyRoundTrip(t *testing.T) {
	keys := []string{
		"red", "black", "even", "odd", "low", "high",
		"first_dozen", "second_dozen", "third_dozen",
		"straight_0", "straight_00", "straight_17", "straight_36",
	}
	for _, key := range keys {
		b, err := Parse(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, b.Key())
	}
}

func TestWins(t *testing.T) {
	tests := []struct {
		bet    string
		result Pocket
		wins   bool
	}{
		{"straight_17", 17, true},
		{"straight_17", 18, false},
		{"straight_0", 0, true},
		{"straight_00", DoubleZero, true},
		{"straight_0", DoubleZero, false},

		{"red", 1, true},
		{"red", 2, false},
		{"black", 2, true},
		{"even", 4, true},
		{"even", 5, false},
		{"odd", 5, true},
		{"low", 18, true},
		{"low", 19, false},
		{"high", 19, true},
		{"first_dozen", 12, true},
		{"first_dozen", 13, false},
		{"second_dozen", 13, true},
		{"second_dozen", 24, true},
		{"third_dozen", 25, true},
		{"third_dozen", 36, true},

		// 0 and 00 never satisfy category bets.
		{"red", 0, false},
		{"black", DoubleZero, false},
		{"even", 0, false},
		{"even", DoubleZero, false},
		{"odd", 0, false},
		{"low", 0, false},
		{"high", DoubleZero, false},
		{"first_dozen", 0, false},
	}

	for _, tt := range tests {
		b, err := Parse(tt.bet)
		require.NoError(t, err)
		assert.Equal(t, tt.wins, b.Wins(tt.result), "%s on %s", tt.bet, tt.result)
	}
}

func TestWinnings(t *testing.T) {
	five := decimal.RequireFromString("5.00")

	straight, _ := Parse("straight_17")
	assert.Equal(t, "175.00", straight.Winnings(17, five).StringFixed(2))
	assert.Equal(t, "0.00", straight.Winnings(18, five).StringFixed(2))

	dozen, _ := Parse("second_dozen")
	assert.Equal(t, "10.00", dozen.Winnings(20, five).StringFixed(2))

	red, _ := Parse("red")
	assert.Equal(t, "5.00", red.Winnings(1, five).StringFixed(2))
	assert.Equal(t, "0.00", red.Winnings(0, five).StringFixed(2))
}

func TestSpin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Pocket]bool)
	for i := 0; i < 10000; i++ {
		p := Spin(rng)
		require.True(t, p.Valid(), "spun invalid pocket %d", p)
		seen[p] = true
	}
	// Every one of the 38 pockets should come up over ten thousand spins.
	assert.Len(t, seen, 38)
}

// On a zero result no category bet pays; straight bets on the drawn pocket
// pay exactly 35 to 1.
func TestZeroSweepsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		zero := Pocket(0)
		if rapid.Bool().Draw(t, "double") {
			zero = DoubleZero
		}
		keys := []string{"red", "black", "even", "odd", "low", "high",
			"first_dozen", "second_dozen", "third_dozen"}
		key := keys[rapid.IntRange(0, len(keys)-1).Draw(t, "key")]

		b, err := Parse(key)
		if err != nil {
			t.Fatalf("Parse(%q): %v", key, err)
		}
		if b.Wins(zero) {
			t.Fatalf("%s won on %s", key, zero)
		}

		amount := decimal.NewFromInt(int64(rapid.IntRange(1, 1000).Draw(t, "amount")))
		straight := Bet{Kind: Straight, Pocket: zero}
		want := amount.Mul(decimal.NewFromInt(35))
		if got := straight.Winnings(zero, amount); !got.Equal(want) {
			t.Fatalf("straight on %s paid %s, want %s", zero, got, want)
		}
	})
}
