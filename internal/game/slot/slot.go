// Package slot implements the Zeus slot machine: a 5x5 symbol grid where
// rows, columns and both diagonals pay on three or more of a kind. The Zeus
// head is wild on up to one reel per line; a full line of Zeus heads is the
// jackpot. A spin is stateless; the service layer charges the wallet.
package slot

import (
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
)

// Zeus is the wild/jackpot symbol.
const Zeus = "🧔‍♂️"

// Symbols on the reels.
var Symbols = []string{"⚡", "🦁", "🏺", "🦅", "👑", "🇦", "🇰", "🇯", Zeus}

// Grid is one spun 5x5 symbol layout.
type Grid [5][5]string

// Flat winnings per line outcome.
var (
	SpinCost   = decimal.RequireFromString("10.00")
	payThree   = decimal.RequireFromString("10.00")
	payFour    = decimal.RequireFromString("50.00")
	payFive    = decimal.RequireFromString("200.00")
	payJackpot = decimal.RequireFromString("5000.00")
)

// Match is one winning line.
type Match struct {
	Symbol  string
	Count   int
	Jackpot bool
}

// Winnings returns the payout for this line.
func (m Match) Winnings() decimal.Decimal {
	switch {
	case m.Jackpot:
		return payJackpot
	case m.Count >= 5:
		return payFive
	case m.Count == 4:
		return payFour
	default:
		return payThree
	}
}

// Spin draws a fresh grid from the supplied source.
func Spin(rng *rand.Rand) Grid {
	var g Grid
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			g[r][c] = Symbols[rng.Intn(len(Symbols))]
		}
	}
	return g
}

// Format renders the grid for a chat message.
func (g Grid) Format() string {
	rows := make([]string, 5)
	for r := 0; r < 5; r++ {
		rows[r] = strings.Join(g[r][:], " | ")
	}
	return strings.Join(rows, "\n")
}

// evaluateLine scores a single line of five symbols. A line of Zeus heads is
// the jackpot; otherwise the dominant symbol wins with at most one Zeus
// counting as wild.
func evaluateLine(line [5]string) (Match, bool) {
	zeusCount := 0
	counts := make(map[string]int)
	for _, s := range line {
		if s == Zeus {
			zeusCount++
			continue
		}
		counts[s]++
	}
	if zeusCount == 5 {
		return Match{Symbol: Zeus, Count: 5, Jackpot: true}, true
	}

	var target string
	for s, n := range counts {
		if n > counts[target] {
			target = s
		}
	}
	if counts[target] >= 3 && zeusCount <= 1 {
		return Match{Symbol: target, Count: counts[target] + zeusCount}, true
	}
	return Match{}, false
}

// Matches evaluates every row, column and both diagonals of the grid.
func (g Grid) Matches() []Match {
	var lines [][5]string
	for r := 0; r < 5; r++ {
		lines = append(lines, g[r])
	}
	for c := 0; c < 5; c++ {
		var col [5]string
		for r := 0; r < 5; r++ {
			col[r] = g[r][c]
		}
		lines = append(lines, col)
	}
	var diag1, diag2 [5]string
	for i := 0; i < 5; i++ {
		diag1[i] = g[i][i]
		diag2[i] = g[i][4-i]
	}
	lines = append(lines, diag1, diag2)

	var matches []Match
	for _, line := range lines {
		if m, ok := evaluateLine(line); ok && m.Count >= 3 {
			matches = append(matches, m)
		}
	}
	return matches
}

// TotalWinnings sums the payout over all matched lines.
func TotalWinnings(matches []Match) decimal.Decimal {
	total := decimal.Zero
	for _, m := range matches {
		total = total.Add(m.Winnings())
	}
	return total
}
