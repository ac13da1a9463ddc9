package stats

import "github.com/shopspring/decimal"

var thousand = decimal.NewFromInt(1000)

// Percent returns wins/games as a percentage rounded half away from zero to
// one decimal place. Zero games yields 0.
func Percent(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	permille := decimal.NewFromInt(int64(wins)).Mul(thousand).DivRound(decimal.NewFromInt(int64(games)), 0)
	return permille.Shift(-1).InexactFloat64()
}
