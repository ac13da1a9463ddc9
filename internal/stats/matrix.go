package stats

import "protocol-tracker/internal/domain"

// Matrix holds directional head-to-head win percentages: Matrix[a][b] is a's
// win rate when a faced b. A nil cell means too few games.
//
// Matrix[a][b] and Matrix[b][a] are independent tallies and are not expected
// to add up to 100.
type Matrix map[domain.Protocol]map[domain.Protocol]*float64

func (m Matrix) Cell(a, b domain.Protocol) (float64, bool) {
	row, ok := m[a]
	if !ok {
		return 0, false
	}
	v := row[b]
	if v == nil {
		return 0, false
	}
	return *v, true
}

type directed struct {
	a, b domain.Protocol
}

// Matchup builds the matrix over universe. Every protocol on the first side is
// paired with every protocol on the second side in both directions, so one
// match adds 18 directional tallies. Pairs with fewer than minGames games stay
// nil, and protocols outside universe get no cells.
func Matchup(matches []domain.Match, universe []domain.Protocol, minGames int) Matrix {
	tally := make(map[directed]Entry)
	bump := func(k directed, won bool) {
		e := tally[k]
		e.Games++
		if won {
			e.Wins++
		}
		tally[k] = e
	}

	for _, m := range matches {
		firstWin := m.Winner == domain.WinnerFirst
		secondWin := m.Winner == domain.WinnerSecond
		for _, lp := range m.First {
			for _, rp := range m.Second {
				bump(directed{lp, rp}, firstWin)
				bump(directed{rp, lp}, secondWin)
			}
		}
	}

	mx := make(Matrix, len(universe))
	for _, a := range universe {
		row := make(map[domain.Protocol]*float64, len(universe))
		for _, b := range universe {
			row[b] = nil
		}
		mx[a] = row
	}

	for k, e := range tally {
		row, ok := mx[k.a]
		if !ok {
			continue
		}
		if _, ok := row[k.b]; !ok {
			continue
		}
		if e.Games >= minGames {
			p := Percent(e.Wins, e.Games)
			row[k.b] = &p
		}
	}
	return mx
}
