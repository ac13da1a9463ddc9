package stats

import "sort"

type Row struct {
	Name       string  `json:"name"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinPercent float64 `json:"winPercent"`
}

type Thresholds struct {
	MinPair   int
	MinTrio   int
	MinMatrix int
}

func (t Thresholds) min(k Kind) int {
	switch k {
	case KindPair:
		return t.MinPair
	case KindTrio:
		return t.MinTrio
	}
	return 0
}

// Rows turns a grouping into display rows, dropping pair and trio rows below
// their minimum game count. Rows are ordered by win percent descending, then
// games descending, then name ascending.
func Rows(g Grouping, kind Kind, th Thresholds) []Row {
	min := th.min(kind)

	out := make([]Row, 0, len(g))
	for name, e := range g {
		if e.Games < min {
			continue
		}
		out = append(out, Row{
			Name:       name,
			Games:      e.Games,
			Wins:       e.Wins,
			Losses:     e.Games - e.Wins,
			WinPercent: Percent(e.Wins, e.Games),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.WinPercent != b.WinPercent {
			return a.WinPercent > b.WinPercent
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.Name < b.Name
	})
	return out
}
