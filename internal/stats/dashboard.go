package stats

import "protocol-tracker/internal/domain"

type Section struct {
	Stats  Result         `json:"stats"`
	Rows   map[Kind][]Row `json:"rows"`
	Matrix Matrix         `json:"matrix"`
}

// BuildSection runs the aggregator and the matrix builder over one set of
// matches and ranks every grouping.
func BuildSection(matches []domain.Match, universe []domain.Protocol, th Thresholds) Section {
	res := Aggregate(matches)
	return Section{
		Stats:  res,
		Rows:   RankAll(res, th),
		Matrix: Matchup(matches, universe, th.MinMatrix),
	}
}

func RankAll(res Result, th Thresholds) map[Kind][]Row {
	rows := make(map[Kind][]Row, len(Kinds))
	for _, k := range Kinds {
		rows[k] = Rows(res.Grouping(k), k, th)
	}
	return rows
}
