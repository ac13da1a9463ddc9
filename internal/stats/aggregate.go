package stats

import (
	"protocol-tracker/internal/domain"
)

type Entry struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

// Grouping maps a key (protocol or combo key) to its tallies.
type Grouping map[string]Entry

func (g Grouping) bump(key string, won bool) {
	e := g[key]
	e.Games++
	if won {
		e.Wins++
	}
	g[key] = e
}

type Kind string

const (
	KindSingle Kind = "single"
	KindPair   Kind = "pair"
	KindTrio   Kind = "trio"
	KindFirst  Kind = "first"
	KindSecond Kind = "second"
)

var Kinds = []Kind{KindSingle, KindPair, KindTrio, KindFirst, KindSecond}

type Result struct {
	Single Grouping `json:"single"`
	Pair   Grouping `json:"pair"`
	Trio   Grouping `json:"trio"`
	First  Grouping `json:"first"`
	Second Grouping `json:"second"`
}

func (r Result) Grouping(k Kind) Grouping {
	switch k {
	case KindSingle:
		return r.Single
	case KindPair:
		return r.Pair
	case KindTrio:
		return r.Trio
	case KindFirst:
		return r.First
	case KindSecond:
		return r.Second
	}
	return nil
}

// Aggregate tallies games and wins for every side of every match across the
// five groupings. Matches whose trios are not exactly three long are skipped.
//
// A protocol repeated inside a trio is counted once per occurrence, and pair
// and trio keys are formed from the trio as entered, duplicates included.
func Aggregate(matches []domain.Match) Result {
	r := Result{
		Single: Grouping{},
		Pair:   Grouping{},
		Trio:   Grouping{},
		First:  Grouping{},
		Second: Grouping{},
	}

	for _, m := range matches {
		if !m.First.Valid() || !m.Second.Valid() {
			continue
		}

		r.addSide(m.First, m.Winner == domain.WinnerFirst, r.First)
		r.addSide(m.Second, m.Winner == domain.WinnerSecond, r.Second)
	}
	return r
}

func (r Result) addSide(t domain.Trio, won bool, slot Grouping) {
	for _, p := range t {
		r.Single.bump(string(p), won)
		slot.bump(string(p), won)
	}

	for i := 0; i < len(t); i++ {
		for j := i + 1; j < len(t); j++ {
			r.Pair.bump(ComboKey(t[i], t[j]), won)
		}
	}

	r.Trio.bump(ComboKey(t...), won)
}

// Skipped counts matches Aggregate ignores.
func Skipped(matches []domain.Match) int {
	n := 0
	for _, m := range matches {
		if !m.First.Valid() || !m.Second.Valid() {
			n++
		}
	}
	return n
}
