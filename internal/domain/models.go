package domain

import (
	"strings"
	"time"
)

// Protocol is one selectable entity of a roster set, e.g. "FIRE".
type Protocol string

// Trio is one side's roster for a single battle. It is a slice rather than an
// array so that malformed stored records can be detected and skipped.
type Trio []Protocol

func (t Trio) Valid() bool {
	return len(t) == 3
}

func (t Trio) Strings() []string {
	out := make([]string, len(t))
	for i, p := range t {
		out[i] = string(p)
	}
	return out
}

type Winner string

const (
	WinnerFirst  Winner = "FIRST"
	WinnerSecond Winner = "SECOND"
)

// ParseWinner accepts the two winner tokens case-insensitively.
func ParseWinner(s string) (Winner, bool) {
	switch Winner(strings.ToUpper(strings.TrimSpace(s))) {
	case WinnerFirst:
		return WinnerFirst, true
	case WinnerSecond:
		return WinnerSecond, true
	}
	return "", false
}

type Match struct {
	ID        string
	Season    string
	First     Trio
	Second    Trio
	Winner    Winner
	Ratio     bool // fixed at creation, never reclassified
	CreatedAt time.Time
	MatchDate *time.Time
}

// MatchPayload is a match before it has been assigned an id and a registration time.
type MatchPayload struct {
	First     Trio
	Second    Trio
	Winner    Winner
	Ratio     bool
	MatchDate *time.Time
}

func (p MatchPayload) ToMatch(id, season string, createdAt time.Time) Match {
	return Match{
		ID:        id,
		Season:    season,
		First:     p.First,
		Second:    p.Second,
		Winner:    p.Winner,
		Ratio:     p.Ratio,
		CreatedAt: createdAt,
		MatchDate: p.MatchDate,
	}
}

// WeightTable maps a protocol to its ratio weight. Missing entries weigh 0.
type WeightTable map[Protocol]int

type Season struct {
	Name        string
	ProtocolSet string
	Protocols   []Protocol
	Weights     WeightTable
	MaxRatio    int
	Closed      bool
}

func (s Season) Has(p Protocol) bool {
	for _, sp := range s.Protocols {
		if sp == p {
			return true
		}
	}
	return false
}
