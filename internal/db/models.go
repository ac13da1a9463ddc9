package db

import (
	"time"
)

type Match struct {
	ID        string
	Season    string
	First1    string
	First2    string
	First3    string
	Second1   string
	Second2   string
	Second3   string
	Winner    string
	Ratio     bool
	MatchDate *time.Time
	CreatedAt time.Time
}
