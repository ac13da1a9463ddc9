package csvio

import (
	"strings"
	"time"

	"protocol-tracker/internal/domain"
	"protocol-tracker/internal/roster"
)

// MinFields is F1..F3, S1..S3 and the winner.
const MinFields = 7

var dateLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006-1-2 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006",
}

// ParseRow validates one CSV row [F1,F2,F3,S1,S2,S3,Winner,(MatchDate)] and
// converts it to a payload. Fields are trimmed and upper-cased. It reports
// false when the row is too short, names a protocol outside valid, or has an
// unknown winner token. An unparseable date only clears MatchDate.
//
// Repeated protocols within or across trios are not checked here.
func ParseRow(row []string, valid []domain.Protocol, weights domain.WeightTable, maxRatio int) (domain.MatchPayload, bool) {
	if len(row) < MinFields {
		return domain.MatchPayload{}, false
	}

	fields := make([]string, len(row))
	for i, f := range row {
		fields[i] = strings.ToUpper(strings.TrimSpace(f))
	}

	allowed := make(map[domain.Protocol]struct{}, len(valid))
	for _, p := range valid {
		allowed[p] = struct{}{}
	}

	protocols := make([]domain.Protocol, 6)
	for i := 0; i < 6; i++ {
		p := domain.Protocol(fields[i])
		if _, ok := allowed[p]; !ok {
			return domain.MatchPayload{}, false
		}
		protocols[i] = p
	}

	var winner domain.Winner
	switch domain.Winner(fields[6]) {
	case domain.WinnerFirst:
		winner = domain.WinnerFirst
	case domain.WinnerSecond:
		winner = domain.WinnerSecond
	default:
		return domain.MatchPayload{}, false
	}

	first := domain.Trio{protocols[0], protocols[1], protocols[2]}
	second := domain.Trio{protocols[3], protocols[4], protocols[5]}

	var matchDate *time.Time
	if len(fields) > 7 {
		matchDate = ParseDate(fields[7])
	}

	return domain.MatchPayload{
		First:     first,
		Second:    second,
		Winner:    winner,
		Ratio:     roster.IsRatioBattle(first, second, weights, maxRatio),
		MatchDate: matchDate,
	}, true
}

// isoDateLayout is the zero-padded date-only form, read as UTC midnight.
const isoDateLayout = "2006-01-02"

// ParseDate reads a date. RFC 3339 keeps its own zone and a zero-padded
// YYYY-MM-DD is UTC midnight; every other layout is local time. Empty or
// unrecognised input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse(isoDateLayout, s); err == nil {
		return &t
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
