package db

import (
	"context"
	"time"
)

const insertMatch = `-- name: InsertMatch :exec
INSERT INTO matches (
    id, season, first1, first2, first3, second1, second2, second3,
    winner, ratio, match_date, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertMatchParams struct {
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

func (q *Queries) InsertMatch(ctx context.Context, arg InsertMatchParams) error {
	_, err := q.db.ExecContext(ctx, insertMatch,
		arg.ID,
		arg.Season,
		arg.First1,
		arg.First2,
		arg.First3,
		arg.Second1,
		arg.Second2,
		arg.Second3,
		arg.Winner,
		arg.Ratio,
		arg.MatchDate,
		arg.CreatedAt,
	)
	return err
}

const deleteMatch = `-- name: DeleteMatch :execrows
DELETE FROM matches WHERE season = ? AND id = ?
`

type DeleteMatchParams struct {
	Season string
	ID     string
}

func (q *Queries) DeleteMatch(ctx context.Context, arg DeleteMatchParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMatch, arg.Season, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listMatchesBySeason = `-- name: ListMatchesBySeason :many
SELECT id, season, first1, first2, first3, second1, second2, second3,
       winner, ratio, match_date, created_at
FROM matches
WHERE season = ?
ORDER BY created_at, id
`

func (q *Queries) ListMatchesBySeason(ctx context.Context, season string) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesBySeason, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.Season,
			&i.First1,
			&i.First2,
			&i.First3,
			&i.Second1,
			&i.Second2,
			&i.Second3,
			&i.Winner,
			&i.Ratio,
			&i.MatchDate,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMatch = `-- name: GetMatch :one
SELECT id, season, first1, first2, first3, second1, second2, second3,
       winner, ratio, match_date, created_at
FROM matches
WHERE season = ? AND id = ?
`

type GetMatchParams struct {
	Season string
	ID     string
}

func (q *Queries) GetMatch(ctx context.Context, arg GetMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, arg.Season, arg.ID)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.Season,
		&i.First1,
		&i.First2,
		&i.First3,
		&i.Second1,
		&i.Second2,
		&i.Second3,
		&i.Winner,
		&i.Ratio,
		&i.MatchDate,
		&i.CreatedAt,
	)
	return i, err
}

const countMatchesBySeason = `-- name: CountMatchesBySeason :one
SELECT COUNT(*) FROM matches WHERE season = ?
`

func (q *Queries) CountMatchesBySeason(ctx context.Context, season string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMatchesBySeason, season)
	var count int64
	err := row.Scan(&count)
	return count, err
}
