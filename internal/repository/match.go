package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/db"
	"protocol-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("match not found")

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Insert stores a match, assigning a nanoid when it has no id yet.
func (r *MatchRepository) Insert(ctx context.Context, match *domain.Match) error {
	params, err := toParams(match)
	if err != nil {
		return err
	}
	if err := r.queries.InsertMatch(ctx, params); err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	match.ID = params.ID
	return nil
}

// InsertBatch stores all matches in one transaction.
func (r *MatchRepository) InsertBatch(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matches) {
			end = len(matches)
		}

		for j := i; j < end; j++ {
			params, err := toParams(&matches[j])
			if err != nil {
				return err
			}
			if err := qtx.InsertMatch(ctx, params); err != nil {
				return fmt.Errorf("failed to insert match %s: %w", params.ID, err)
			}
			matches[j].ID = params.ID
		}

		r.logger.Debug().Int("from", i).Int("to", end).Msg("inserted match batch")
	}

	return tx.Commit()
}

func (r *MatchRepository) Delete(ctx context.Context, season, id string) error {
	n, err := r.queries.DeleteMatch(ctx, db.DeleteMatchParams{Season: season, ID: id})
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, season, id string) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, db.GetMatchParams{Season: season, ID: id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m := toDomain(row)
	return &m, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, season string) ([]domain.Match, error) {
	rows, err := r.queries.ListMatchesBySeason(ctx, season)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Match, len(rows))
	for i, row := range rows {
		result[i] = toDomain(row)
	}
	return result, nil
}

func (r *MatchRepository) Count(ctx context.Context, season string) (int, error) {
	n, err := r.queries.CountMatchesBySeason(ctx, season)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func toParams(m *domain.Match) (db.InsertMatchParams, error) {
	if !m.First.Valid() || !m.Second.Valid() {
		return db.InsertMatchParams{}, fmt.Errorf("match %q: trios must have 3 protocols", m.ID)
	}

	id := m.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return db.InsertMatchParams{}, fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	return db.InsertMatchParams{
		ID:        id,
		Season:    m.Season,
		First1:    string(m.First[0]),
		First2:    string(m.First[1]),
		First3:    string(m.First[2]),
		Second1:   string(m.Second[0]),
		Second2:   string(m.Second[1]),
		Second3:   string(m.Second[2]),
		Winner:    string(m.Winner),
		Ratio:     m.Ratio,
		MatchDate: m.MatchDate,
		CreatedAt: m.CreatedAt,
	}, nil
}

func toDomain(row db.Match) domain.Match {
	return domain.Match{
		ID:        row.ID,
		Season:    row.Season,
		First:     domain.Trio{domain.Protocol(row.First1), domain.Protocol(row.First2), domain.Protocol(row.First3)},
		Second:    domain.Trio{domain.Protocol(row.Second1), domain.Protocol(row.Second2), domain.Protocol(row.Second3)},
		Winner:    domain.Winner(row.Winner),
		Ratio:     row.Ratio,
		MatchDate: row.MatchDate,
		CreatedAt: row.CreatedAt,
	}
}
