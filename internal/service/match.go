package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/csvio"
	"protocol-tracker/internal/domain"
	"protocol-tracker/internal/repository"
	"protocol-tracker/internal/stats"

	"github.com/rs/zerolog"
)

// ChangeNotifier is told about every change to a season's match collection.
type ChangeNotifier interface {
	MatchesChanged(season string, count int)
}

type AddMatchInput struct {
	First     []string
	Second    []string
	Winner    string
	MatchDate string
}

type ImportReport struct {
	Imported int
	Rejected []csvio.RowError
}

type MatchService struct {
	matchRepo *repository.MatchRepository
	seasons   *SeasonService
	notifier  ChangeNotifier
	logger    zerolog.Logger
	now       func() time.Time
	maxImport int64
}

func NewMatchService(matchRepo *repository.MatchRepository, seasons *SeasonService, notifier ChangeNotifier, logger zerolog.Logger) *MatchService {
	return &MatchService{matchRepo: matchRepo, seasons: seasons, notifier: notifier, logger: logger, now: time.Now, maxImport: constants.MaxImportBytes}
}

func (s *MatchService) openSeason(name string) (domain.Season, error) {
	season, err := s.seasons.Get(name)
	if err != nil {
		return domain.Season{}, err
	}
	if season.Closed {
		return domain.Season{}, fmt.Errorf("%w: %q", ErrRegistrationClosed, name)
	}
	return season, nil
}

// Add registers one match. Protocols and winner go through the same
// validation as an imported CSV row; a match date that is present but
// unreadable is rejected rather than dropped.
func (s *MatchService) Add(ctx context.Context, seasonName string, in AddMatchInput) (domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	season, err := s.openSeason(seasonName)
	if err != nil {
		return domain.Match{}, err
	}

	if len(in.First) != 3 || len(in.Second) != 3 {
		return domain.Match{}, fmt.Errorf("%w: each side needs exactly 3 protocols", ErrInvalidMatch)
	}

	record := make([]string, 0, csvio.MinFields+1)
	record = append(record, in.First...)
	record = append(record, in.Second...)
	record = append(record, in.Winner, in.MatchDate)

	payload, ok := csvio.ParseRow(record, season.Protocols, season.Weights, season.MaxRatio)
	if !ok {
		return domain.Match{}, fmt.Errorf("%w: unknown protocol or winner for season %q", ErrInvalidMatch, season.Name)
	}
	if in.MatchDate != "" && payload.MatchDate == nil {
		return domain.Match{}, fmt.Errorf("%w: unreadable match date %q", ErrInvalidMatch, in.MatchDate)
	}

	match := payload.ToMatch("", season.Name, s.now())
	if err := s.matchRepo.Insert(ctx, &match); err != nil {
		s.logger.Error().Err(err).Str("season", season.Name).Msg("failed to store match")
		return domain.Match{}, fmt.Errorf("failed to store match: %w", err)
	}

	s.logger.Info().
		Str("season", season.Name).
		Str("match_id", match.ID).
		Bool("ratio", match.Ratio).
		Msg("match registered")

	s.notify(ctx, season.Name)
	return match, nil
}

// Import parses a CSV document and stores every valid row in one transaction.
func (s *MatchService) Import(ctx context.Context, seasonName string, r io.Reader) (ImportReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	season, err := s.openSeason(seasonName)
	if err != nil {
		return ImportReport{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxImport+1))
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: failed to read csv: %w", ErrInvalidMatch, err)
	}
	if int64(len(data)) > s.maxImport {
		return ImportReport{}, fmt.Errorf("%w: csv exceeds %d bytes", ErrInvalidMatch, s.maxImport)
	}

	parsed, err := csvio.Import(bytes.NewReader(data), season)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: %v", ErrInvalidMatch, err)
	}

	for _, rej := range parsed.Rejected {
		s.logger.Warn().Str("season", season.Name).Int("line", rej.Line).Str("raw", rej.Raw).Msg("rejected csv row")
	}

	createdAt := s.now()
	matches := make([]domain.Match, len(parsed.Payloads))
	for i, p := range parsed.Payloads {
		matches[i] = p.ToMatch("", season.Name, createdAt)
	}

	if err := s.matchRepo.InsertBatch(ctx, matches); err != nil {
		s.logger.Error().Err(err).Str("season", season.Name).Msg("failed to import matches")
		return ImportReport{}, fmt.Errorf("failed to import matches: %w", err)
	}

	s.logger.Info().
		Str("season", season.Name).
		Int("imported", len(matches)).
		Int("rejected", len(parsed.Rejected)).
		Msg("csv import finished")

	if len(matches) > 0 {
		s.notify(ctx, season.Name)
	}
	return ImportReport{Imported: len(matches), Rejected: parsed.Rejected}, nil
}

// Export writes the season's matches as CSV, newest first. Closed seasons can
// still be exported.
func (s *MatchService) Export(ctx context.Context, seasonName string, w io.Writer) (int, error) {
	matches, err := s.List(ctx, seasonName)
	if err != nil {
		return 0, err
	}
	if err := csvio.Export(w, matches); err != nil {
		return 0, fmt.Errorf("failed to write csv: %w", err)
	}
	return len(matches), nil
}

func (s *MatchService) Remove(ctx context.Context, seasonName, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	season, err := s.seasons.Get(seasonName)
	if err != nil {
		return err
	}

	match, err := s.matchRepo.Get(ctx, season.Name, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrMatchNotFound, id)
		}
		return err
	}

	if err := s.matchRepo.Delete(ctx, season.Name, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrMatchNotFound, id)
		}
		return err
	}

	s.logger.Info().
		Str("season", season.Name).
		Str("match_id", id).
		Strs("first", match.First.Strings()).
		Strs("second", match.Second.Strings()).
		Str("winner", string(match.Winner)).
		Bool("ratio", match.Ratio).
		Msg("match removed")
	s.notify(ctx, season.Name)
	return nil
}

// List returns the season's matches ordered newest first.
func (s *MatchService) List(ctx context.Context, seasonName string) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	season, err := s.seasons.Get(seasonName)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListBySeason(ctx, season.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return stats.SortMatches(matches), nil
}

func (s *MatchService) notify(ctx context.Context, season string) {
	if s.notifier == nil {
		return
	}
	count, err := s.matchRepo.Count(ctx, season)
	if err != nil {
		s.logger.Warn().Err(err).Str("season", season).Msg("failed to count matches for notification")
		return
	}
	s.notifier.MatchesChanged(season, count)
}
