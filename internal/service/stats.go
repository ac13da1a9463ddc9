package service

import (
	"context"
	"fmt"
	"sync"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/repository"
	"protocol-tracker/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Dashboard struct {
	Season   string
	Total    int
	Skipped  int
	Sections map[stats.Partition]stats.Section
}

type StatsService struct {
	matchRepo  *repository.MatchRepository
	seasons    *SeasonService
	thresholds stats.Thresholds
	logger     zerolog.Logger
}

func NewStatsService(matchRepo *repository.MatchRepository, seasons *SeasonService, thresholds stats.Thresholds, logger zerolog.Logger) *StatsService {
	return &StatsService{matchRepo: matchRepo, seasons: seasons, thresholds: thresholds, logger: logger}
}

// Dashboard builds the requested partitions of a season's statistics, or all
// of them when none are named. Each partition is computed concurrently.
func (s *StatsService) Dashboard(ctx context.Context, seasonName string, partitions ...stats.Partition) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if len(partitions) == 0 {
		partitions = stats.Partitions
	}
	for _, p := range partitions {
		if _, ok := stats.ParsePartition(string(p)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPartition, p)
		}
	}

	season, err := s.seasons.Get(seasonName)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListBySeason(ctx, season.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	universe := s.seasons.Universe()
	split := stats.Split(matches)
	sections := make(map[stats.Partition]stats.Section, len(partitions))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range partitions {
		subset := split[p]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			section := stats.BuildSection(subset, universe, s.thresholds)
			mu.Lock()
			sections[p] = section
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	skipped := stats.Skipped(matches)
	if skipped > 0 {
		s.logger.Debug().Str("season", season.Name).Int("skipped", skipped).Msg("skipped malformed matches")
	}

	s.logger.Debug().
		Str("season", season.Name).
		Int("matches", len(matches)).
		Int("sections", len(sections)).
		Msg("dashboard computed")

	return &Dashboard{
		Season:   season.Name,
		Total:    len(matches),
		Skipped:  skipped,
		Sections: sections,
	}, nil
}
