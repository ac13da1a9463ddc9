package service

import (
	"fmt"

	"protocol-tracker/internal/domain"
	"protocol-tracker/internal/roster"
)

type SeasonInfo struct {
	Name          string
	ProtocolSet   string
	Protocols     []domain.Protocol
	Abbreviations map[domain.Protocol]string
	Weights       domain.WeightTable
	RatioGroups   []roster.RatioGroup
	MaxRatio      int
	Closed        bool
	Default       bool
}

type SeasonService struct {
	catalog *roster.Catalog
}

func NewSeasonService(catalog *roster.Catalog) *SeasonService {
	return &SeasonService{catalog: catalog}
}

func (s *SeasonService) Get(name string) (domain.Season, error) {
	season, ok := s.catalog.Get(name)
	if !ok {
		return domain.Season{}, fmt.Errorf("%w: %q", ErrUnknownSeason, name)
	}
	return season, nil
}

func (s *SeasonService) HasSeason(name string) bool {
	_, ok := s.catalog.Get(name)
	return ok
}

// Universe returns every protocol a matchup matrix has rows and columns for.
func (s *SeasonService) Universe() []domain.Protocol {
	return s.catalog.Universe()
}

func (s *SeasonService) List() []SeasonInfo {
	defaultName := s.catalog.Default().Name

	seasons := s.catalog.All()
	out := make([]SeasonInfo, len(seasons))
	for i, season := range seasons {
		abbr := make(map[domain.Protocol]string, len(season.Protocols))
		for _, p := range season.Protocols {
			abbr[p] = roster.Abbr(p)
		}
		out[i] = SeasonInfo{
			Name:          season.Name,
			ProtocolSet:   season.ProtocolSet,
			Protocols:     season.Protocols,
			Abbreviations: abbr,
			Weights:       season.Weights,
			RatioGroups:   roster.Groups(season.Protocols, season.Weights),
			MaxRatio:      season.MaxRatio,
			Closed:        season.Closed,
			Default:       season.Name == defaultName,
		}
	}
	return out
}
