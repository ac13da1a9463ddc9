package roster

import (
	"fmt"
	"strings"

	"protocol-tracker/internal/domain"

	"github.com/spf13/viper"
)

const DefaultMaxRatio = 8

type SeasonConfig struct {
	Name        string         `mapstructure:"name"`
	ProtocolSet string         `mapstructure:"protocol_set"`
	RatioSet    string         `mapstructure:"ratio_set"`
	MaxRatio    int            `mapstructure:"max_ratio"`
	Closed      bool           `mapstructure:"closed"`
	Weights     map[string]int `mapstructure:"weights"`
}

// DefaultSeasons lists the built-in seasons, newest first. The first entry is
// the default season.
var DefaultSeasons = []SeasonConfig{
	{Name: "compile_season1_aux", ProtocolSet: SetV1Aux, RatioSet: RatioV1, MaxRatio: DefaultMaxRatio},
	{Name: "compile_season1", ProtocolSet: SetV1, RatioSet: RatioV1, MaxRatio: DefaultMaxRatio, Closed: true},
}

// Catalog resolves season names to fully expanded seasons.
type Catalog struct {
	seasons  []domain.Season
	byName   map[string]int
	universe []domain.Protocol
}

func NewCatalog(defs []SeasonConfig) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("no seasons configured")
	}

	c := &Catalog{byName: make(map[string]int, len(defs))}
	for _, def := range defs {
		season, err := def.resolve()
		if err != nil {
			return nil, err
		}
		if _, dup := c.byName[season.Name]; dup {
			return nil, fmt.Errorf("duplicate season %q", season.Name)
		}
		c.byName[season.Name] = len(c.seasons)
		c.seasons = append(c.seasons, season)
	}

	seen := make(map[domain.Protocol]bool)
	for _, p := range All() {
		seen[p] = true
		c.universe = append(c.universe, p)
	}
	for _, season := range c.seasons {
		for _, p := range season.Protocols {
			if !seen[p] {
				seen[p] = true
				c.universe = append(c.universe, p)
			}
		}
	}
	return c, nil
}

// LoadCatalog reads season definitions from path, or uses the built-in seasons when
// path is empty. Any format viper understands (yaml, toml, json) is accepted.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultSeasons)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read seasons file: %w", err)
	}

	var defs []SeasonConfig
	if err := v.UnmarshalKey("seasons", &defs); err != nil {
		return nil, fmt.Errorf("failed to decode seasons: %w", err)
	}
	return NewCatalog(defs)
}

func (c *Catalog) Get(name string) (domain.Season, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Season{}, false
	}
	return c.seasons[i], true
}

// Universe is the full protocol roster, in roster order, that matchup
// matrices cover regardless of which season they are built for.
func (c *Catalog) Universe() []domain.Protocol {
	out := make([]domain.Protocol, len(c.universe))
	copy(out, c.universe)
	return out
}

func (c *Catalog) Default() domain.Season {
	return c.seasons[0]
}

func (c *Catalog) All() []domain.Season {
	out := make([]domain.Season, len(c.seasons))
	copy(out, c.seasons)
	return out
}

func (s SeasonConfig) resolve() (domain.Season, error) {
	if s.Name == "" {
		return domain.Season{}, fmt.Errorf("season without name")
	}

	setName := s.ProtocolSet
	if setName == "" {
		setName = Latest
	}
	protocols, ok := Sets[strings.ToUpper(setName)]
	if !ok {
		return domain.Season{}, fmt.Errorf("season %q: unknown protocol set %q", s.Name, setName)
	}

	weights := domain.WeightTable{}
	if s.RatioSet != "" {
		base, ok := WeightSets[strings.ToUpper(s.RatioSet)]
		if !ok {
			return domain.Season{}, fmt.Errorf("season %q: unknown ratio set %q", s.Name, s.RatioSet)
		}
		for p, w := range base {
			weights[p] = w
		}
	}
	// viper lower-cases map keys
	for p, w := range s.Weights {
		weights[domain.Protocol(strings.ToUpper(p))] = w
	}

	maxRatio := s.MaxRatio
	if maxRatio == 0 {
		maxRatio = DefaultMaxRatio
	}

	return domain.Season{
		Name:        s.Name,
		ProtocolSet: strings.ToUpper(setName),
		Protocols:   protocols,
		Weights:     weights,
		MaxRatio:    maxRatio,
		Closed:      s.Closed,
	}, nil
}
