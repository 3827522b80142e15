package strategy

import (
	"github.com/pkg/errors"

	"github.com/Dev9710/bot-market/internal/model"
)

// Range is a numeric interval. Min is inclusive; Max of 0 leaves the range open.
type Range struct {
	Min          float64 `yaml:"min"`
	Max          float64 `yaml:"max"`
	MaxExclusive bool    `yaml:"max_exclusive"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	if r.Max <= 0 {
		return true
	}
	if r.MaxExclusive {
		return v < r.Max
	}
	return v <= r.Max
}

// ZoneProfile describes the statistically best region of one network.
type ZoneProfile struct {
	Name            string  `yaml:"name"`
	Volume          Range   `yaml:"volume"`
	Liquidity       Range   `yaml:"liquidity"`
	MinScore        float64 `yaml:"min_score"`
	MaxAgeMinutes   float64 `yaml:"max_age_minutes"`
	MinAcceleration float64 `yaml:"min_acceleration"`
	Performance     string  `yaml:"performance"`
	WinRate         string  `yaml:"win_rate"`
	AvgGain         string  `yaml:"avg_gain"`
}

// Targets holds base take-profit gains in percent.
type Targets struct {
	TP1 float64 `yaml:"tp1"`
	TP2 float64 `yaml:"tp2"`
	TP3 float64 `yaml:"tp3"`
}

// Rules are the static tables the engine reads.
type Rules struct {
	NetworkPoints        map[model.Network]int         `yaml:"network_points"`
	DefaultNetworkPoints int                           `yaml:"default_network_points"`
	Zones                map[model.Network]ZoneProfile `yaml:"zones"`
	BaseTargets          map[model.Network]Targets     `yaml:"base_targets"`
	FallbackTargets      Targets                       `yaml:"fallback_targets"`
}

// DefaultRules returns the tables derived from the historical alert study.
func DefaultRules() *Rules {
	return &Rules{
		NetworkPoints: map[model.Network]int{
			model.NetworkSolana:   25,
			model.NetworkBase:     20,
			model.NetworkETH:      18,
			model.NetworkBSC:      15,
			model.NetworkArbitrum: 12,
		},
		DefaultNetworkPoints: 10,
		Zones: map[model.Network]ZoneProfile{
			model.NetworkSolana: {
				Name:            "SOLANA optimal zone",
				Volume:          Range{Min: 1_000_000, Max: 5_000_000},
				Liquidity:       Range{Max: 200_000, MaxExclusive: true},
				MinScore:        70,
				MaxAgeMinutes:   5,
				MinAcceleration: 5,
				Performance:     "130.9 alerts/token",
				WinRate:         "95%+",
				AvgGain:         "+13% to +59%",
			},
			model.NetworkBase: {
				Name:            "BASE high quality",
				Volume:          Range{Min: 100_000, Max: 500_000},
				Liquidity:       Range{Min: 100_000, Max: 500_000},
				MinScore:        85,
				MaxAgeMinutes:   30,
				MinAcceleration: 5,
				Performance:     "139.3 alerts/token",
				WinRate:         "90%+",
				AvgGain:         "+16.5%",
			},
			model.NetworkETH: {
				Name:            "ETH large gains",
				Volume:          Range{Min: 200_000, Max: 500_000},
				Liquidity:       Range{Min: 100_000, Max: 500_000},
				MinScore:        85,
				MaxAgeMinutes:   360,
				MinAcceleration: 4,
				Performance:     "4.7 alerts/token",
				WinRate:         "60-70%",
				AvgGain:         "+59%",
			},
			model.NetworkBSC: {
				Name:            "BSC standard",
				Volume:          Range{Max: 100_000, MaxExclusive: true},
				Liquidity:       Range{Min: 100_000, Max: 500_000},
				MinScore:        70,
				MaxAgeMinutes:   5,
				MinAcceleration: 4,
				Performance:     "2.1 alerts/token",
				WinRate:         "70-80%",
				AvgGain:         "+27%",
			},
			model.NetworkArbitrum: {
				Name:            "ARBITRUM",
				Volume:          Range{Min: 100_000},
				Liquidity:       Range{Min: 50_000},
				MinScore:        70,
				MaxAgeMinutes:   30,
				MinAcceleration: 4,
				Performance:     "variable",
				WinRate:         "70%+",
				AvgGain:         "+13.2%",
			},
		},
		BaseTargets: map[model.Network]Targets{
			model.NetworkSolana:   {TP1: 7, TP2: 15, TP3: 30},
			model.NetworkETH:      {TP1: 15, TP2: 40, TP3: 80},
			model.NetworkBase:     {TP1: 8, TP2: 18, TP3: 35},
			model.NetworkBSC:      {TP1: 10, TP2: 25, TP3: 50},
			model.NetworkArbitrum: {TP1: 5, TP2: 12, TP3: 20},
		},
		FallbackTargets: Targets{TP1: 5, TP2: 12, TP3: 20},
	}
}

// Validate checks that every table is usable by the engine.
func (r *Rules) Validate() error {
	if r.DefaultNetworkPoints < 0 {
		return errors.New("default_network_points must not be negative")
	}
	for n, p := range r.NetworkPoints {
		if !n.Known() {
			return errors.Errorf("network_points: unknown network %q", n)
		}
		if p < 0 {
			return errors.Errorf("network_points.%s must not be negative", n)
		}
	}
	for n, z := range r.Zones {
		if !n.Known() {
			return errors.Errorf("zones: unknown network %q", n)
		}
		if z.Volume.Max > 0 && z.Volume.Max < z.Volume.Min {
			return errors.Errorf("zones.%s.volume: max below min", n)
		}
		if z.Liquidity.Max > 0 && z.Liquidity.Max < z.Liquidity.Min {
			return errors.Errorf("zones.%s.liquidity: max below min", n)
		}
		if z.MaxAgeMinutes <= 0 {
			return errors.Errorf("zones.%s.max_age_minutes must be positive", n)
		}
	}
	for n, t := range r.BaseTargets {
		if !n.Known() {
			return errors.Errorf("base_targets: unknown network %q", n)
		}
		if err := t.validate(); err != nil {
			return errors.Wrapf(err, "base_targets.%s", n)
		}
	}
	if err := r.FallbackTargets.validate(); err != nil {
		return errors.Wrap(err, "fallback_targets")
	}
	return nil
}

func (t Targets) validate() error {
	if t.TP1 <= 0 || t.TP2 <= 0 || t.TP3 <= 0 {
		return errors.New("targets must be positive")
	}
	if t.TP1 > t.TP2 || t.TP2 > t.TP3 {
		return errors.New("targets must be ascending")
	}
	return nil
}

func (r *Rules) networkPoints(n model.Network) int {
	if p, ok := r.NetworkPoints[n]; ok {
		return p
	}
	return r.DefaultNetworkPoints
}

func (r *Rules) baseTargets(n model.Network) Targets {
	if t, ok := r.BaseTargets[n]; ok {
		return t
	}
	return r.FallbackTargets
}
