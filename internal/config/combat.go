package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRange is returned by Validate for an inverted min/max pair.
var ErrInvalidRange = errors.New("invalid range")

// Combat holds the engine-wide combat tunables. All values are percents
// except MaxFramesPerSec.
type Combat struct {
	MinAvoidance int `yaml:"min_avoidance"`
	MaxAvoidance int `yaml:"max_avoidance"`

	MinAbsorb int `yaml:"min_absorb"`
	MaxAbsorb int `yaml:"max_absorb"`

	MinBlock int `yaml:"min_block"`
	MaxBlock int `yaml:"max_block"`

	MinResist int `yaml:"min_resist"`
	MaxResist int `yaml:"max_resist"`

	MinCritDamage int `yaml:"min_crit_damage"`
	MaxCritDamage int `yaml:"max_crit_damage"`

	MinOverhitDamage int `yaml:"min_overhit_damage"`
	MaxOverhitDamage int `yaml:"max_overhit_damage"`

	MinMissDamage int `yaml:"min_miss_damage"`
	MaxMissDamage int `yaml:"max_miss_damage"`

	MaxFramesPerSec int `yaml:"max_frames_per_sec"`
}

// DefaultCombat returns Combat with the stock engine values:
// crits double damage, misses deal nothing.
func DefaultCombat() Combat {
	return Combat{
		MinAvoidance:     0,
		MaxAvoidance:     99,
		MinAbsorb:        0,
		MaxAbsorb:        90,
		MinBlock:         0,
		MaxBlock:         100,
		MinResist:        0,
		MaxResist:        90,
		MinCritDamage:    200,
		MaxCritDamage:    200,
		MinOverhitDamage: 100,
		MaxOverhitDamage: 100,
		MinMissDamage:    0,
		MaxMissDamage:    0,
		MaxFramesPerSec:  60,
	}
}

// Validate checks that every min/max pair is ordered.
func (c Combat) Validate() error {
	pairs := []struct {
		name     string
		min, max int
	}{
		{"avoidance", c.MinAvoidance, c.MaxAvoidance},
		{"absorb", c.MinAbsorb, c.MaxAbsorb},
		{"block", c.MinBlock, c.MaxBlock},
		{"resist", c.MinResist, c.MaxResist},
		{"crit_damage", c.MinCritDamage, c.MaxCritDamage},
		{"overhit_damage", c.MinOverhitDamage, c.MaxOverhitDamage},
		{"miss_damage", c.MinMissDamage, c.MaxMissDamage},
	}
	for _, p := range pairs {
		if p.min > p.max {
			return fmt.Errorf("%w: %s %d > %d", ErrInvalidRange, p.name, p.min, p.max)
		}
	}
	if c.MaxFramesPerSec <= 0 {
		return fmt.Errorf("%w: max_frames_per_sec %d", ErrInvalidRange, c.MaxFramesPerSec)
	}
	return nil
}

// LoadCombat loads combat tunables from a standalone YAML file.
// If the file doesn't exist, returns defaults.
func LoadCombat(path string) (Combat, error) {
	cfg := DefaultCombat()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading combat config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing combat config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("combat config %s: %w", path, err)
	}

	return cfg, nil
}
