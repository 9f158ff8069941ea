package power

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/emberfall/internal/model"
)

type catalogFile struct {
	Elements []string    `yaml:"elements"`
	Powers   []powerFile `yaml:"powers"`
}

type modifierFile struct {
	Mode  string `yaml:"mode"`
	Value int    `yaml:"value"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
}

type movementFile struct {
	Normal     *bool `yaml:"normal"`
	Flying     *bool `yaml:"flying"`
	Intangible *bool `yaml:"intangible"`
}

type effectFile struct {
	ID        string `yaml:"id"`
	Type      string `yaml:"type"`
	Magnitude int    `yaml:"magnitude"`
	Stat      string `yaml:"stat"`
	Duration  int    `yaml:"duration"`
}

type powerFile struct {
	ID               int      `yaml:"id"`
	Name             string   `yaml:"name"`
	TargetCategories []string `yaml:"target_categories"`

	Modifiers struct {
		Accuracy modifierFile `yaml:"accuracy"`
		Damage   modifierFile `yaml:"damage"`
		Crit     modifierFile `yaml:"crit"`
	} `yaml:"modifiers"`

	Beacon           bool   `yaml:"beacon"`
	NoAggro          bool   `yaml:"no_aggro"`
	IgnoreZeroDamage bool   `yaml:"ignore_zero_damage"`
	AvoidanceIgnore  bool   `yaml:"avoidance_ignore"`
	ArmorPenetration bool   `yaml:"armor_penetration"`
	CritsImpaired    int    `yaml:"crits_impaired"`
	Element          string `yaml:"element"`

	Missile        bool         `yaml:"missile"`
	WallsBlockAOE  bool         `yaml:"walls_block_aoe"`
	TargetMovement movementFile `yaml:"target_movement"`
	Lifespan       int          `yaml:"lifespan"`
	Speed          float32      `yaml:"speed"`
	HPSteal        int          `yaml:"hp_steal"`
	MPSteal        int          `yaml:"mp_steal"`

	RemoveEffects []string     `yaml:"remove_effects"`
	PostEffects   []effectFile `yaml:"post_effects"`
	BuffEffects   []effectFile `yaml:"buff_effects"`

	PostPower       int `yaml:"post_power"`
	PostPowerChance int `yaml:"post_power_chance"`
}

// Parse decodes a YAML power catalog.
func Parse(data []byte) ([]*Power, []string, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing powers: %w", err)
	}

	seen := make(map[int]bool, len(f.Powers))
	powers := make([]*Power, 0, len(f.Powers))
	for _, pf := range f.Powers {
		if pf.ID <= 0 {
			return nil, nil, fmt.Errorf("power %q: id must be positive, got %d", pf.Name, pf.ID)
		}
		if seen[pf.ID] {
			return nil, nil, fmt.Errorf("power %d: duplicate id", pf.ID)
		}
		seen[pf.ID] = true

		p, err := pf.build(f.Elements)
		if err != nil {
			return nil, nil, fmt.Errorf("power %d: %w", pf.ID, err)
		}
		powers = append(powers, p)
	}
	return powers, f.Elements, nil
}

// Load reads a YAML power catalog from path.
func Load(path string) (*Catalog, error) {
	powers, elements, err := readFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("powers loaded", "path", path, "powers", len(powers), "elements", len(elements))
	return NewCatalog(powers, elements), nil
}

func readFile(path string) ([]*Power, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading powers %s: %w", path, err)
	}
	powers, elements, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("loading powers %s: %w", path, err)
	}
	return powers, elements, nil
}

func (pf powerFile) build(elements []string) (*Power, error) {
	p := &Power{
		ID:               pf.ID,
		Name:             pf.Name,
		TargetCategories: pf.TargetCategories,

		ModAccuracyMode:   ParseModifierMode(pf.Modifiers.Accuracy.Mode),
		ModAccuracyValue:  pf.Modifiers.Accuracy.Value,
		ModDamageMode:     ParseModifierMode(pf.Modifiers.Damage.Mode),
		ModDamageValueMin: pf.Modifiers.Damage.Min,
		ModDamageValueMax: pf.Modifiers.Damage.Max,
		ModCritMode:       ParseModifierMode(pf.Modifiers.Crit.Mode),
		ModCritValue:      pf.Modifiers.Crit.Value,

		Beacon:                pf.Beacon,
		NoAggro:               pf.NoAggro,
		IgnoreZeroDamage:      pf.IgnoreZeroDamage,
		TraitAvoidanceIgnore:  pf.AvoidanceIgnore,
		TraitArmorPenetration: pf.ArmorPenetration,
		TraitCritsImpaired:    pf.CritsImpaired,
		Element:               model.ElementNone,

		Missile:                  pf.Missile,
		WallsBlockAOE:            pf.WallsBlockAOE,
		TargetMovementNormal:     boolOr(pf.TargetMovement.Normal, true),
		TargetMovementFlying:     boolOr(pf.TargetMovement.Flying, true),
		TargetMovementIntangible: boolOr(pf.TargetMovement.Intangible, true),
		Lifespan:                 pf.Lifespan,
		Speed:                    pf.Speed,
		HPSteal:                  pf.HPSteal,
		MPSteal:                  pf.MPSteal,

		RemoveEffects:   pf.RemoveEffects,
		PostPower:       pf.PostPower,
		PostPowerChance: pf.PostPowerChance,
	}

	// a damage modifier given as a single value applies to both bounds
	if pf.Modifiers.Damage.Value != 0 && p.ModDamageValueMin == 0 && p.ModDamageValueMax == 0 {
		p.ModDamageValueMin = pf.Modifiers.Damage.Value
		p.ModDamageValueMax = pf.Modifiers.Damage.Value
	}

	if pf.Element != "" {
		idx := -1
		for i, e := range elements {
			if e == pf.Element {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("unknown element %q", pf.Element)
		}
		p.Element = idx
	}

	var err error
	if p.PostEffects, err = buildEffects(pf.PostEffects); err != nil {
		return nil, err
	}
	if p.BuffEffects, err = buildEffects(pf.BuffEffects); err != nil {
		return nil, err
	}
	return p, nil
}

func buildEffects(files []effectFile) ([]EffectDef, error) {
	if len(files) == 0 {
		return nil, nil
	}
	defs := make([]EffectDef, 0, len(files))
	for _, ef := range files {
		t, ok := model.ParseEffectType(ef.Type)
		if !ok {
			return nil, fmt.Errorf("effect %q: unknown type %q", ef.ID, ef.Type)
		}
		d := EffectDef{ID: ef.ID, Type: t, Magnitude: ef.Magnitude, Duration: ef.Duration}
		if t == model.EffectStat {
			s, ok := model.ParseStat(ef.Stat)
			if !ok {
				return nil, fmt.Errorf("effect %q: unknown stat %q", ef.ID, ef.Stat)
			}
			d.Stat = s
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
