package power

import (
	"github.com/udisondev/emberfall/internal/model"
)

// ModifierMode selects how a power modifier combines with the hazard's value.
type ModifierMode int

const (
	ModeNone     ModifierMode = iota
	ModeMultiply              // value is a percent of the original
	ModeAdd                   // value is added to the original
	ModeAbsolute              // value replaces the original
)

// ParseModifierMode converts a config name into a ModifierMode.
func ParseModifierMode(name string) ModifierMode {
	switch name {
	case "multiply":
		return ModeMultiply
	case "add":
		return ModeAdd
	case "absolute":
		return ModeAbsolute
	default:
		return ModeNone
	}
}

// Apply combines v with the modifier.
func (m ModifierMode) Apply(v, value int) int {
	switch m {
	case ModeMultiply:
		return v * value / 100
	case ModeAdd:
		return v + value
	case ModeAbsolute:
		return value
	default:
		return v
	}
}

// EffectDef is an effect a power applies on hit.
type EffectDef struct {
	ID        string
	Type      model.EffectType
	Magnitude int
	Stat      model.Stat
	Duration  int
}

// Instance builds the active effect granted by the definition.
func (d EffectDef) Instance(src model.SourceType) model.Effect {
	return model.Effect{
		ID:        d.ID,
		Type:      d.Type,
		Magnitude: d.Magnitude,
		Stat:      d.Stat,
		Duration:  d.Duration,
		Ticks:     d.Duration,
		Source:    src,
	}
}

// Power is a static offensive-effect definition.
type Power struct {
	ID   int
	Name string

	// TargetCategories restricts non-hero targets to those carrying one of these tags.
	TargetCategories []string

	ModAccuracyMode  ModifierMode
	ModAccuracyValue int

	ModDamageMode     ModifierMode
	ModDamageValueMin int
	ModDamageValueMax int

	ModCritMode  ModifierMode
	ModCritValue int

	Beacon                bool
	NoAggro               bool
	IgnoreZeroDamage      bool
	TraitAvoidanceIgnore  bool
	TraitArmorPenetration bool
	TraitCritsImpaired    int
	Element               int // model.ElementNone if none

	// Hazard shape
	Missile                  bool
	WallsBlockAOE            bool
	TargetMovementNormal     bool
	TargetMovementFlying     bool
	TargetMovementIntangible bool
	Lifespan                 int
	Speed                    float32
	HPSteal                  int
	MPSteal                  int

	RemoveEffects []string
	PostEffects   []EffectDef // applied to the target on hit
	BuffEffects   []EffectDef // applied to the source on hit

	PostPower       int
	PostPowerChance int
}

// AllowsTarget reports whether a non-hero with the given categories can be hit.
func (p *Power) AllowsTarget(categories []string) bool {
	if len(p.TargetCategories) == 0 {
		return true
	}
	for _, c := range categories {
		for _, want := range p.TargetCategories {
			if c == want {
				return true
			}
		}
	}
	return false
}
