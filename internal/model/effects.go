package model

import (
	"log/slog"
	"slices"
)

// EffectType classifies what an active effect does to its holder.
type EffectType int

const (
	EffectDamage EffectType = iota // damage over time, Magnitude per second
	EffectHeal                     // heal over time, Magnitude per second
	EffectStun
	EffectSpeed // Magnitude is a percent of normal speed
	EffectBlock
	EffectImmunityHPSteal
	EffectImmunityMPSteal
	EffectImmunityDamageReflect
	EffectKnockback // Magnitude is hundredths of a tile per frame
	EffectStat      // Magnitude is added to Stat
)

var effectTypeNames = map[string]EffectType{
	"damage":                  EffectDamage,
	"heal":                    EffectHeal,
	"stun":                    EffectStun,
	"speed":                   EffectSpeed,
	"block":                   EffectBlock,
	"immunity_hp_steal":       EffectImmunityHPSteal,
	"immunity_mp_steal":       EffectImmunityMPSteal,
	"immunity_damage_reflect": EffectImmunityDamageReflect,
	"knockback":               EffectKnockback,
	"stat":                    EffectStat,
}

// ParseEffectType looks up an effect type by its config name.
func ParseEffectType(name string) (EffectType, bool) {
	t, ok := effectTypeNames[name]
	return t, ok
}

// Effect is one active status effect.
// Ticks counts down once per frame; Ticks <= 0 with Duration > 0 means expired.
// Duration == 0 marks a permanent effect (removed only explicitly).
type Effect struct {
	ID        string
	Type      EffectType
	Magnitude int
	Stat      Stat // only for EffectStat
	Duration  int
	Ticks     int
	Source    SourceType
}

// IsDebuff reports whether the effect harms its holder.
func (e Effect) IsDebuff() bool {
	switch e.Type {
	case EffectDamage, EffectStun, EffectKnockback:
		return true
	case EffectSpeed:
		return e.Magnitude < 100
	case EffectStat:
		return e.Magnitude < 0
	default:
		return false
	}
}

// EffectManager holds the status-effect set of a StatBlock and the flags derived from it.
// Derived flags are rebuilt on every mutation so they are valid between frames.
//
// Not thread-safe: owned by the game-logic thread for the duration of a tick.
type EffectManager struct {
	effects []Effect

	Stun                  bool
	Speed                 int // percent, 100 = unaffected
	TriggeredBlock        bool
	ImmunityHPSteal       bool
	ImmunityMPSteal       bool
	ImmunityDamageReflect bool
	KnockbackSpeed        float32
	TriggeredDeath        bool

	bonus [StatCount]int
}

// NewEffectManager creates an empty EffectManager.
func NewEffectManager() *EffectManager {
	return &EffectManager{
		effects: make([]Effect, 0, 8),
		Speed:   100,
	}
}

// Add adds an effect. An effect with the same ID and type refreshes the existing
// one instead of stacking.
func (m *EffectManager) Add(e Effect) {
	if e.Duration > 0 && e.Ticks <= 0 {
		e.Ticks = e.Duration
	}
	for i := range m.effects {
		if e.ID != "" && m.effects[i].ID == e.ID && m.effects[i].Type == e.Type {
			m.effects[i] = e
			m.rebuild()
			return
		}
	}
	m.effects = append(m.effects, e)
	m.rebuild()
}

// Effects returns a copy of the active effects.
func (m *EffectManager) Effects() []Effect {
	return slices.Clone(m.effects)
}

// Len returns the number of active effects.
func (m *EffectManager) Len() int {
	return len(m.effects)
}

// RemoveEffectType removes every effect of the given type.
func (m *EffectManager) RemoveEffectType(t EffectType) {
	n := len(m.effects)
	m.effects = slices.DeleteFunc(m.effects, func(e Effect) bool { return e.Type == t })
	if len(m.effects) != n {
		m.rebuild()
	}
}

// RemoveEffectIDs removes every effect whose ID is listed.
func (m *EffectManager) RemoveEffectIDs(ids []string) {
	if len(ids) == 0 {
		return
	}
	n := len(m.effects)
	m.effects = slices.DeleteFunc(m.effects, func(e Effect) bool { return slices.Contains(ids, e.ID) })
	if len(m.effects) != n {
		m.rebuild()
	}
}

// Clear removes all effects.
func (m *EffectManager) Clear() {
	m.effects = m.effects[:0]
	m.rebuild()
}

// IsDebuffed reports whether any active effect is a debuff.
func (m *EffectManager) IsDebuffed() bool {
	for _, e := range m.effects {
		if e.IsDebuff() {
			return true
		}
	}
	return false
}

// Bonus returns the sum of EffectStat magnitudes for s.
func (m *EffectManager) Bonus(s Stat) int {
	if s < 0 || s >= StatCount {
		return 0
	}
	return m.bonus[s]
}

// Logic advances all timed effects by one frame and expires finished ones.
// Returns the damage and healing that fell due this frame; framesPerSec sets
// how often over-time effects pulse.
func (m *EffectManager) Logic(framesPerSec int) (damage, heal int) {
	if framesPerSec <= 0 {
		framesPerSec = 1
	}
	expired := 0
	for i := range m.effects {
		e := &m.effects[i]
		if e.Duration == 0 {
			continue
		}
		e.Ticks--
		if e.Ticks%framesPerSec == 0 {
			switch e.Type {
			case EffectDamage:
				damage += e.Magnitude
			case EffectHeal:
				heal += e.Magnitude
			}
		}
		if e.Ticks <= 0 {
			expired++
		}
	}
	if expired > 0 {
		m.effects = slices.DeleteFunc(m.effects, func(e Effect) bool { return e.Duration > 0 && e.Ticks <= 0 })
		slog.Debug("effects expired", "count", expired)
	}
	m.rebuild()
	return damage, heal
}

func (m *EffectManager) rebuild() {
	m.Stun = false
	m.Speed = 100
	m.TriggeredBlock = false
	m.ImmunityHPSteal = false
	m.ImmunityMPSteal = false
	m.ImmunityDamageReflect = false
	m.KnockbackSpeed = 0
	m.bonus = [StatCount]int{}

	for _, e := range m.effects {
		switch e.Type {
		case EffectStun:
			m.Stun = true
		case EffectSpeed:
			m.Speed = m.Speed * e.Magnitude / 100
		case EffectBlock:
			m.TriggeredBlock = true
		case EffectImmunityHPSteal:
			m.ImmunityHPSteal = true
		case EffectImmunityMPSteal:
			m.ImmunityMPSteal = true
		case EffectImmunityDamageReflect:
			m.ImmunityDamageReflect = true
		case EffectKnockback:
			m.KnockbackSpeed = float32(e.Magnitude) / 100
		case EffectStat:
			if e.Stat >= 0 && e.Stat < StatCount {
				m.bonus[e.Stat] += e.Magnitude
			}
		}
	}
}
