package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/emberfall/internal/model"
)

func TestModifierModeApply(t *testing.T) {
	tests := []struct {
		mode  ModifierMode
		v     int
		value int
		want  int
	}{
		{ModeNone, 40, 7, 40},
		{ModeMultiply, 40, 150, 60},
		{ModeAdd, 40, -15, 25},
		{ModeAbsolute, 40, 7, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.Apply(tt.v, tt.value), "mode %d", tt.mode)
	}
	assert.Equal(t, ModeNone, ParseModifierMode("bogus"))
	assert.Equal(t, ModeAbsolute, ParseModifierMode("absolute"))
}

func TestAllowsTarget(t *testing.T) {
	open := &Power{ID: 1}
	assert.True(t, open.AllowsTarget(nil))

	holy := &Power{ID: 2, TargetCategories: []string{"undead", "demon"}}
	assert.True(t, holy.AllowsTarget([]string{"beast", "demon"}))
	assert.False(t, holy.AllowsTarget([]string{"beast"}))
	assert.False(t, holy.AllowsTarget(nil))
}

func TestCatalogEffect(t *testing.T) {
	c := NewCatalog([]*Power{{
		ID:          1,
		PostEffects: []EffectDef{{ID: "slow", Type: model.EffectSpeed, Magnitude: 50, Duration: 60}},
		BuffEffects: []EffectDef{{ID: "rage", Type: model.EffectStat, Stat: model.StatDmgMin, Magnitude: 3, Duration: 60}},
	}}, nil)

	target := model.NewStatBlock("target", false, 10, 0)
	source := model.NewStatBlock("source", true, 10, 0)

	c.Effect(target, source, 1, model.SourceHero)

	assert.Equal(t, 50, target.Effects.Speed)
	assert.True(t, target.Effects.IsDebuffed())
	assert.Equal(t, 3, source.Get(model.StatDmgMin))

	effects := target.Effects.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, 60, effects[0].Ticks)
	assert.Equal(t, model.SourceHero, effects[0].Source)

	// unknown power is a no-op
	c.Effect(target, source, 99, model.SourceHero)
	assert.Equal(t, 1, target.Effects.Len())
}

func TestCatalogActivateDrain(t *testing.T) {
	c := NewCatalog(nil, nil)
	src := model.NewStatBlock("src", true, 10, 0)

	c.Activate(5, src, model.FPoint{X: 2, Y: 3})
	c.Activate(6, src, model.FPoint{X: 4, Y: 5})

	got := c.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].PowerID)
	assert.Same(t, src, got[1].Source)
	assert.Equal(t, model.FPoint{X: 4, Y: 5}, got[1].Target)
	assert.Empty(t, c.Drain())
}

func TestCatalogNewHazard(t *testing.T) {
	c := NewCatalog([]*Power{
		{ID: 1, Missile: true, Speed: 0.5, Lifespan: 20, Element: 1, TargetMovementNormal: true},
		{ID: 2, Lifespan: 1, Element: model.ElementNone, TraitArmorPenetration: true},
	}, []string{"fire", "ice"})

	src := model.NewStatBlock("src", true, 10, 0)
	src.Pos = model.FPoint{X: 1, Y: 1}
	src.SetBase(model.StatDmgMin, 3)
	src.SetBase(model.StatDmgMax, 7)
	src.SetBase(model.StatAccuracy, 90)
	src.SetBase(model.StatCrit, 5)

	h, err := c.NewHazard(1, src, model.SourceHero, model.FPoint{X: 1, Y: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, h.DmgMin)
	assert.Equal(t, 7, h.DmgMax)
	assert.Equal(t, 90, h.Accuracy)
	assert.Equal(t, 5, h.CritChance)
	assert.Equal(t, 1, h.Element)
	assert.Equal(t, 20, h.BaseLifespan)
	assert.Equal(t, src.Pos, h.Pos)
	assert.InDelta(t, math.Pi/2, h.Angle, 1e-5)
	assert.InDelta(t, 0.5, h.Velocity.Y, 1e-5)
	assert.True(t, h.CanHit(model.MovementNormal))
	assert.False(t, h.CanHit(model.MovementFlying))

	aoe, err := c.NewHazard(2, src, model.SourceEnemy, model.FPoint{X: 4, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, model.FPoint{X: 4, Y: 4}, aoe.Pos)
	assert.True(t, aoe.ArmorPenetration)

	_, err = c.NewHazard(77, src, model.SourceHero, model.FPoint{})
	assert.ErrorIs(t, err, ErrUnknownPower)
}

func TestCatalogReplace(t *testing.T) {
	c := NewCatalog([]*Power{{ID: 1}}, []string{"fire"})
	assert.Equal(t, 0, c.ElementIndex("fire"))
	assert.Equal(t, model.ElementNone, c.ElementIndex("ice"))

	c.Replace([]*Power{{ID: 2}, {ID: 3}}, []string{"ice"})
	assert.Nil(t, c.Power(1))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"ice"}, c.Elements())
}
