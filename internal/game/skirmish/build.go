package skirmish

import (
	"fmt"

	"github.com/udisondev/emberfall/internal/ai"
	"github.com/udisondev/emberfall/internal/game/combat"
	"github.com/udisondev/emberfall/internal/game/entity"
	"github.com/udisondev/emberfall/internal/game/geo"
	"github.com/udisondev/emberfall/internal/game/power"
	"github.com/udisondev/emberfall/internal/game/scenario"
	"github.com/udisondev/emberfall/internal/model"
)

const (
	defaultAttackRange = 1.0
	defaultAggroRange  = 6.0
)

// Options configures Build.
type Options struct {
	Dice         combat.Dice
	Audio        entity.Audio // nil plays no sounds
	Campaign     combat.StatusSetter
	XPTable      []int // nil uses combat.DefaultXPTable
	FramesPerSec int
}

// Build creates a World from sc with every character driven by a ChaseAI.
// Kill rewards go to the scenario's hero.
func Build(
	sc *scenario.Scenario,
	m *geo.Map,
	catalog *power.Catalog,
	resolver *combat.Resolver,
	opts Options,
) (*World, error) {
	w := NewWorld(m, catalog, resolver, opts.FramesPerSec)

	hero, err := w.spawn(sc.Hero, true, false, catalog, opts)
	if err != nil {
		return nil, err
	}

	rewards := combat.NewRewards(hero.Stats(), opts.Campaign)
	if opts.XPTable != nil {
		rewards.SetXPTable(opts.XPTable)
	}
	rewards.SetLevelUpFunc(func(_ *model.StatBlock) { hero.PlayLevelUpSound() })
	resolver.SetRewardFunc(rewards.Grant)

	for _, c := range sc.Allies {
		if _, err := w.spawn(c, false, true, catalog, opts); err != nil {
			return nil, err
		}
	}
	for _, c := range sc.Enemies {
		if _, err := w.spawn(c, false, false, catalog, opts); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) spawn(c scenario.Character, hero, ally bool, elements scenario.ElementTable, opts Options) (*entity.Entity, error) {
	s, err := c.StatBlock(hero, elements)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", c.Name, err)
	}
	s.HeroAlly = ally

	e := entity.New(s, w.collider, opts.Dice)
	if opts.Audio != nil {
		e.SetAudio(opts.Audio, c.SoundFiles())
		e.LoadSounds(nil)
	}
	if set := c.AnimationSet(); set != nil {
		e.SetAnimations(set)
		e.SetAnimation("stance")
	}

	attackRange := c.AttackRange
	if attackRange <= 0 {
		attackRange = defaultAttackRange
	}
	aggroRange := c.AggroRange
	if aggroRange <= 0 {
		aggroRange = defaultAggroRange
	}
	ctrl := ai.NewChaseAI(e, c.Power, attackRange, aggroRange, w.Scan, w.Attack)
	ctrl.SetCastFunc(w.Cast)

	if err := w.AddEntity(e, ctrl); err != nil {
		return nil, err
	}
	return e, nil
}
