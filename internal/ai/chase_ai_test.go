package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/emberfall/internal/game/entity"
	"github.com/udisondev/emberfall/internal/game/geo"
	"github.com/udisondev/emberfall/internal/model"
	"github.com/udisondev/emberfall/internal/testutil"
)

type attack struct {
	src, target string
	power       int
}

type arena struct {
	m        *geo.Map
	entities []*entity.Entity
	attacks  []attack
	casts    []int
}

func newArena() *arena {
	return &arena{m: geo.NewMap(12, 12)}
}

func (a *arena) add(s *model.StatBlock) *entity.Entity {
	e := entity.New(s, a.m, testutil.NewScriptedDice())
	a.entities = append(a.entities, e)
	return e
}

func (a *arena) scan(fn func(*entity.Entity) bool) {
	for _, e := range a.entities {
		if !fn(e) {
			return
		}
	}
}

func (a *arena) attack(src, target *entity.Entity, powerID int) {
	a.attacks = append(a.attacks, attack{src.Name(), target.Name(), powerID})
}

func (a *arena) ai(e *entity.Entity, aggro float32) *ChaseAI {
	c := NewChaseAI(e, 7, 1, aggro, a.scan, a.attack)
	c.SetCastFunc(func(_ *entity.Entity, powerID int, _ model.FPoint) {
		a.casts = append(a.casts, powerID)
	})
	c.Start()
	return c
}

func TestChaseAI_IdleOutsideAggroRange(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 9.5, Y: 1.5}
	c := a.ai(a.add(gob), 3)

	c.Tick()

	assert.Equal(t, IntentionIdle, c.Intention())
	assert.Nil(t, c.Target())
	assert.False(t, gob.InCombat)
	assert.Equal(t, model.FPoint{X: 9.5, Y: 1.5}, gob.Pos)
}

func TestChaseAI_InCombatChasesAnyDistance(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 9.5, Y: 1.5}
	gob.Speed = 0.25
	gob.InCombat = true
	c := a.ai(a.add(gob), 3)

	c.Tick()

	assert.Equal(t, IntentionChase, c.Intention())
	assert.Equal(t, model.EnemyMove, gob.State)
	assert.Equal(t, 1, gob.Direction, "faces west")
	assert.InDelta(t, 9.25, gob.Pos.X, 1e-5)
}

func TestChaseAI_ChaseThenAttack(t *testing.T) {
	a := newArena()
	hero := a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20) // (3.5, 1.5)
	gob.Speed = 0.5
	gob.Cooldown = 10
	c := a.ai(a.add(gob), 5)

	c.Tick() // 3.5 -> 3.0
	c.Tick() // 3.0 -> 2.5, in range for the next frame
	require.Empty(t, a.attacks)
	assert.Same(t, hero, c.Target())
	assert.True(t, gob.InCombat)

	c.Tick()

	assert.Equal(t, IntentionAttack, c.Intention())
	assert.Equal(t, model.EnemyStance, gob.State)
	require.Len(t, a.attacks, 1)
	assert.Equal(t, attack{"goblin", "hero", 7}, a.attacks[0])
	assert.Equal(t, 10, gob.CooldownTicks)

	c.Tick()
	assert.Len(t, a.attacks, 1, "cooldown")
}

func TestChaseAI_IgnoresFriends(t *testing.T) {
	a := newArena()
	ally := testutil.NewEnemy("wolf", 20)
	ally.HeroAlly = true
	hero := testutil.NewHero(50)
	a.add(ally)
	c := a.ai(a.add(hero), 10)

	c.Tick()

	assert.Nil(t, c.Target())
	assert.Equal(t, model.AvatarStance, hero.State)
}

func TestChaseAI_PicksNearestAndDropsDeadTarget(t *testing.T) {
	a := newArena()
	hero := testutil.NewHero(50)
	hero.Speed = 0.1
	near := testutil.NewEnemy("near", 10)
	near.Pos = model.FPoint{X: 4.5, Y: 1.5}
	far := testutil.NewEnemy("far", 10)
	far.Pos = model.FPoint{X: 1.5, Y: 6.5}
	a.add(far)
	a.add(near)
	c := a.ai(a.add(hero), 10)

	c.Tick()
	require.NotNil(t, c.Target())
	assert.Equal(t, "near", c.Target().Name())

	near.State = model.EnemyDead
	c.Tick()
	require.NotNil(t, c.Target())
	assert.Equal(t, "far", c.Target().Name())
}

func TestChaseAI_HitRecovery(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 2.5, Y: 1.5}
	gob.State = model.EnemyHit
	c := a.ai(a.add(gob), 5)

	for range hitRecoveryFrames - 1 {
		c.Tick()
	}
	assert.Equal(t, model.EnemyHit, gob.State)
	assert.Empty(t, a.attacks)

	c.Tick()
	assert.Equal(t, model.EnemyStance, gob.State)
	assert.Len(t, a.attacks, 1, "attacks on the frame it recovers")
}

func TestChaseAI_CastsQueuedPower(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Cooldown = 30
	gob.SetAIPower(model.AITriggerHit, 12)
	gob.State = model.EnemyPower
	gob.ActivatedPower = gob.AIPower(model.AITriggerHit)
	c := a.ai(a.add(gob), 5)

	c.Tick()

	assert.Equal(t, []int{12}, a.casts)
	assert.Nil(t, gob.ActivatedPower)
	assert.Equal(t, 30, gob.CooldownTicks)
	assert.Equal(t, model.EnemyStance, gob.State)
}

func TestChaseAI_DeadOrStopped(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 2.5, Y: 1.5}
	c := a.ai(a.add(gob), 5)

	c.Stop()
	c.Tick()
	assert.Empty(t, a.attacks)

	c.Start()
	gob.State = model.EnemyDead
	c.Tick()
	assert.Empty(t, a.attacks)
	assert.Equal(t, IntentionIdle, c.Intention())
}

func TestChaseAI_StunnedHolds(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 2.5, Y: 1.5}
	gob.Effects.Stun = true
	c := a.ai(a.add(gob), 5)

	c.Tick()

	assert.Empty(t, a.attacks)
}

func TestIntentionString(t *testing.T) {
	assert.Equal(t, "IDLE", IntentionIdle.String())
	assert.Equal(t, "CHASE", IntentionChase.String())
	assert.Equal(t, "ATTACK", IntentionAttack.String())
	assert.Equal(t, "UNKNOWN", Intention(9).String())
}

func TestChaseAI_RepeatedHitRestartsRecovery(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 2.5, Y: 1.5}
	gob.State = model.EnemyHit
	gob.Interrupts = 1
	c := a.ai(a.add(gob), 5)

	for range 5 {
		c.Tick()
	}
	gob.Interrupts++ // hit again mid-recovery

	for range hitRecoveryFrames - 1 {
		c.Tick()
	}
	assert.Equal(t, model.EnemyHit, gob.State, "hold counts from the second hit")
	assert.Empty(t, a.attacks)

	c.Tick()
	assert.Equal(t, model.EnemyStance, gob.State)
	assert.Len(t, a.attacks, 1)
}

func animatedSet() *entity.AnimationSet {
	return entity.NewAnimationSet(
		entity.AnimationDef{Name: AnimationStance, Frames: 4, Duration: 4, Looped: true},
		entity.AnimationDef{Name: AnimationRun, Frames: 4, Duration: 4, Looped: true},
		entity.AnimationDef{Name: AnimationBlock, Frames: 4, Duration: 4, Looped: true},
		entity.AnimationDef{Name: AnimationHit, Frames: 8, Duration: 8},
		entity.AnimationDef{Name: AnimationDie, Frames: 4, Duration: 4},
	)
}

func TestChaseAI_AnimationFollowsState(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 6.5, Y: 1.5}
	gob.Speed = 0.25
	e := a.add(gob)
	e.SetAnimations(animatedSet())
	c := a.ai(e, 10)

	c.Tick()
	assert.Equal(t, AnimationRun, e.ActiveAnimationName())

	gob.State = model.EnemyHit
	gob.Interrupts++
	c.Tick()
	assert.Equal(t, AnimationHit, e.ActiveAnimationName())

	e.Logic(60)
	e.Logic(60)
	require.Equal(t, 2, e.ActiveAnimation().Frame())

	gob.Interrupts++
	c.Tick()
	assert.Equal(t, AnimationHit, e.ActiveAnimationName())
	assert.Zero(t, e.ActiveAnimation().Frame(), "second hit rewinds the hit animation")

	gob.State = model.EnemyDead
	c.Tick()
	assert.Equal(t, AnimationDie, e.ActiveAnimationName())
}

func TestChaseAI_HoldsBlock(t *testing.T) {
	a := newArena()
	a.add(testutil.NewHero(50))
	gob := testutil.NewEnemy("goblin", 20)
	gob.Pos = model.FPoint{X: 2.5, Y: 1.5}
	gob.Effects.TriggeredBlock = true
	e := a.add(gob)
	e.SetAnimations(animatedSet())
	c := a.ai(e, 5)

	c.Tick()

	assert.Equal(t, model.EnemyBlock, gob.State)
	assert.Equal(t, AnimationBlock, e.ActiveAnimationName())
	assert.Empty(t, a.attacks)

	gob.Effects.TriggeredBlock = false
	c.Tick()
	assert.Equal(t, model.EnemyStance, gob.State)
	assert.Equal(t, AnimationStance, e.ActiveAnimationName())
	assert.Len(t, a.attacks, 1)
}
