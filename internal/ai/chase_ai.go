package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/emberfall/internal/game/entity"
	"github.com/udisondev/emberfall/internal/model"
)

// ScanFunc calls fn for every entity in the world until fn returns false.
type ScanFunc func(fn func(*entity.Entity) bool)

// AttackFunc fires powerID from src at target.
type AttackFunc func(src, target *entity.Entity, powerID int)

// CastFunc activates powerID by src aimed at pos.
type CastFunc func(src *entity.Entity, powerID int, pos model.FPoint)

const (
	// hitRecoveryFrames — сколько кадров персонаж стоит в состоянии hit.
	hitRecoveryFrames = 12

	// DefaultAttackAnimation keys the attack sound played on every attack.
	DefaultAttackAnimation = "swing"
)

// Animation names played for each character state.
const (
	AnimationStance  = "stance"
	AnimationRun     = "run"
	AnimationBlock   = "block"
	AnimationHit     = "hit"
	AnimationPower   = "power"
	AnimationDie     = "die"
	AnimationCritDie = "critdie"
)

// ChaseAI walks toward the nearest hostile entity and attacks it with one
// power when in range.
//
// Enemies notice targets within aggroRange; once in combat they chase at any
// distance. A hit state is held for hitRecoveryFrames, counted from the latest
// interrupting hit, and an AI power queued by the resolver (EnemyPower state)
// is cast on the next frame. While a block effect is up the entity holds in
// its block state. Every frame ends by playing the animation of the state.
type ChaseAI struct {
	e           *entity.Entity
	powerID     int
	attackRange float32
	aggroRange  float32
	attackAnim  string

	isRunning atomic.Bool
	intention atomic.Int32

	target     *entity.Entity
	hitFrames  int
	interrupts int

	// anim — последняя запрошенная анимация
	anim    string
	restart bool

	// Callbacks (injected by the world)
	scanFunc   ScanFunc
	attackFunc AttackFunc
	castFunc   CastFunc
}

// NewChaseAI creates a ChaseAI for e attacking with powerID.
func NewChaseAI(
	e *entity.Entity,
	powerID int,
	attackRange float32,
	aggroRange float32,
	scanFunc ScanFunc,
	attackFunc AttackFunc,
) *ChaseAI {
	return &ChaseAI{
		e:           e,
		powerID:     powerID,
		attackRange: attackRange,
		aggroRange:  aggroRange,
		attackAnim:  DefaultAttackAnimation,
		scanFunc:    scanFunc,
		attackFunc:  attackFunc,
	}
}

// SetCastFunc sets the AI power cast callback. If nil, queued AI powers are
// dropped.
func (ai *ChaseAI) SetCastFunc(fn CastFunc) {
	ai.castFunc = fn
}

// SetAttackAnimation sets the animation name whose sounds play on attack.
func (ai *ChaseAI) SetAttackAnimation(name string) {
	ai.attackAnim = name
}

// Start enables the controller.
func (ai *ChaseAI) Start() {
	ai.isRunning.Store(true)
	ai.setIntention(IntentionIdle)
}

// Stop disables the controller and drops its target.
func (ai *ChaseAI) Stop() {
	ai.isRunning.Store(false)
	ai.setIntention(IntentionIdle)
	ai.target = nil
}

// Intention returns the current intention.
func (ai *ChaseAI) Intention() Intention {
	return Intention(ai.intention.Load())
}

// Target returns the entity being chased, or nil.
func (ai *ChaseAI) Target() *entity.Entity {
	return ai.target
}

// Entity returns the driven entity.
func (ai *ChaseAI) Entity() *entity.Entity {
	return ai.e
}

func (ai *ChaseAI) setIntention(i Intention) {
	old := Intention(ai.intention.Swap(int32(i)))
	if old != i && TraceEnabled() {
		slog.Debug("AI intention changed",
			"entity", ai.e.Name(),
			"from", old,
			"to", i)
	}
}

// Tick runs one frame.
func (ai *ChaseAI) Tick() {
	if !ai.isRunning.Load() {
		return
	}

	s := ai.e.Stats()
	defer ai.animate(s)

	if s.Interrupts != ai.interrupts {
		// новый удар: отсчёт hit заново
		ai.interrupts = s.Interrupts
		ai.hitFrames = 0
		ai.restart = true
	}

	if s.IsDead() {
		ai.target = nil
		ai.setIntention(IntentionIdle)
		return
	}

	switch s.State {
	case model.AvatarHit, model.EnemyHit:
		ai.hitFrames++
		if ai.hitFrames < hitRecoveryFrames {
			return
		}
		ai.hitFrames = 0
		s.State = stanceOf(s)
	case model.EnemyPower:
		ai.castActivated(s)
		return
	}

	if s.Effects.Stun || s.Effects.KnockbackSpeed != 0 {
		return
	}
	if s.Effects.TriggeredBlock {
		s.State = blockOf(s)
		return
	}

	target := ai.acquireTarget(s)
	if target == nil {
		ai.setIntention(IntentionIdle)
		s.State = stanceOf(s)
		return
	}

	ts := target.Stats()
	s.Direction = entity.DirectionTo(s.Pos, ts.Pos)

	if s.Pos.Distance(ts.Pos) > ai.attackRange {
		ai.setIntention(IntentionChase)
		s.State = movingOf(s)
		if !ai.e.Move() && TraceEnabled() {
			slog.Debug("AI move blocked",
				"entity", s.Name,
				"x", s.Pos.X,
				"y", s.Pos.Y)
		}
		return
	}

	ai.setIntention(IntentionAttack)
	s.State = stanceOf(s)
	if s.CooldownTicks > 0 {
		return
	}
	s.CooldownTicks = s.Cooldown

	ai.e.PlayAttackSound(ai.attackAnim)
	if ai.attackFunc != nil {
		ai.attackFunc(ai.e, target, ai.powerID)
	}
}

// castActivated casts the AI power the resolver queued and returns to stance.
func (ai *ChaseAI) castActivated(s *model.StatBlock) {
	p := s.ActivatedPower
	s.ActivatedPower = nil
	s.CooldownTicks = s.Cooldown
	s.State = stanceOf(s)

	if p == nil || ai.castFunc == nil {
		return
	}

	pos := s.Pos
	if ai.target != nil {
		pos = ai.target.Stats().Pos
	}
	slog.Debug("AI power cast", "entity", s.Name, "power", p.PowerID, "trigger", p.Trigger)
	ai.castFunc(ai.e, p.PowerID, pos)
}

// acquireTarget keeps a living target or picks the nearest hostile one.
func (ai *ChaseAI) acquireTarget(s *model.StatBlock) *entity.Entity {
	if ai.target != nil && !ai.target.Stats().IsDead() {
		return ai.target
	}
	ai.target = nil

	if ai.scanFunc == nil {
		return nil
	}

	var (
		best     *entity.Entity
		bestDist float32
	)
	ai.scanFunc(func(other *entity.Entity) bool {
		o := other.Stats()
		if other == ai.e || o.IsDead() || !s.Hostile(o) {
			return true
		}
		d := s.Pos.Distance(o.Pos)
		if !s.InCombat && d > ai.aggroRange {
			return true
		}
		if best == nil || d < bestDist {
			best, bestDist = other, d
		}
		return true
	})

	if best != nil {
		s.InCombat = true
		ai.target = best
		slog.Debug("AI target acquired", "entity", s.Name, "target", best.Name(), "distance", bestDist)
	}
	return best
}

// animate switches the entity to the animation of its state. A repeated
// interrupting hit rewinds the hit animation.
func (ai *ChaseAI) animate(s *model.StatBlock) {
	restart := ai.restart
	ai.restart = false
	if !ai.e.HasAnimations() {
		return
	}

	name := animationOf(s.State)
	if name == "" {
		return
	}
	if name != ai.anim {
		ai.anim = name
		ai.e.SetAnimation(name)
		return
	}
	if restart && name == AnimationHit {
		ai.e.ResetActiveAnimation()
	}
}

func animationOf(state model.EntityState) string {
	switch state {
	case model.AvatarStance, model.EnemyStance:
		return AnimationStance
	case model.AvatarRun, model.EnemyMove:
		return AnimationRun
	case model.AvatarBlock, model.EnemyBlock:
		return AnimationBlock
	case model.AvatarHit, model.EnemyHit:
		return AnimationHit
	case model.AvatarPower, model.EnemyPower:
		return AnimationPower
	case model.AvatarDead, model.EnemyDead:
		return AnimationDie
	case model.EnemyCritDead:
		return AnimationCritDie
	default:
		return ""
	}
}

func blockOf(s *model.StatBlock) model.EntityState {
	if s.Hero {
		return model.AvatarBlock
	}
	return model.EnemyBlock
}

func stanceOf(s *model.StatBlock) model.EntityState {
	if s.Hero {
		return model.AvatarStance
	}
	return model.EnemyStance
}

func movingOf(s *model.StatBlock) model.EntityState {
	if s.Hero {
		return model.AvatarRun
	}
	return model.EnemyMove
}
