package model

// AITrigger selects when an AI-controlled entity casts an AIPower automatically.
type AITrigger int

const (
	AITriggerHit AITrigger = iota
	AITriggerDebuff
)

// String returns human-readable trigger name
func (t AITrigger) String() string {
	switch t {
	case AITriggerHit:
		return "on_hit"
	case AITriggerDebuff:
		return "on_debuff"
	default:
		return "unknown"
	}
}

// AIPower is a power cast automatically in response to a trigger.
type AIPower struct {
	PowerID int
	Trigger AITrigger
}

// StatBlock — полный изменяемый набор характеристик и состояния одного персонажа.
//
// Not thread-safe: the game-logic thread owns every StatBlock for the duration of a tick.
// The combat resolver mutates both the target and the hazard source in place.
type StatBlock struct {
	Name     string
	Hero     bool
	HeroAlly bool

	Pos          FPoint
	Direction    int // 0..7, see entity direction tables
	MovementType MovementType
	Speed        float32 // tiles per frame
	ChargeSpeed  float32

	State EntityState

	HP    int
	MP    int
	Level int
	XP    int

	// XPReward is granted to the hero when this entity is killed by the hero's side.
	XPReward int
	// DefeatStatus is set in the campaign when this entity dies.
	DefeatStatus string

	base [StatCount]int

	// Vulnerable holds a damage percent per element index; 100 = normal damage.
	Vulnerable []int

	Effects *EffectManager

	Categories  []string
	PowerFilter []int

	InvincibleRequiresStatus    []string
	InvincibleRequiresNotStatus []string

	InCombat   bool
	JoinCombat bool

	PerfectAccuracy  bool
	PreventInterrupt bool

	UntransformOnHit  bool
	TransformDuration int

	Cooldown         int
	CooldownTicks    int
	CooldownHit      int
	CooldownHitTicks int

	// Interrupts counts hits that put the character into a hit state.
	Interrupts int

	aiPowers       map[AITrigger]*AIPower
	ActivatedPower *AIPower
}

// NewStatBlock создаёт StatBlock с пустым набором эффектов.
// HP/MP устанавливаются равными максимальным.
func NewStatBlock(name string, hero bool, maxHP, maxMP int) *StatBlock {
	s := &StatBlock{
		Name:    name,
		Hero:    hero,
		Level:   1,
		Effects: NewEffectManager(),
	}
	if hero {
		s.State = AvatarStance
	} else {
		s.State = EnemyStance
	}
	s.base[StatHPMax] = maxHP
	s.base[StatMPMax] = maxMP
	s.HP = maxHP
	s.MP = maxMP
	return s
}

// Get returns the effective value of a stat: base plus effect bonuses.
func (s *StatBlock) Get(stat Stat) int {
	if stat < 0 || stat >= StatCount {
		return 0
	}
	return s.base[stat] + s.Effects.Bonus(stat)
}

// Base returns the unmodified value of a stat.
func (s *StatBlock) Base(stat Stat) int {
	if stat < 0 || stat >= StatCount {
		return 0
	}
	return s.base[stat]
}

// SetBase sets the unmodified value of a stat.
func (s *StatBlock) SetBase(stat Stat, v int) {
	if stat < 0 || stat >= StatCount {
		return
	}
	s.base[stat] = v
}

// TakeDamage subtracts dmg from HP, clamped at 0.
func (s *StatBlock) TakeDamage(dmg int) {
	s.HP -= dmg
	if s.HP < 0 {
		s.HP = 0
	}
}

// Heal adds amount to HP, capped at the HP maximum.
func (s *StatBlock) Heal(amount int) {
	s.HP = min(s.HP+amount, s.Get(StatHPMax))
}

// IsDead reports whether the entity is in a dead state of its own kind.
func (s *StatBlock) IsDead() bool {
	if s.Hero {
		return s.State == AvatarDead
	}
	return s.State == EnemyDead || s.State == EnemyCritDead
}

// SetAIPower registers the power cast for trigger, replacing any previous one.
func (s *StatBlock) SetAIPower(trigger AITrigger, powerID int) {
	if s.aiPowers == nil {
		s.aiPowers = make(map[AITrigger]*AIPower, 2)
	}
	s.aiPowers[trigger] = &AIPower{PowerID: powerID, Trigger: trigger}
}

// AIPower returns the power registered for trigger, or nil.
func (s *StatBlock) AIPower(trigger AITrigger) *AIPower {
	return s.aiPowers[trigger]
}

// Logic advances per-frame counters: cooldowns, transformation timer and effects.
func (s *StatBlock) Logic(framesPerSec int) {
	if s.CooldownTicks > 0 {
		s.CooldownTicks--
	}
	if s.CooldownHitTicks > 0 {
		s.CooldownHitTicks--
	}
	if s.TransformDuration > 0 {
		s.TransformDuration--
	}

	if s.IsDead() {
		return
	}

	damage, heal := s.Effects.Logic(framesPerSec)
	if heal > 0 {
		s.Heal(heal)
	}
	if damage > 0 {
		s.TakeDamage(damage)
	}
}

// SourceType returns the side hazards fired by this character belong to.
func (s *StatBlock) SourceType() SourceType {
	switch {
	case s.Hero:
		return SourceHero
	case s.HeroAlly:
		return SourceAlly
	default:
		return SourceEnemy
	}
}

// Hostile reports whether s and other fight on opposite sides.
func (s *StatBlock) Hostile(other *StatBlock) bool {
	return (s.Hero || s.HeroAlly) != (other.Hero || other.HeroAlly)
}
