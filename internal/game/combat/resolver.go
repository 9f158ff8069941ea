package combat

import (
	"log/slog"
	"math"
	"slices"

	"golang.org/x/text/message"

	"github.com/udisondev/emberfall/internal/config"
	"github.com/udisondev/emberfall/internal/game/campaign"
	"github.com/udisondev/emberfall/internal/game/power"
	"github.com/udisondev/emberfall/internal/i18n"
	"github.com/udisondev/emberfall/internal/model"
)

// blockAnimation is the animation name a blocking character plays.
const blockAnimation = "block"

// PowerCatalog is the part of the power catalog the resolver uses.
type PowerCatalog interface {
	Power(id int) *power.Power
	Effect(target, source *model.StatBlock, powerID int, src model.SourceType)
	Activate(powerID int, source *model.StatBlock, target model.FPoint)
}

// Collider is the part of the collision map the resolver uses.
type Collider interface {
	LineOfMovement(x1, y1, x2, y2 float32, mt model.MovementType) bool
	Unblock(x, y float32)
}

// Target is a character that can be struck by a hazard.
type Target interface {
	Stats() *model.StatBlock
	// ActiveAnimationName returns "" when there is no active animation.
	ActiveAnimationName() string
	ResetActiveAnimation()
	PlaySound(kind model.SoundKind)
}

// HitResult describes a resolved hit (for tests and replay tooling).
type HitResult struct {
	Target  string
	PowerID int
	Damage  int
	Crit    bool
	Overhit bool
	Miss    bool
	Killed  bool
}

// Resolver resolves hazards striking characters.
//
// Not thread-safe: every call runs on the game-logic thread and draws from
// the shared Dice in a fixed order.
type Resolver struct {
	cfg      config.Combat
	dice     Dice
	powers   PowerCatalog
	collider Collider
	campaign campaign.StatusOracle
	text     TextSink
	printer  *message.Printer

	// rewardFunc is called when a non-hero dies, before its state changes.
	rewardFunc func(target *model.StatBlock, src model.SourceType)

	// shakeFunc starts the camera shake for the given number of frames.
	shakeFunc func(ticks int)

	// hitObserver — callback для наблюдения за результатами попаданий (nil в production).
	hitObserver func(HitResult)
}

// NewResolver creates a Resolver. camp may be nil when no character uses
// invincibility statuses.
func NewResolver(
	cfg config.Combat,
	dice Dice,
	powers PowerCatalog,
	collider Collider,
	camp campaign.StatusOracle,
	text TextSink,
) *Resolver {
	return &Resolver{
		cfg:      cfg,
		dice:     dice,
		powers:   powers,
		collider: collider,
		campaign: camp,
		text:     text,
		printer:  i18n.Printer(i18n.Default()),
	}
}

// SetPrinter sets the printer used for text messages.
func (r *Resolver) SetPrinter(p *message.Printer) {
	r.printer = p
}

// SetRewardFunc sets the callback for kill rewards.
func (r *Resolver) SetRewardFunc(fn func(target *model.StatBlock, src model.SourceType)) {
	r.rewardFunc = fn
}

// SetShakeFunc sets the camera-shake callback.
func (r *Resolver) SetShakeFunc(fn func(ticks int)) {
	r.shakeFunc = fn
}

// SetHitObserver sets a callback invoked for every hit that reaches damage calculation.
func (r *Resolver) SetHitObserver(fn func(HitResult)) {
	r.hitObserver = fn
}

// TakeHit resolves hazard h striking t.
//
// Returns false when the hazard had no combat outcome: filtered out, a beacon,
// reflected, or a zero-damage miss. Mutates t's stats, h's source stats and,
// on reflection, h itself.
func (r *Resolver) TakeHit(t Target, h *model.Hazard) bool {
	stats := t.Stats()
	pwr := r.powers.Power(h.PowerID)
	if pwr == nil {
		slog.Warn("hazard references unknown power", "power", h.PowerID, "target", stats.Name)
		return false
	}

	if !r.canBeHit(stats, h, pwr) {
		return false
	}

	// aggro: пробуждаем цель даже для beacon-способностей
	if !stats.InCombat && !stats.Hero && !stats.HeroAlly && !pwr.NoAggro {
		stats.JoinCombat = true
		stats.InCombat = true
	}

	if pwr.Beacon {
		return false
	}

	if h.Missile && r.dice.PercentChance(stats.Get(model.StatReflect)) {
		r.reflect(t, h)
		return false
	}

	perfect := h.Src != nil && h.Src.PerfectAccuracy

	accuracy := pwr.ModAccuracyMode.Apply(h.Accuracy, pwr.ModAccuracyValue)
	avoidance := 0
	if !pwr.TraitAvoidanceIgnore {
		avoidance = stats.Get(model.StatAvoidance)
	}

	trueAvoidance := 100 - (accuracy - avoidance)
	overhit := false
	if trueAvoidance < 0 && !perfect {
		overhit = r.dice.PercentChance(-trueAvoidance)
	}
	trueAvoidance = min(max(trueAvoidance, r.cfg.MinAvoidance), r.cfg.MaxAvoidance)

	missed := !perfect && r.dice.PercentChance(trueAvoidance)

	dmg := r.baseDamage(h, pwr)
	dmg = r.applyResistance(stats, h, dmg)
	if !h.ArmorPenetration {
		dmg = r.absorb(t, h, pwr, dmg)
	}
	dmg = max(dmg, 0)

	critChance := pwr.ModCritMode.Apply(h.CritChance, pwr.ModCritValue)
	if stats.Effects.Stun || stats.Effects.Speed < 100 {
		critChance += h.CritsImpaired
	}

	crit := r.dice.PercentChance(critChance)
	if crit {
		dmg = dmg * r.dice.Between(r.cfg.MinCritDamage, r.cfg.MaxCritDamage) / 100
		if !stats.Hero && r.shakeFunc != nil {
			r.shakeFunc(r.cfg.MaxFramesPerSec / 2)
		}
	} else if overhit {
		dmg = dmg * r.dice.Between(r.cfg.MinOverhitDamage, r.cfg.MaxOverhitDamage) / 100
	}

	if missed {
		dmg = dmg * r.dice.Between(r.cfg.MinMissDamage, r.cfg.MaxMissDamage) / 100
	}

	res := HitResult{
		Target:  stats.Name,
		PowerID: h.PowerID,
		Damage:  dmg,
		Crit:    crit,
		Overhit: overhit,
		Miss:    missed,
	}

	if !pwr.IgnoreZeroDamage {
		if dmg == 0 {
			r.text.AddString(r.printer.Sprintf(i18n.KeyMiss), stats.Pos, MessageMiss)
			r.observe(res)
			return false
		}
		r.text.AddInt(dmg, stats.Pos, damageKind(stats.Hero, crit || overhit, missed))
	}

	prevHP := stats.HP
	wasDebuffed := stats.Effects.IsDebuffed()

	stats.TakeDamage(dmg)

	if dmg > 0 || pwr.IgnoreZeroDamage {
		// урон всегда снимает оглушение
		stats.Effects.RemoveEffectType(model.EffectStun)

		r.powers.Effect(stats, h.Src, h.PowerID, h.SourceType)

		if h.Src != nil {
			r.steal(stats, h, dmg, prevHP)
			r.returnDamage(stats, h.Src, dmg)
		}

		stats.Effects.RemoveEffectIDs(pwr.RemoveEffects)

		if h.PostPower > 0 && r.dice.PercentChance(h.PostPowerChance) {
			r.powers.Activate(h.PostPower, h.Src, stats.Pos)
		}
	}

	if dmg > 0 {
		res.Killed = r.transition(t, h, crit, wasDebuffed)
	}

	r.observe(res)
	return true
}

// canBeHit runs the side-effect-free filters.
func (r *Resolver) canBeHit(stats *model.StatBlock, h *model.Hazard, pwr *power.Power) bool {
	if !stats.Hero && !pwr.AllowsTarget(stats.Categories) {
		return false
	}
	if len(stats.PowerFilter) > 0 && !slices.Contains(stats.PowerFilter, h.PowerID) {
		return false
	}
	if stats.IsDead() {
		return false
	}
	if !h.CanHit(stats.MovementType) {
		return false
	}
	if h.WallsBlockAOE && !r.collider.LineOfMovement(stats.Pos.X, stats.Pos.Y, h.Pos.X, h.Pos.Y, model.MovementNormal) {
		return false
	}
	return !r.invincible(stats, h)
}

// invincible evaluates the campaign-status lists of a non-hero-side target
// hit by a hero-side hazard. A non-empty "requires" list makes the target
// invincible when every status is set; a non-empty "requires not" list when
// none is set.
func (r *Resolver) invincible(stats *model.StatBlock, h *model.Hazard) bool {
	if stats.Hero || stats.HeroAlly || h.SourceType == model.SourceEnemy || r.campaign == nil {
		return false
	}

	invincible := false
	for _, s := range stats.InvincibleRequiresStatus {
		if !r.campaign.CheckStatus(s) {
			invincible = false
			break
		}
		invincible = true
	}
	if invincible {
		return true
	}

	for _, s := range stats.InvincibleRequiresNotStatus {
		if r.campaign.CheckStatus(s) {
			invincible = false
			break
		}
		invincible = true
	}
	return invincible
}

// reflect turns a missile back toward its source. The hazard now belongs to
// the reflecting side.
func (r *Resolver) reflect(t Target, h *model.Hazard) {
	stats := t.Stats()

	h.SetAngle(h.Angle + math.Pi)

	switch h.SourceType {
	case model.SourceHero, model.SourceAlly:
		h.SourceType = model.SourceEnemy
	case model.SourceEnemy:
		if stats.Hero {
			h.SourceType = model.SourceHero
		} else {
			h.SourceType = model.SourceAlly
		}
	}
	h.Src = stats
	h.Lifespan = h.BaseLifespan

	if t.ActiveAnimationName() == blockAnimation {
		t.PlaySound(model.SoundBlock)
	}
}

func (r *Resolver) baseDamage(h *model.Hazard, pwr *power.Power) int {
	dmg := r.dice.Between(h.DmgMin, h.DmgMax)

	switch pwr.ModDamageMode {
	case power.ModeMultiply:
		dmg = dmg * pwr.ModDamageValueMin / 100
	case power.ModeAdd:
		dmg += pwr.ModDamageValueMin
	case power.ModeAbsolute:
		dmg = r.dice.Between(pwr.ModDamageValueMin, pwr.ModDamageValueMax)
	}
	return dmg
}

func (r *Resolver) applyResistance(stats *model.StatBlock, h *model.Hazard, dmg int) int {
	if h.Element < 0 || h.Element >= len(stats.Vulnerable) {
		return dmg
	}
	raw := stats.Vulnerable[h.Element]
	vulnerable := max(raw, r.cfg.MinResist)
	if raw < 100 {
		vulnerable = min(vulnerable, r.cfg.MaxResist)
	}
	return dmg * vulnerable / 100
}

// absorb subtracts armor absorption. The absorbed share of the damage is
// clamped into the block band while a block is up, the absorb band otherwise.
func (r *Resolver) absorb(t Target, h *model.Hazard, pwr *power.Power, dmg int) int {
	stats := t.Stats()
	blocking := stats.Effects.TriggeredBlock

	absorption := r.dice.Between(stats.Get(model.StatAbsMin), stats.Get(model.StatAbsMax))

	if absorption > 0 && dmg > 0 {
		lo, hi := r.cfg.MinAbsorb, r.cfg.MaxAbsorb
		if blocking {
			lo, hi = r.cfg.MinBlock, r.cfg.MaxBlock
		}
		ratio := absorption * 100 / dmg
		if ratio < lo {
			absorption = dmg * lo / 100
		}
		if ratio > hi {
			absorption = dmg * hi / 100
		}
		// a clamp down to 0 still shows as 1 absorbed
		if absorption == 0 {
			absorption = 1
		}
	}

	dmg -= absorption
	if dmg > 0 {
		return dmg
	}

	dmg = 0
	if pwr.IgnoreZeroDamage {
		return dmg
	}

	if h.Element < 0 {
		if blocking && r.cfg.MaxBlock < 100 {
			dmg = 1
		} else if !blocking && r.cfg.MaxAbsorb < 100 {
			dmg = 1
		}
	} else if r.cfg.MaxResist < 100 {
		dmg = 1
	}

	if t.ActiveAnimationName() == blockAnimation {
		t.PlaySound(model.SoundBlock)
		t.ResetActiveAnimation()
	}
	return dmg
}

// steal applies HP and MP steal to the hazard source. Power and stat steal stack.
func (r *Resolver) steal(stats *model.StatBlock, h *model.Hazard, dmg, prevHP int) {
	src := h.Src
	dealt := min(dmg, prevHP)

	if hpSteal := h.HPSteal + src.Get(model.StatHPSteal); hpSteal != 0 && !stats.Effects.ImmunityHPSteal {
		amount := dealt * hpSteal / 100
		if amount == 0 {
			amount = 1
		}
		r.text.AddString(r.printer.Sprintf(i18n.KeyHPSteal, amount), src.Pos, MessageBuff)
		src.HP = min(src.HP+amount, src.Get(model.StatHPMax))
	}

	if mpSteal := h.MPSteal + src.Get(model.StatMPSteal); mpSteal != 0 && !stats.Effects.ImmunityMPSteal {
		amount := dealt * mpSteal / 100
		if amount == 0 {
			amount = 1
		}
		r.text.AddString(r.printer.Sprintf(i18n.KeyMPSteal, amount), src.Pos, MessageBuff)
		src.MP = min(src.MP+amount, src.Get(model.StatMPMax))
	}
}

// returnDamage deals the target's return-damage share back to the source.
// Not capped: it may kill the source.
func (r *Resolver) returnDamage(stats, src *model.StatBlock, dmg int) {
	pct := stats.Get(model.StatReturnDamage)
	if pct <= 0 || src.Effects.ImmunityDamageReflect {
		return
	}
	ret := int(float32(dmg*pct) / 100)
	if ret == 0 {
		ret = 1
	}
	src.TakeDamage(ret)
	r.text.AddInt(ret, src.Pos, MessageGiveDmg)
}

// transition moves a damaged target into its next life-cycle state.
// Returns true if the target died.
func (r *Resolver) transition(t Target, h *model.Hazard, crit, wasDebuffed bool) bool {
	stats := t.Stats()

	poised := r.dice.PercentChance(stats.Get(model.StatPoise))

	if stats.HP <= 0 {
		stats.Effects.TriggeredDeath = true
		if stats.Hero {
			stats.State = model.AvatarDead
			return true
		}
		if r.rewardFunc != nil {
			r.rewardFunc(stats, h.SourceType)
		}
		if crit {
			stats.State = model.EnemyCritDead
		} else {
			stats.State = model.EnemyDead
		}
		r.collider.Unblock(stats.Pos.X, stats.Pos.Y)
		return true
	}

	if stats.CooldownHitTicks == 0 {
		t.PlaySound(model.SoundHit)
	}

	if !wasDebuffed && stats.Effects.IsDebuffed() {
		if p := stats.AIPower(model.AITriggerDebuff); p != nil {
			castAIPower(stats, p)
			return false
		}
	}

	if p := stats.AIPower(model.AITriggerHit); p != nil {
		castAIPower(stats, p)
		return false
	}

	if stats.CooldownHitTicks != 0 {
		return false
	}
	stats.CooldownHitTicks = stats.CooldownHit

	// крит пробивает poise
	if stats.Effects.Stun || (poised && !crit) || stats.PreventInterrupt {
		return false
	}

	if stats.Hero {
		stats.State = model.AvatarHit
	} else {
		if stats.State == model.EnemyPower {
			stats.CooldownTicks = stats.Cooldown
			stats.ActivatedPower = nil
		}
		stats.State = model.EnemyHit
	}
	stats.Interrupts++

	if stats.UntransformOnHit {
		stats.TransformDuration = 0
	}
	return false
}

// castAIPower switches the character into casting p, skipping the global cooldown.
func castAIPower(stats *model.StatBlock, p *model.AIPower) {
	stats.State = model.EnemyPower
	stats.ActivatedPower = p
	stats.CooldownTicks = 0
}

func damageKind(targetIsHero, crit, missed bool) MessageKind {
	switch {
	case targetIsHero:
		return MessageTakeDmg
	case crit:
		return MessageCrit
	case missed:
		return MessageMiss
	default:
		return MessageGiveDmg
	}
}

func (r *Resolver) observe(res HitResult) {
	if r.hitObserver != nil {
		r.hitObserver(res)
	}
}
