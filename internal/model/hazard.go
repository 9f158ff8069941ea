package model

import "math"

// ElementNone marks a hazard without an elemental type.
const ElementNone = -1

// Hazard is an in-flight instance of a power.
// Created by the power-activation subsystem and passed by pointer to the
// resolver for one resolution; reflection mutates it in place.
type Hazard struct {
	PowerID int

	DmgMin     int
	DmgMax     int
	Accuracy   int
	CritChance int
	Element    int // index into StatBlock.Vulnerable, ElementNone if none

	SourceType SourceType
	Src        *StatBlock // shared, not owned

	Missile          bool
	ArmorPenetration bool
	CritsImpaired    int
	HPSteal          int
	MPSteal          int

	TargetMovementNormal     bool
	TargetMovementFlying     bool
	TargetMovementIntangible bool
	WallsBlockAOE            bool

	Lifespan     int
	BaseLifespan int

	Pos       FPoint
	Angle     float32
	BaseSpeed float32
	Velocity  FPoint

	PostPower       int
	PostPowerChance int
}

// CanHit reports whether the hazard targets the given movement class.
func (h *Hazard) CanHit(mt MovementType) bool {
	switch mt {
	case MovementNormal:
		return h.TargetMovementNormal
	case MovementFlying:
		return h.TargetMovementFlying
	case MovementIntangible:
		return h.TargetMovementIntangible
	default:
		return false
	}
}

// SetAngle sets the travel angle (radians, normalized into [0, 2π)) and
// recomputes the velocity from BaseSpeed.
func (h *Hazard) SetAngle(angle float32) {
	a := math.Mod(float64(angle), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	h.Angle = float32(a)
	h.Velocity = FPoint{
		X: h.BaseSpeed * float32(math.Cos(a)),
		Y: h.BaseSpeed * float32(math.Sin(a)),
	}
}

// Logic advances the hazard by one frame. Returns false once the lifespan is spent.
func (h *Hazard) Logic() bool {
	if h.Lifespan <= 0 {
		return false
	}
	h.Lifespan--
	h.Pos.X += h.Velocity.X
	h.Pos.Y += h.Velocity.Y
	return h.Lifespan > 0
}
