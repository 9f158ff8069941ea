package testutil

import "github.com/udisondev/emberfall/internal/model"

// NewHero создаёт героя с заданным HP, стоящего в центре тайла (1,1).
func NewHero(hp int) *model.StatBlock {
	s := model.NewStatBlock("hero", true, hp, 50)
	s.Pos = model.FPoint{X: 1.5, Y: 1.5}
	return s
}

// NewEnemy создаёт противника с заданным HP, стоящего в центре тайла (3,1).
// Counters and stats are zero: no avoidance, absorption, poise or reflect.
func NewEnemy(name string, hp int) *model.StatBlock {
	s := model.NewStatBlock(name, false, hp, 0)
	s.Pos = model.FPoint{X: 3.5, Y: 1.5}
	return s
}

// NewHazard создаёт попадание от src с фиксированным уроном и точностью 100.
func NewHazard(powerID int, src *model.StatBlock, srcType model.SourceType, dmg int) *model.Hazard {
	return &model.Hazard{
		PowerID:                  powerID,
		DmgMin:                   dmg,
		DmgMax:                   dmg,
		Accuracy:                 100,
		Element:                  model.ElementNone,
		SourceType:               srcType,
		Src:                      src,
		TargetMovementNormal:     true,
		TargetMovementFlying:     true,
		TargetMovementIntangible: true,
		Lifespan:                 1,
		BaseLifespan:             1,
	}
}
