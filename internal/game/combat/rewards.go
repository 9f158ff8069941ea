package combat

import (
	"log/slog"

	"github.com/udisondev/emberfall/internal/model"
)

// StatusSetter records campaign progress.
type StatusSetter interface {
	SetStatus(name string)
}

// DefaultXPTable holds the total XP needed to reach each level; index 0 is level 1.
var DefaultXPTable = []int{0, 100, 250, 500, 1000, 1750, 2750, 4000, 5500, 7500}

// Rewards grants kill rewards to the hero.
type Rewards struct {
	hero     *model.StatBlock
	campaign StatusSetter
	xpTable  []int

	// levelUpFunc is called after the hero gains one or more levels.
	levelUpFunc func(hero *model.StatBlock)
}

// NewRewards creates Rewards for hero. campaign may be nil.
func NewRewards(hero *model.StatBlock, campaign StatusSetter) *Rewards {
	return &Rewards{
		hero:     hero,
		campaign: campaign,
		xpTable:  DefaultXPTable,
	}
}

// SetXPTable replaces the level table.
func (r *Rewards) SetXPTable(table []int) {
	r.xpTable = table
}

// SetLevelUpFunc sets the callback run on level-up (sound, effects).
func (r *Rewards) SetLevelUpFunc(fn func(hero *model.StatBlock)) {
	r.levelUpFunc = fn
}

// Grant awards XP for killing target and records its defeat status.
// Kills by enemy-side hazards grant nothing.
func (r *Rewards) Grant(target *model.StatBlock, src model.SourceType) {
	if src == model.SourceEnemy {
		return
	}

	if target.DefeatStatus != "" && r.campaign != nil {
		r.campaign.SetStatus(target.DefeatStatus)
	}

	if r.hero == nil || target.XPReward <= 0 {
		return
	}
	r.hero.XP += target.XPReward

	oldLevel := r.hero.Level
	newLevel := LevelForXP(r.xpTable, r.hero.XP, oldLevel)
	if newLevel <= oldLevel {
		return
	}

	r.hero.Level = newLevel
	// восстанавливаем HP/MP при повышении уровня
	r.hero.HP = r.hero.Get(model.StatHPMax)
	r.hero.MP = r.hero.Get(model.StatMPMax)

	slog.Info("hero leveled up",
		"hero", r.hero.Name,
		"level", newLevel,
		"xp", r.hero.XP,
		"killed", target.Name)

	if r.levelUpFunc != nil {
		r.levelUpFunc(r.hero)
	}
}

// LevelForXP returns the level reached with xp, never lower than current.
func LevelForXP(table []int, xp, current int) int {
	level := current
	for i := current; i < len(table); i++ {
		if xp < table[i] {
			break
		}
		level = i + 1
	}
	return level
}
