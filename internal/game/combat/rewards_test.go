package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/emberfall/internal/config"
	"github.com/udisondev/emberfall/internal/game/campaign"
	"github.com/udisondev/emberfall/internal/model"
	"github.com/udisondev/emberfall/internal/testutil"
)

func TestLevelForXP(t *testing.T) {
	table := []int{0, 100, 250, 500}
	tests := []struct {
		xp, current, want int
	}{
		{0, 1, 1},
		{99, 1, 1},
		{100, 1, 2},
		{260, 1, 3},
		{10_000, 1, 4},
		{0, 3, 3}, // never lowers
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(table, tt.xp, tt.current), "xp=%d current=%d", tt.xp, tt.current)
	}
}

func TestRewardsGrant(t *testing.T) {
	hero := testutil.NewHero(100)
	hero.HP = 20
	camp := campaign.NewManager(nil)

	var leveled int
	r := NewRewards(hero, camp)
	r.SetLevelUpFunc(func(*model.StatBlock) { leveled++ })

	boss := testutil.NewEnemy("boss", 50)
	boss.XPReward = 120
	boss.DefeatStatus = "boss_dead"

	r.Grant(boss, model.SourceAlly)

	assert.Equal(t, 120, hero.XP)
	assert.Equal(t, 2, hero.Level)
	assert.Equal(t, 100, hero.HP, "level-up restores HP")
	assert.Equal(t, 1, leveled)
	assert.True(t, camp.CheckStatus("boss_dead"))
}

func TestRewardsNoLevelUp(t *testing.T) {
	hero := testutil.NewHero(100)
	hero.HP = 20
	r := NewRewards(hero, nil)

	rat := testutil.NewEnemy("rat", 5)
	rat.XPReward = 10
	r.Grant(rat, model.SourceHero)

	assert.Equal(t, 10, hero.XP)
	assert.Equal(t, 1, hero.Level)
	assert.Equal(t, 20, hero.HP)
}

func TestRewardsEnemyKillGrantsNothing(t *testing.T) {
	hero := testutil.NewHero(100)
	camp := campaign.NewManager(nil)
	r := NewRewards(hero, camp)

	boss := testutil.NewEnemy("boss", 50)
	boss.XPReward = 500
	boss.DefeatStatus = "boss_dead"
	r.Grant(boss, model.SourceEnemy)

	assert.Zero(t, hero.XP)
	assert.False(t, camp.CheckStatus("boss_dead"))
}

func TestRewardsWiredIntoResolver(t *testing.T) {
	f := newFixture(t, config.DefaultCombat())
	rewards := NewRewards(f.hero, nil)
	f.r.SetRewardFunc(rewards.Grant)
	f.enemy.HP = 5
	f.enemy.XPReward = 30

	f.r.TakeHit(f.target, f.heroHit(10))
	assert.Equal(t, 30, f.hero.XP)
}
