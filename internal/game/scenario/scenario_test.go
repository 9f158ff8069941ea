package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/emberfall/internal/game/power"
	"github.com/udisondev/emberfall/internal/model"
)

const sample = `
map: arena.yaml
hero:
  name: hero
  pos: [1.5, 2.5]
  hp: 120
  mp: 40
  speed: 0.1
  power: 1
  attack_range: 1.2
  aggro_range: 12
  cooldown: 20
  stats:
    dmg_min: 6
    dmg_max: 10
    accuracy: 90
    crit: 5
  sounds:
    attack:
      swing: [swing1.ogg, swing2.ogg]
    hit: [hero_hit.ogg]
    levelup: levelup.ogg
  animations:
    - {name: stance, frames: 4, duration: 16, looped: true}
    - {name: swing, frames: 6, duration: 12}
enemies:
  - name: skeleton
    pos: [8.5, 2.5]
    hp: 40
    movement: flying
    categories: [undead]
    vulnerable:
      fire: 150
    xp_reward: 60
    defeat_status: skeleton_defeated
    ai_powers:
      on_hit: 3
    invincible_requires_not_status: [altar_destroyed]
    stats:
      avoidance: 10
      hp: 45
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "arena.yaml", sc.Map)
	assert.Equal(t, "hero", sc.Hero.Name)
	assert.Equal(t, float32(1.2), sc.Hero.AttackRange)
	require.Len(t, sc.Enemies, 1)
	assert.Equal(t, []string{"undead"}, sc.Enemies[0].Categories)
	assert.Empty(t, sc.Allies)
}

func TestStatBlock(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)
	elements := power.NewCatalog(nil, []string{"fire", "ice"})

	hero, err := sc.Hero.StatBlock(true, elements)
	require.NoError(t, err)
	assert.True(t, hero.Hero)
	assert.Equal(t, model.FPoint{X: 1.5, Y: 2.5}, hero.Pos)
	assert.Equal(t, 120, hero.HP)
	assert.Equal(t, 40, hero.MP)
	assert.Equal(t, 6, hero.Get(model.StatDmgMin))
	assert.Equal(t, 90, hero.Get(model.StatAccuracy))
	assert.Equal(t, 20, hero.Cooldown)
	assert.Equal(t, []int{100, 100}, hero.Vulnerable)
	assert.Equal(t, model.AvatarStance, hero.State)

	sk, err := sc.Enemies[0].StatBlock(false, elements)
	require.NoError(t, err)
	assert.Equal(t, 45, sk.HP, "stats.hp overrides hp")
	assert.Equal(t, model.MovementFlying, sk.MovementType)
	assert.Equal(t, []int{150, 100}, sk.Vulnerable)
	assert.Equal(t, 60, sk.XPReward)
	assert.Equal(t, "skeleton_defeated", sk.DefeatStatus)
	assert.Equal(t, []string{"altar_destroyed"}, sk.InvincibleRequiresNotStatus)
	require.NotNil(t, sk.AIPower(model.AITriggerHit))
	assert.Equal(t, 3, sk.AIPower(model.AITriggerHit).PowerID)
	assert.Nil(t, sk.AIPower(model.AITriggerDebuff))
}

func TestStatBlockUnknownElement(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)

	_, err = sc.Enemies[0].StatBlock(false, power.NewCatalog(nil, []string{"ice"}))
	require.ErrorIs(t, err, ErrBadScenario)
}

func TestSoundsAndAnimations(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)

	files := sc.Hero.SoundFiles()
	assert.Equal(t, []string{"swing1.ogg", "swing2.ogg"}, files.Attack["swing"])
	assert.Equal(t, "levelup.ogg", files.LevelUp)

	set := sc.Hero.AnimationSet()
	require.NotNil(t, set)
	require.NotNil(t, set.Animation("swing"))
	assert.Nil(t, set.Animation("run"))

	assert.Nil(t, sc.Enemies[0].AnimationSet())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "hero: [\n"},
		{"no hero", "enemies: [{name: a, hp: 1}]"},
		{"no enemies", "hero: {name: h, hp: 1}"},
		{"duplicate", "hero: {name: a, hp: 1}\nenemies: [{name: a, hp: 1}]"},
		{"zero hp", "hero: {name: h, hp: 1}\nenemies: [{name: a}]"},
		{"unknown stat", "hero: {name: h, hp: 1, stats: {luck: 3}}\nenemies: [{name: a, hp: 1}]"},
		{"unknown trigger", "hero: {name: h, hp: 1}\nenemies: [{name: a, hp: 1, ai_powers: {on_death: 2}}]"},
		{"nameless ally", "hero: {name: h, hp: 1}\nallies: [{hp: 1}]\nenemies: [{name: a, hp: 1}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "skeleton", sc.Enemies[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
