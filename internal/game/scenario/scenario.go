// Package scenario loads skirmish setups: the map, the hero, allies and
// enemies with their stats, sounds and animations.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/emberfall/internal/game/entity"
	"github.com/udisondev/emberfall/internal/model"
)

// ErrBadScenario is returned for structurally invalid scenario files.
var ErrBadScenario = errors.New("scenario: invalid")

// Scenario is a skirmish setup.
type Scenario struct {
	// Map overrides the engine map path when set.
	Map     string      `yaml:"map"`
	Hero    Character   `yaml:"hero"`
	Allies  []Character `yaml:"allies"`
	Enemies []Character `yaml:"enemies"`
}

// Character describes one combatant.
type Character struct {
	Name     string     `yaml:"name"`
	Pos      [2]float32 `yaml:"pos"`
	HP       int        `yaml:"hp"`
	MP       int        `yaml:"mp"`
	Level    int        `yaml:"level"`
	Speed    float32    `yaml:"speed"`
	Movement string     `yaml:"movement"`

	// Stats by name (dmg_min, accuracy, poise, ...).
	Stats map[string]int `yaml:"stats"`
	// Vulnerable by element name, percent; unlisted elements take 100.
	Vulnerable map[string]int `yaml:"vulnerable"`

	Categories  []string `yaml:"categories"`
	PowerFilter []int    `yaml:"power_filter"`

	Power       int     `yaml:"power"`
	AttackRange float32 `yaml:"attack_range"`
	AggroRange  float32 `yaml:"aggro_range"`
	Cooldown    int     `yaml:"cooldown"`
	CooldownHit int     `yaml:"cooldown_hit"`

	XPReward     int    `yaml:"xp_reward"`
	DefeatStatus string `yaml:"defeat_status"`

	// AIPowers by trigger: on_hit | on_debuff.
	AIPowers map[string]int `yaml:"ai_powers"`

	InvincibleRequiresStatus    []string `yaml:"invincible_requires_status"`
	InvincibleRequiresNotStatus []string `yaml:"invincible_requires_not_status"`

	PerfectAccuracy  bool `yaml:"perfect_accuracy"`
	PreventInterrupt bool `yaml:"prevent_interrupt"`
	UntransformOnHit bool `yaml:"untransform_on_hit"`

	Sounds     Sounds      `yaml:"sounds"`
	Animations []Animation `yaml:"animations"`
}

// Sounds lists sound files of a character.
type Sounds struct {
	Attack  map[string][]string `yaml:"attack"`
	Hit     []string            `yaml:"hit"`
	Die     []string            `yaml:"die"`
	CritDie []string            `yaml:"critdie"`
	Block   []string            `yaml:"block"`
	LevelUp string              `yaml:"levelup"`
}

// Animation is one named animation of a character.
type Animation struct {
	Name     string `yaml:"name"`
	Frames   int    `yaml:"frames"`
	Duration int    `yaml:"duration"`
	Looped   bool   `yaml:"looped"`
}

var aiTriggers = map[string]model.AITrigger{
	"on_hit":    model.AITriggerHit,
	"on_debuff": model.AITriggerDebuff,
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a YAML scenario from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", path, err)
	}
	slog.Info("scenario loaded",
		"path", path,
		"hero", sc.Hero.Name,
		"allies", len(sc.Allies),
		"enemies", len(sc.Enemies))
	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Hero.Name == "" {
		return fmt.Errorf("%w: hero has no name", ErrBadScenario)
	}
	if len(sc.Enemies) == 0 {
		return fmt.Errorf("%w: no enemies", ErrBadScenario)
	}

	seen := make(map[string]bool, len(sc.Enemies)+len(sc.Allies)+1)
	all := slices.Concat([]Character{sc.Hero}, sc.Allies, sc.Enemies)
	for _, c := range all {
		if c.Name == "" {
			return fmt.Errorf("%w: character without name", ErrBadScenario)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate character %q", ErrBadScenario, c.Name)
		}
		seen[c.Name] = true

		if c.HP <= 0 {
			return fmt.Errorf("%w: %s: hp must be positive", ErrBadScenario, c.Name)
		}
		for name := range c.Stats {
			if _, ok := model.ParseStat(name); !ok {
				return fmt.Errorf("%w: %s: unknown stat %q", ErrBadScenario, c.Name, name)
			}
		}
		for trigger := range c.AIPowers {
			if _, ok := aiTriggers[trigger]; !ok {
				return fmt.Errorf("%w: %s: unknown ai trigger %q", ErrBadScenario, c.Name, trigger)
			}
		}
	}
	return nil
}

// ElementTable resolves element names to element ids. Implemented by
// *power.Catalog.
type ElementTable interface {
	Elements() []string
	ElementIndex(name string) int
}

// StatBlock builds the character's StatBlock. Vulnerabilities to elements
// missing from the table are an error.
func (c Character) StatBlock(hero bool, elements ElementTable) (*model.StatBlock, error) {
	s := model.NewStatBlock(c.Name, hero, c.HP, c.MP)
	s.Pos = model.FPoint{X: c.Pos[0], Y: c.Pos[1]}
	s.Speed = c.Speed
	s.MovementType = model.ParseMovementType(c.Movement)
	if c.Level > 0 {
		s.Level = c.Level
	}

	for name, v := range c.Stats {
		stat, ok := model.ParseStat(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s: unknown stat %q", ErrBadScenario, c.Name, name)
		}
		s.SetBase(stat, v)
	}
	// hp/mp из stats переопределяют максимум; текущие значения — полные
	s.HP = s.Get(model.StatHPMax)
	s.MP = s.Get(model.StatMPMax)

	s.Vulnerable = make([]int, len(elements.Elements()))
	for i := range s.Vulnerable {
		s.Vulnerable[i] = 100
	}
	for name, v := range c.Vulnerable {
		i := elements.ElementIndex(name)
		if i == model.ElementNone {
			return nil, fmt.Errorf("%w: %s: unknown element %q", ErrBadScenario, c.Name, name)
		}
		s.Vulnerable[i] = v
	}

	s.Categories = c.Categories
	s.PowerFilter = c.PowerFilter
	s.Cooldown = c.Cooldown
	s.CooldownHit = c.CooldownHit
	s.XPReward = c.XPReward
	s.DefeatStatus = c.DefeatStatus
	s.InvincibleRequiresStatus = c.InvincibleRequiresStatus
	s.InvincibleRequiresNotStatus = c.InvincibleRequiresNotStatus
	s.PerfectAccuracy = c.PerfectAccuracy
	s.PreventInterrupt = c.PreventInterrupt
	s.UntransformOnHit = c.UntransformOnHit

	for trigger, powerID := range c.AIPowers {
		t, ok := aiTriggers[trigger]
		if !ok {
			return nil, fmt.Errorf("%w: %s: unknown ai trigger %q", ErrBadScenario, c.Name, trigger)
		}
		s.SetAIPower(t, powerID)
	}
	return s, nil
}

// SoundFiles converts the character's sounds for the entity controller.
func (c Character) SoundFiles() entity.SoundFiles {
	return entity.SoundFiles{
		Attack:  c.Sounds.Attack,
		Hit:     c.Sounds.Hit,
		Die:     c.Sounds.Die,
		CritDie: c.Sounds.CritDie,
		Block:   c.Sounds.Block,
		LevelUp: c.Sounds.LevelUp,
	}
}

// AnimationSet builds the character's animations, nil if it has none.
func (c Character) AnimationSet() *entity.AnimationSet {
	if len(c.Animations) == 0 {
		return nil
	}
	defs := make([]entity.AnimationDef, 0, len(c.Animations))
	for _, a := range c.Animations {
		defs = append(defs, entity.AnimationDef{
			Name:     a.Name,
			Frames:   a.Frames,
			Duration: a.Duration,
			Looped:   a.Looped,
		})
	}
	return entity.NewAnimationSet(defs...)
}
