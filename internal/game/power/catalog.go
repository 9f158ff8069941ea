package power

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/emberfall/internal/model"
)

// ErrUnknownPower is returned when a power id is not in the catalog.
var ErrUnknownPower = errors.New("power: unknown power")

// Activation is a power queued for activation by the power-activation subsystem.
type Activation struct {
	PowerID int
	Source  *model.StatBlock
	Target  model.FPoint
}

type table struct {
	powers   map[int]*Power
	elements []string
}

// Catalog is the table of power definitions indexed by id.
//
// Lookups are lock-free: the table is swapped atomically on reload, so a
// watcher goroutine may call Replace while the game-logic thread resolves hits.
// Queued activations are guarded by a mutex.
type Catalog struct {
	table atomic.Pointer[table]

	mu      sync.Mutex
	pending []Activation
}

// NewCatalog creates a catalog from power definitions and element names.
func NewCatalog(powers []*Power, elements []string) *Catalog {
	c := &Catalog{}
	c.Replace(powers, elements)
	return c
}

// Replace swaps the whole table.
func (c *Catalog) Replace(powers []*Power, elements []string) {
	t := &table{
		powers:   make(map[int]*Power, len(powers)),
		elements: slices.Clone(elements),
	}
	for _, p := range powers {
		t.powers[p.ID] = p
	}
	c.table.Store(t)
}

// Power returns the definition for id, or nil.
func (c *Catalog) Power(id int) *Power {
	return c.table.Load().powers[id]
}

// Len returns the number of powers.
func (c *Catalog) Len() int {
	return len(c.table.Load().powers)
}

// Elements returns the element names; the index of a name is its element id.
func (c *Catalog) Elements() []string {
	return slices.Clone(c.table.Load().elements)
}

// ElementIndex returns the element id for name, or model.ElementNone.
func (c *Catalog) ElementIndex(name string) int {
	if i := slices.Index(c.table.Load().elements, name); i >= 0 {
		return i
	}
	return model.ElementNone
}

// Effect applies the power's on-hit effects: PostEffects to the target and
// BuffEffects to the source.
func (c *Catalog) Effect(target, source *model.StatBlock, powerID int, src model.SourceType) {
	p := c.Power(powerID)
	if p == nil {
		slog.Warn("effect of unknown power", "power", powerID)
		return
	}
	if target != nil {
		for _, d := range p.PostEffects {
			target.Effects.Add(d.Instance(src))
		}
	}
	if source != nil {
		for _, d := range p.BuffEffects {
			source.Effects.Add(d.Instance(src))
		}
	}
}

// Activate queues powerID for activation by source, aimed at target.
func (c *Catalog) Activate(powerID int, source *model.StatBlock, target model.FPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, Activation{PowerID: powerID, Source: source, Target: target})
}

// Drain returns and clears the queued activations.
func (c *Catalog) Drain() []Activation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

// NewHazard builds a hazard for powerID fired by src toward target.
// Missiles start at the source and travel toward the target; other powers
// are placed on the target.
func (c *Catalog) NewHazard(powerID int, src *model.StatBlock, srcType model.SourceType, target model.FPoint) (*model.Hazard, error) {
	p := c.Power(powerID)
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPower, powerID)
	}

	h := &model.Hazard{
		PowerID:    p.ID,
		DmgMin:     src.Get(model.StatDmgMin),
		DmgMax:     src.Get(model.StatDmgMax),
		Accuracy:   src.Get(model.StatAccuracy),
		CritChance: src.Get(model.StatCrit),
		Element:    p.Element,

		SourceType: srcType,
		Src:        src,

		Missile:          p.Missile,
		ArmorPenetration: p.TraitArmorPenetration,
		CritsImpaired:    p.TraitCritsImpaired,
		HPSteal:          p.HPSteal,
		MPSteal:          p.MPSteal,

		TargetMovementNormal:     p.TargetMovementNormal,
		TargetMovementFlying:     p.TargetMovementFlying,
		TargetMovementIntangible: p.TargetMovementIntangible,
		WallsBlockAOE:            p.WallsBlockAOE,

		Lifespan:     p.Lifespan,
		BaseLifespan: p.Lifespan,
		BaseSpeed:    p.Speed,

		PostPower:       p.PostPower,
		PostPowerChance: p.PostPowerChance,
	}

	if p.Missile {
		h.Pos = src.Pos
		h.SetAngle(float32(math.Atan2(float64(target.Y-src.Pos.Y), float64(target.X-src.Pos.X))))
	} else {
		h.Pos = target
	}
	return h, nil
}
