// Package skirmish runs a frame-stepped fight: AI controllers act, hazards
// fly and strike through the combat resolver, queued powers activate and
// every entity's counters tick.
package skirmish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/emberfall/internal/ai"
	"github.com/udisondev/emberfall/internal/game/combat"
	"github.com/udisondev/emberfall/internal/game/entity"
	"github.com/udisondev/emberfall/internal/game/geo"
	"github.com/udisondev/emberfall/internal/game/power"
	"github.com/udisondev/emberfall/internal/model"
)

// hitRadius — расстояние, на котором hazard задевает персонажа.
const hitRadius = 0.5

// Stats counts resolved hits.
type Stats struct {
	Hits    int
	Crits   int
	Misses  int
	Kills   int
	Damage  int
	Frames  int
	Hazards int
}

// Result is the outcome of a run.
type Result struct {
	Stats
	HeroAlive    bool
	EnemiesAlive int
}

// World owns the entities and live hazards of one skirmish.
//
// Not thread-safe: Step and Run must be called from one goroutine.
type World struct {
	collider *geo.Map
	catalog  *power.Catalog
	resolver *combat.Resolver
	fps      int

	hero     *entity.Entity
	entities []*entity.Entity
	hazards  []*liveHazard

	// blocked — тайл, занятый персонажем в коллайдере
	blocked map[*model.StatBlock]model.Point

	ticker *ai.TickManager
	stats  Stats
}

type liveHazard struct {
	h   *model.Hazard
	hit map[*model.StatBlock]bool
}

// NewWorld creates an empty World. The resolver's hit observer is taken over
// to count hits.
func NewWorld(collider *geo.Map, catalog *power.Catalog, resolver *combat.Resolver, framesPerSec int) *World {
	w := &World{
		collider: collider,
		catalog:  catalog,
		resolver: resolver,
		fps:      framesPerSec,
		ticker:   ai.NewTickManager(),
		blocked:  make(map[*model.StatBlock]model.Point),
	}
	resolver.SetHitObserver(w.observe)
	w.ticker.SetFrameHook(func() bool {
		w.afterControllers()
		return !w.Decided()
	})
	return w
}

// AddEntity places e in the world, blocks its tile and registers ctrl, if
// any. The first hero added becomes the world's hero.
func (w *World) AddEntity(e *entity.Entity, ctrl ai.Controller) error {
	s := e.Stats()
	if s.Hero && w.hero == nil {
		w.hero = e
	}
	e.SetResolver(w.resolver)
	w.entities = append(w.entities, e)
	if !s.IsDead() {
		w.collider.Block(s.Pos.X, s.Pos.Y)
		w.blocked[s] = s.Pos.Tile()
	}

	if ctrl == nil {
		return nil
	}
	if err := w.ticker.Register(s.Name, ctrl); err != nil {
		return fmt.Errorf("adding %s: %w", s.Name, err)
	}
	return nil
}

// Hero returns the hero entity, or nil.
func (w *World) Hero() *entity.Entity {
	return w.hero
}

// Entities returns every entity, dead ones included.
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// Hazards returns the number of live hazards.
func (w *World) Hazards() int {
	return len(w.hazards)
}

// Stats returns the hit counters so far.
func (w *World) Stats() Stats {
	return w.stats
}

// Scan calls fn for every entity until fn returns false.
func (w *World) Scan(fn func(*entity.Entity) bool) {
	for _, e := range w.entities {
		if !fn(e) {
			return
		}
	}
}

// Attack fires powerID from src toward target.
func (w *World) Attack(src, target *entity.Entity, powerID int) {
	s := src.Stats()
	h, err := w.catalog.NewHazard(powerID, s, s.SourceType(), target.Stats().Pos)
	if err != nil {
		slog.Warn("attack failed", "entity", s.Name, "power", powerID, "err", err)
		return
	}
	w.Spawn(h)
}

// Cast queues powerID for activation by src at pos.
func (w *World) Cast(src *entity.Entity, powerID int, pos model.FPoint) {
	w.catalog.Activate(powerID, src.Stats(), pos)
}

// Spawn adds a live hazard. It strikes starting with the next hazard update.
func (w *World) Spawn(h *model.Hazard) {
	w.hazards = append(w.hazards, &liveHazard{h: h, hit: make(map[*model.StatBlock]bool)})
	w.stats.Hazards++
}

// Step runs one frame.
func (w *World) Step() {
	w.ticker.TickAll()
	w.afterControllers()
}

// Run steps until limit frames ran, one side is wiped out or ctx is done.
// interval > 0 paces frames in real time.
func (w *World) Run(ctx context.Context, limit int, interval time.Duration) (Result, error) {
	err := w.ticker.Start(ctx, interval, limit)
	res := w.Result()
	slog.Info("skirmish finished",
		"frames", res.Frames,
		"hero_alive", res.HeroAlive,
		"enemies_alive", res.EnemiesAlive,
		"hits", res.Hits,
		"kills", res.Kills)
	return res, err
}

// Decided reports whether the hero is dead or no enemy is alive.
func (w *World) Decided() bool {
	r := w.Result()
	return !r.HeroAlive || r.EnemiesAlive == 0
}

// Result summarizes the world state.
func (w *World) Result() Result {
	r := Result{Stats: w.stats}
	r.HeroAlive = w.hero != nil && !w.hero.Stats().IsDead()
	for _, e := range w.entities {
		s := e.Stats()
		if !s.Hero && !s.HeroAlly && !s.IsDead() {
			r.EnemiesAlive++
		}
	}
	return r
}

func (w *World) afterControllers() {
	w.syncBlocks()

	for _, a := range w.catalog.Drain() {
		h, err := w.catalog.NewHazard(a.PowerID, a.Source, a.Source.SourceType(), a.Target)
		if err != nil {
			slog.Warn("power activation failed", "power", a.PowerID, "source", a.Source.Name, "err", err)
			continue
		}
		w.Spawn(h)
	}

	w.updateHazards()

	for _, e := range w.entities {
		e.Logic(w.fps)
	}
	w.stats.Frames++
}

// updateHazards strikes entities under each hazard, then moves it.
// A missile is spent on its first hit; a reflected one keeps flying
// and may strike its former source.
func (w *World) updateHazards() {
	live := w.hazards[:0]
	for _, lh := range w.hazards {
		if w.strike(lh) && lh.h.Missile {
			continue
		}
		if !lh.h.Logic() {
			continue
		}
		if lh.h.Missile && !w.collider.IsValidPosition(lh.h.Pos.X, lh.h.Pos.Y, model.MovementFlying, false) {
			continue
		}
		live = append(live, lh)
	}
	clear(w.hazards[len(live):])
	w.hazards = live
}

// strike resolves lh against every entity in reach. Returns true if a
// missile connected.
func (w *World) strike(lh *liveHazard) bool {
	h := lh.h
	for _, e := range w.entities {
		s := e.Stats()
		if lh.hit[s] || s.IsDead() || s == h.Src || !opposes(h.SourceType, s) {
			continue
		}
		if h.Pos.Distance(s.Pos) > hitRadius {
			continue
		}

		srcBefore := h.SourceType
		hit := e.TakeHit(h)
		lh.hit[s] = true

		if h.SourceType != srcBefore {
			// отражён: новый владелец, старые цели снова доступны
			clear(lh.hit)
			lh.hit[s] = true
			return false
		}
		if hit && h.Missile {
			return true
		}
	}
	return false
}

// opposes reports whether a hazard owned by side src may strike s.
// Hero and ally hazards reach only enemies, enemy hazards only the hero's side.
func opposes(src model.SourceType, s *model.StatBlock) bool {
	return (src == model.SourceEnemy) != (s.SourceType() == model.SourceEnemy)
}

// syncBlocks moves each entity's collider block to the tile it now stands on.
// The dead hold no tile.
func (w *World) syncBlocks() {
	for _, e := range w.entities {
		s := e.Stats()
		old, ok := w.blocked[s]
		if s.IsDead() {
			if ok {
				w.collider.Unblock(old.Center().X, old.Center().Y)
				delete(w.blocked, s)
			}
			continue
		}
		tile := s.Pos.Tile()
		if ok && old == tile {
			continue
		}
		if ok {
			w.collider.Unblock(old.Center().X, old.Center().Y)
		}
		w.collider.Block(s.Pos.X, s.Pos.Y)
		w.blocked[s] = tile
	}
}

func (w *World) observe(r combat.HitResult) {
	w.stats.Hits++
	w.stats.Damage += r.Damage
	if r.Crit {
		w.stats.Crits++
	}
	if r.Miss {
		w.stats.Misses++
	}
	if r.Killed {
		w.stats.Kills++
	}
}
