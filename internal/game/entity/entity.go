// Package entity drives a single character: its animation, sounds,
// per-frame movement and hit resolution.
package entity

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/emberfall/internal/game/combat"
	"github.com/udisondev/emberfall/internal/model"
)

// Collider is the part of the collision map the entity moves through.
type Collider interface {
	IsValidPosition(x, y float32, mt model.MovementType, isHero bool) bool
	Move(x, y *float32, dx, dy float32, mt model.MovementType, isHero bool) bool
	W() int
	H() int
}

// Audio loads and plays sound files. Play with an empty channel mixes freely.
type Audio interface {
	Load(path string) int
	Unload(id int)
	Play(id int, channel string)
}

// AnimationSource returns fresh animations by name, nil if unknown.
type AnimationSource interface {
	Animation(name string) *Animation
}

// HitResolver resolves hazards striking a target.
type HitResolver interface {
	TakeHit(t combat.Target, h *model.Hazard) bool
}

// SoundFiles lists the sound files of an entity.
type SoundFiles struct {
	Attack  map[string][]string // by animation name
	Hit     []string
	Die     []string
	CritDie []string
	Block   []string
	LevelUp string
}

// Entity is a character on the map.
//
// Not thread-safe: owned by the game-logic thread.
type Entity struct {
	stats *model.StatBlock

	collider Collider
	dice     combat.Dice
	resolver HitResolver

	animations AnimationSource
	active     *Animation

	audio        Audio
	files        SoundFiles
	soundAttack  map[string][]int
	soundHit     []int
	soundDie     []int
	soundCritDie []int
	soundBlock   []int
	soundLevelUp int // 0 = none
}

var _ combat.Target = (*Entity)(nil)

// New creates an Entity for stats moving through collider.
// dice is the shared random source, also used for sound picks.
func New(stats *model.StatBlock, collider Collider, dice combat.Dice) *Entity {
	return &Entity{
		stats:    stats,
		collider: collider,
		dice:     dice,
	}
}

// SetResolver sets the resolver used by TakeHit.
func (e *Entity) SetResolver(r HitResolver) {
	e.resolver = r
}

// SetAnimations sets the animation source.
func (e *Entity) SetAnimations(src AnimationSource) {
	e.animations = src
}

// SetAudio sets the audio sink and the entity's sound files.
// Call LoadSounds to load them.
func (e *Entity) SetAudio(audio Audio, files SoundFiles) {
	e.audio = audio
	e.files = files
}

// Stats returns the entity's StatBlock.
func (e *Entity) Stats() *model.StatBlock {
	return e.stats
}

// Name returns the entity name.
func (e *Entity) Name() string {
	return e.stats.Name
}

// TakeHit resolves h striking the entity. Returns false on a miss or when
// no resolver is set.
func (e *Entity) TakeHit(h *model.Hazard) bool {
	if e.resolver == nil {
		return false
	}
	return e.resolver.TakeHit(e, h)
}

// Logic advances stats counters and the active animation by one frame.
func (e *Entity) Logic(framesPerSec int) {
	e.stats.Logic(framesPerSec)
	if e.active != nil {
		e.active.Advance()
	}
}

// HasAnimations reports whether an animation source is set.
func (e *Entity) HasAnimations() bool {
	return e.animations != nil
}

// SetAnimation makes the named animation active. Returns true when the
// animation is active afterwards; a missing animation is logged and leaves
// none active.
func (e *Entity) SetAnimation(name string) bool {
	if e.active != nil && e.active.Name() == name {
		return true
	}

	e.active = nil
	if e.animations != nil {
		e.active = e.animations.Animation(name)
	}
	if e.active == nil {
		slog.Error("animation not found", "entity", e.stats.Name, "animation", name)
		return false
	}
	return true
}

// ActiveAnimation returns the active animation, or nil.
func (e *Entity) ActiveAnimation() *Animation {
	return e.active
}

// ActiveAnimationName returns the active animation name, "" if none.
func (e *Entity) ActiveAnimationName() string {
	if e.active == nil {
		return ""
	}
	return e.active.Name()
}

// ResetActiveAnimation rewinds the active animation, if any.
func (e *Entity) ResetActiveAnimation() {
	if e.active != nil {
		e.active.Reset()
	}
}

// LoadSounds loads sound files through the audio sink, replacing any loaded
// sounds. files == nil loads the entity's own files.
func (e *Entity) LoadSounds(files *SoundFiles) {
	e.UnloadSounds()
	if e.audio == nil {
		return
	}
	if files == nil {
		files = &e.files
	}

	e.soundAttack = make(map[string][]int, len(files.Attack))
	for anim, paths := range files.Attack {
		e.soundAttack[anim] = e.loadAll(paths)
	}
	e.soundHit = e.loadAll(files.Hit)
	e.soundDie = e.loadAll(files.Die)
	e.soundCritDie = e.loadAll(files.CritDie)
	e.soundBlock = e.loadAll(files.Block)
	if files.LevelUp != "" {
		e.soundLevelUp = e.audio.Load(files.LevelUp)
	}
}

func (e *Entity) loadAll(paths []string) []int {
	if len(paths) == 0 {
		return nil
	}
	ids := make([]int, 0, len(paths))
	for _, p := range paths {
		ids = append(ids, e.audio.Load(p))
	}
	return ids
}

// UnloadSounds releases every loaded sound.
func (e *Entity) UnloadSounds() {
	if e.audio == nil {
		return
	}
	for _, ids := range e.soundAttack {
		e.unloadAll(ids)
	}
	e.unloadAll(e.soundHit)
	e.unloadAll(e.soundDie)
	e.unloadAll(e.soundCritDie)
	e.unloadAll(e.soundBlock)
	if e.soundLevelUp != 0 {
		e.audio.Unload(e.soundLevelUp)
	}

	e.soundAttack = nil
	e.soundHit = nil
	e.soundDie = nil
	e.soundCritDie = nil
	e.soundBlock = nil
	e.soundLevelUp = 0
}

func (e *Entity) unloadAll(ids []int) {
	for _, id := range ids {
		e.audio.Unload(id)
	}
}

// PlaySound plays a random sound of the given kind on the channel
// "entity_<kind>_<id>", so the same sound never overlaps itself.
// The pick draws from the shared dice only when the list is non-empty.
func (e *Entity) PlaySound(kind model.SoundKind) {
	var ids []int
	switch kind {
	case model.SoundHit:
		ids = e.soundHit
	case model.SoundDie:
		ids = e.soundDie
	case model.SoundCritDie:
		ids = e.soundCritDie
	case model.SoundBlock:
		ids = e.soundBlock
	}
	if len(ids) == 0 {
		return
	}
	id := ids[e.dice.IntN(len(ids))]
	e.audio.Play(id, fmt.Sprintf("entity_%s_%d", kind, id))
}

// PlayAttackSound plays a random sound bound to the attack animation name.
func (e *Entity) PlayAttackSound(name string) {
	ids := e.soundAttack[name]
	if len(ids) == 0 {
		return
	}
	e.audio.Play(ids[e.dice.IntN(len(ids))], "")
}

// PlayLevelUpSound plays the level-up sound, if loaded.
func (e *Entity) PlayLevelUpSound() {
	if e.soundLevelUp == 0 {
		return
	}
	e.audio.Play(e.soundLevelUp, "")
}

// Direction deltas, indexed by model.StatBlock.Direction (0 = south-west,
// counter-clockwise in screen space).
var (
	directionDeltaX = [8]int{-1, -1, -1, 0, 1, 1, 1, 0}
	directionDeltaY = [8]int{1, 0, -1, -1, -1, 0, 1, 1}
	speedMultiplier = [8]float32{
		1 / math.Sqrt2, 1, 1 / math.Sqrt2, 1,
		1 / math.Sqrt2, 1, 1 / math.Sqrt2, 1,
	}
)

// maxRecoverySteps bounds MoveFromOffendingTile. A nudge moves at least
// 0.05 tiles, so twenty steps cross any tile.
const maxRecoverySteps = 64

// Move advances the entity one frame in the direction it faces.
// Returns false when the entity may not move this frame or the move was
// cut short by a wall.
func (e *Entity) Move() bool {
	e.MoveFromOffendingTile()

	s := e.stats
	if s.Effects.KnockbackSpeed != 0 {
		return false
	}
	if s.Effects.Stun || s.Effects.Speed == 0 {
		return false
	}
	if s.ChargeSpeed != 0 {
		return false
	}

	dir := s.Direction
	if dir < 0 || dir > 7 {
		slog.Warn("invalid direction", "entity", s.Name, "direction", dir)
		return false
	}

	speed := s.Speed * speedMultiplier[dir] * float32(s.Effects.Speed) / 100
	dx := speed * float32(directionDeltaX[dir])
	dy := speed * float32(directionDeltaY[dir])

	return e.collider.Move(&s.Pos.X, &s.Pos.Y, dx, dy, s.MovementType, s.Hero)
}

// MoveFromOffendingTile pushes the entity off a tile it may not stand on.
//
// Nudges toward valid neighbours first; when no neighbour is valid, jumps to
// the nearest valid tile centre found by an expanding ring search. Gives up
// after maxRecoverySteps and logs once if the position changed.
func (e *Entity) MoveFromOffendingTile() {
	s := e.stats
	original := s.Pos

	for i := 0; !e.isValid(s.Pos.X, s.Pos.Y); i++ {
		if i >= maxRecoverySteps {
			slog.Warn("entity stuck, giving up", "entity", s.Name, "x", s.Pos.X, "y", s.Pos.Y)
			break
		}

		x, y := s.Pos.X, s.Pos.Y
		var pushX, pushY float32
		if e.isValid(x+1, y) {
			pushX += 0.1 * (2 - (float32(int(x+1)) + 0.5 - x))
		}
		if e.isValid(x-1, y) {
			pushX -= 0.1 * (2 - (x - (float32(int(x-1)) + 0.5)))
		}
		if e.isValid(x, y+1) {
			pushY += 0.1 * (2 - (float32(int(y+1)) + 0.5 - y))
		}
		if e.isValid(x, y-1) {
			pushY -= 0.1 * (2 - (y - (float32(int(y-1)) + 0.5)))
		}

		s.Pos.X += pushX
		s.Pos.Y += pushY

		if pushX == 0 && pushY == 0 {
			p, ok := e.nearestValidTile()
			if !ok {
				slog.Warn("entity stuck, no valid tile on map", "entity", s.Name, "x", s.Pos.X, "y", s.Pos.Y)
				break
			}
			s.Pos = p
		}
	}

	if s.Pos != original {
		slog.Info("entity was stuck and has been moved",
			"entity", s.Name,
			"from_x", original.X,
			"from_y", original.Y,
			"to_x", s.Pos.X,
			"to_y", s.Pos.Y)
	}
}

// nearestValidTile searches rings of growing Chebyshev radius around the
// entity's tile and returns the closest valid tile centre of the first ring
// that has one.
func (e *Entity) nearestValidTile() (model.FPoint, bool) {
	s := e.stats
	src := s.Pos.Tile()
	maxRadius := max(e.collider.W(), e.collider.H())

	for radius := 1; radius <= maxRadius; radius++ {
		var (
			best     model.FPoint
			bestDist float32
			found    bool
		)
		for i := src.X - radius; i <= src.X+radius; i++ {
			for j := src.Y - radius; j <= src.Y+radius; j++ {
				c := model.Point{X: i, Y: j}.Center()
				if !e.isValid(c.X, c.Y) {
					continue
				}
				if d := s.Pos.DistanceSquared(c); !found || d < bestDist {
					best, bestDist, found = c, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return model.FPoint{}, false
}

func (e *Entity) isValid(x, y float32) bool {
	return e.collider.IsValidPosition(x, y, e.stats.MovementType, e.stats.Hero)
}

// DirectionTo returns the direction index that faces from toward to.
func DirectionTo(from, to model.FPoint) int {
	angle := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
	// octant 0 = east, counting clockwise in screen space (y down)
	octant := int(math.Round(angle/(math.Pi/4))) + 8
	return (octant + 5) % 8
}
