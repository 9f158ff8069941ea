package geo

import (
	"errors"

	"github.com/udisondev/emberfall/internal/model"
)

// ErrBadMap is returned when map data is malformed.
var ErrBadMap = errors.New("geo: malformed map")

// Map is the tile collision map of one level.
// Answers validity, movement and line-of-movement queries for entities and hazards.
//
// Not thread-safe: owned by the game-logic thread.
type Map struct {
	w, h     int
	tiles    []Tile
	occupied []bool
}

// NewMap creates a w×h map with every tile open.
func NewMap(w, h int) *Map {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Map{
		w:        w,
		h:        h,
		tiles:    make([]Tile, w*h),
		occupied: make([]bool, w*h),
	}
}

// W returns the map width in tiles.
func (m *Map) W() int { return m.w }

// H returns the map height in tiles.
func (m *Map) H() int { return m.h }

// Set sets the tile at (x, y). Out-of-range coordinates are ignored.
func (m *Map) Set(x, y int, t Tile) {
	if m.isOutside(x, y) {
		return
	}
	m.tiles[y*m.w+x] = t
}

// Tile returns the tile at (x, y); TileWall outside the map.
func (m *Map) Tile(x, y int) Tile {
	if m.isOutside(x, y) {
		return TileWall
	}
	return m.tiles[y*m.w+x]
}

func (m *Map) isOutside(x, y int) bool {
	return x < 0 || y < 0 || x >= m.w || y >= m.h
}

// IsValidTile reports whether a mover of the given class may stand on tile (x, y).
// Entity occupancy is not considered.
func (m *Map) IsValidTile(x, y int, mt model.MovementType, isHero bool) bool {
	if m.isOutside(x, y) {
		return false
	}
	if mt == model.MovementIntangible {
		return true
	}
	switch m.tiles[y*m.w+x] {
	case TileOpen:
		return true
	case TilePit:
		return mt == model.MovementFlying
	case TileEnemyBarrier:
		return isHero
	default:
		return false
	}
}

// IsValidPosition reports whether a mover of the given class may stand at (x, y).
func (m *Map) IsValidPosition(x, y float32, mt model.MovementType, isHero bool) bool {
	if x < 0 || y < 0 {
		return false
	}
	return m.IsValidTile(int(x), int(y), mt, isHero)
}

// Block marks the tile under (x, y) as occupied by an entity.
func (m *Map) Block(x, y float32) {
	m.setOccupied(x, y, true)
}

// Unblock clears the entity occupancy of the tile under (x, y).
func (m *Map) Unblock(x, y float32) {
	m.setOccupied(x, y, false)
}

// IsBlocked reports whether an entity occupies the tile under (x, y).
func (m *Map) IsBlocked(x, y float32) bool {
	if x < 0 || y < 0 || m.isOutside(int(x), int(y)) {
		return false
	}
	return m.occupied[int(y)*m.w+int(x)]
}

func (m *Map) setOccupied(x, y float32, v bool) {
	if x < 0 || y < 0 || m.isOutside(int(x), int(y)) {
		return
	}
	m.occupied[int(y)*m.w+int(x)] = v
}

// Move moves (*x, *y) by (dx, dy) in sub-tile steps.
// A blocked diagonal step slides along whichever axis is still free.
// Returns true only if the full displacement was applied; the position is
// updated in place either way.
func (m *Map) Move(x, y *float32, dx, dy float32, mt model.MovementType, isHero bool) bool {
	start := model.NewFPoint(*x, *y).Tile()
	full := true

	for dx != 0 || dy != 0 {
		sx := clampStep(dx)
		sy := clampStep(dy)
		dx -= sx
		dy -= sy

		if m.canStep(*x+sx, *y+sy, start, mt, isHero) {
			*x += sx
			*y += sy
			continue
		}

		full = false
		switch {
		case sx != 0 && m.canStep(*x+sx, *y, start, mt, isHero):
			*x += sx
		case sy != 0 && m.canStep(*x, *y+sy, start, mt, isHero):
			*y += sy
		default:
			return false
		}
	}
	return full
}

func (m *Map) canStep(x, y float32, start model.Point, mt model.MovementType, isHero bool) bool {
	if !m.IsValidPosition(x, y, mt, isHero) {
		return false
	}
	if mt == model.MovementIntangible {
		return true
	}
	tile := model.NewFPoint(x, y).Tile()
	return tile == start || !m.occupied[tile.Y*m.w+tile.X]
}

func clampStep(d float32) float32 {
	if d > maxStep {
		return maxStep
	}
	if d < -maxStep {
		return -maxStep
	}
	return d
}

// LineOfMovement reports whether a mover of the given class could travel in a
// straight line from (x1, y1) to (x2, y2). Every tile on the line must be valid.
func (m *Map) LineOfMovement(x1, y1, x2, y2 float32, mt model.MovementType) bool {
	if mt == model.MovementIntangible {
		return true
	}
	if x1 < 0 || y1 < 0 || x2 < 0 || y2 < 0 {
		return false
	}
	it := NewLineIterator(int(x1), int(y1), int(x2), int(y2))
	for it.Next() {
		if !m.IsValidTile(it.X(), it.Y(), mt, true) {
			return false
		}
	}
	return true
}

// LineOfSight reports whether nothing opaque lies between two points.
// Pits and barriers do not block sight.
func (m *Map) LineOfSight(x1, y1, x2, y2 float32) bool {
	if x1 < 0 || y1 < 0 || x2 < 0 || y2 < 0 {
		return false
	}
	it := NewLineIterator(int(x1), int(y1), int(x2), int(y2))
	for it.Next() {
		switch m.Tile(it.X(), it.Y()) {
		case TileWall, TileHiddenWall:
			return false
		}
	}
	return true
}
