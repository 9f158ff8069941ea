package geo

// Tile is the collision class of one map cell.
type Tile byte

const (
	TileOpen         Tile = iota
	TileWall              // blocks movement and sight for everyone but intangible movers
	TilePit               // blocks walkers, flyers pass over, does not block sight
	TileHiddenWall        // like TileWall, but not drawn
	TileEnemyBarrier      // blocks non-heroes only
)

// Legend characters used by the YAML map format.
const (
	GlyphOpen         = '.'
	GlyphWall         = '#'
	GlyphPit          = '~'
	GlyphHiddenWall   = 'h'
	GlyphEnemyBarrier = '|'
)

// maxStep is the largest sub-step Move takes, in tiles.
// Keeps fast movers from tunnelling through one-tile walls.
const maxStep = 0.5
