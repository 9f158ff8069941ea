package geo

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// mapFile is the YAML layout of a tile map.
//
//	width: 4
//	height: 3
//	rows:
//	  - "####"
//	  - "#..#"
//	  - "####"
type mapFile struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Rows   []string `yaml:"rows"`
}

// ParseMap builds a Map from YAML data.
func ParseMap(data []byte) (*Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadMap, f.Width, f.Height)
	}
	if len(f.Rows) != f.Height {
		return nil, fmt.Errorf("%w: %d rows, height %d", ErrBadMap, len(f.Rows), f.Height)
	}

	m := NewMap(f.Width, f.Height)
	for y, row := range f.Rows {
		if len(row) != f.Width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, width %d", ErrBadMap, y, len(row), f.Width)
		}
		for x := range len(row) {
			t, err := parseGlyph(row[x])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %v", ErrBadMap, y, x, err)
			}
			m.Set(x, y, t)
		}
	}
	return m, nil
}

// LoadMap reads a YAML tile map from path.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", path, err)
	}
	slog.Info("map loaded", "path", path, "width", m.W(), "height", m.H())
	return m, nil
}

func parseGlyph(c byte) (Tile, error) {
	switch c {
	case GlyphOpen:
		return TileOpen, nil
	case GlyphWall:
		return TileWall, nil
	case GlyphPit:
		return TilePit, nil
	case GlyphHiddenWall:
		return TileHiddenWall, nil
	case GlyphEnemyBarrier:
		return TileEnemyBarrier, nil
	default:
		return TileOpen, fmt.Errorf("unknown glyph %q", c)
	}
}
