package tiled

import (
	"fmt"
	"math"
)

// Tile is one non-empty cell of a TileLayer.
type Tile struct {
	GID      uint32 // 去掉翻转标记后的 GID
	TileX    int
	TileY    int
	Tileset  *Tileset
	LocalID  int // GID - Tileset.FirstGID
	FlipX    bool
	FlipY    bool
	Collides bool
}

// WorldRect returns the tile rectangle in world pixels for layer origin (ox, oy).
func (t *Tile) WorldRect(tileW, tileH int, ox, oy float64) (x, y, w, h float64) {
	return ox + float64(t.TileX*tileW), oy + float64(t.TileY*tileH), float64(tileW), float64(tileH)
}

// TileLayer is a resolved, queryable view over a tile layer of a Map.
//
// Empty cells are nil.
type TileLayer struct {
	Name       string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	OriginX    float64
	OriginY    float64
	Visible    bool
	Opacity    float64

	cells []*Tile
}

// NewTileLayer resolves the named tile layer of m against the map's tilesets.
// Tiles whose GID belongs to no tileset are skipped.
func NewTileLayer(m *Map, name string) (*TileLayer, error) {
	src := m.Layer(name)
	if src == nil {
		return nil, fmt.Errorf("tile layer %q not found", name)
	}
	if src.Type != LayerTypeTile {
		return nil, fmt.Errorf("layer %q is %s, not a tile layer", name, src.Type)
	}

	tl := &TileLayer{
		Name:       src.Name,
		Width:      src.Width,
		Height:     src.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		OriginX:    src.X*float64(m.TileWidth) + src.OffsetX,
		OriginY:    src.Y*float64(m.TileHeight) + src.OffsetY,
		Visible:    src.Visible,
		Opacity:    src.Opacity,
		cells:      make([]*Tile, len(src.Data)),
	}

	for i, raw := range src.Data {
		gid := raw & gidMask
		if gid == 0 {
			continue
		}
		ts := m.TilesetForGID(gid)
		if ts == nil {
			continue
		}
		tl.cells[i] = &Tile{
			GID:     gid,
			TileX:   i % src.Width,
			TileY:   i / src.Width,
			Tileset: ts,
			LocalID: int(gid - ts.FirstGID),
			FlipX:   raw&FlagFlippedHorizontally != 0,
			FlipY:   raw&FlagFlippedVertically != 0,
		}
	}
	return tl, nil
}

// TileAt returns the tile at grid (tx, ty), or nil when empty or out of range.
func (tl *TileLayer) TileAt(tx, ty int) *Tile {
	if tx < 0 || ty < 0 || tx >= tl.Width || ty >= tl.Height {
		return nil
	}
	return tl.cells[ty*tl.Width+tx]
}

// WorldToTile converts world pixel coordinates into grid coordinates.
func (tl *TileLayer) WorldToTile(x, y float64) (int, int) {
	tx := int(math.Floor((x - tl.OriginX) / float64(tl.TileWidth)))
	ty := int(math.Floor((y - tl.OriginY) / float64(tl.TileHeight)))
	return tx, ty
}

// TileAtWorld returns the tile covering world point (x, y), or nil.
func (tl *TileLayer) TileAtWorld(x, y float64) *Tile {
	tx, ty := tl.WorldToTile(x, y)
	return tl.TileAt(tx, ty)
}

// SetCollisionByProperty marks as colliding every tile whose tileset tile
// definition carries all of the given property values. Returns the number of
// tiles marked.
func (tl *TileLayer) SetCollisionByProperty(props map[string]interface{}) int {
	marked := 0
	for _, t := range tl.cells {
		if t == nil {
			continue
		}
		if matchesProperties(t.Tileset.TileProperties(t.LocalID), props) {
			t.Collides = true
			marked++
		}
	}
	return marked
}

// Tiles returns every non-empty tile in row-major order.
func (tl *TileLayer) Tiles() []*Tile {
	result := make([]*Tile, 0, len(tl.cells))
	for _, t := range tl.cells {
		if t != nil {
			result = append(result, t)
		}
	}
	return result
}

// CollidingTiles returns every tile marked as colliding, in row-major order.
func (tl *TileLayer) CollidingTiles() []*Tile {
	result := make([]*Tile, 0)
	for _, t := range tl.cells {
		if t != nil && t.Collides {
			result = append(result, t)
		}
	}
	return result
}

// IsSolidAt reports whether the world point (x, y) hits a colliding tile.
func (tl *TileLayer) IsSolidAt(x, y float64) bool {
	t := tl.TileAtWorld(x, y)
	return t != nil && t.Collides
}

func matchesProperties(have []Property, want map[string]interface{}) bool {
	if len(want) == 0 || len(have) == 0 {
		return false
	}
	for name, value := range want {
		got, ok := FindProperty(have, name)
		if !ok || got != value {
			return false
		}
	}
	return true
}
