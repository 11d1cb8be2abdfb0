// Package tiled provides data structures and parsing for Tiled JSON maps (.tmj).
//
// Only orthogonal, finite maps with CSV-encoded tile layers are supported, which is
// what the Tiled editor writes by default for JSON exports.
package tiled

// GID flag bits used by Tiled to store flipping in the high bits of a tile GID.
const (
	FlagFlippedHorizontally uint32 = 0x80000000
	FlagFlippedVertically   uint32 = 0x40000000
	FlagFlippedDiagonally   uint32 = 0x20000000

	gidMask = ^(FlagFlippedHorizontally | FlagFlippedVertically | FlagFlippedDiagonally)
)

// Layer types as written by Tiled.
const (
	LayerTypeTile   = "tilelayer"
	LayerTypeObject = "objectgroup"
	LayerTypeImage  = "imagelayer"
	LayerTypeGroup  = "group"
)

// Map is the root of a Tiled JSON document.
type Map struct {
	Width       int        `json:"width"`      // 地图宽度（格）
	Height      int        `json:"height"`     // 地图高度（格）
	TileWidth   int        `json:"tilewidth"`  // 格子宽度（像素）
	TileHeight  int        `json:"tileheight"` // 格子高度（像素）
	Orientation string     `json:"orientation"`
	RenderOrder string     `json:"renderorder"`
	Infinite    bool       `json:"infinite"`
	Layers      []*Layer   `json:"layers"`
	Tilesets    []*Tileset `json:"tilesets"`
	Properties  []Property `json:"properties,omitempty"`
}

// Layer is either a tile layer (Data set) or an object group (Objects set).
type Layer struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	OffsetX float64 `json:"offsetx,omitempty"`
	OffsetY float64 `json:"offsety,omitempty"`
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"visible"`

	// Data holds one GID per cell, row-major. 0 means empty.
	Data       []uint32   `json:"-"`
	Encoding   string     `json:"encoding,omitempty"`
	Objects    []*Object  `json:"objects,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// Tileset describes an embedded tileset. External (.tsj) references are not supported.
type Tileset struct {
	FirstGID    uint32    `json:"firstgid"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	ImageWidth  int       `json:"imagewidth"`
	ImageHeight int       `json:"imageheight"`
	TileWidth   int       `json:"tilewidth"`
	TileHeight  int       `json:"tileheight"`
	Columns     int       `json:"columns"`
	TileCount   int       `json:"tilecount"`
	Margin      int       `json:"margin"`
	Spacing     int       `json:"spacing"`
	Source      string    `json:"source,omitempty"`
	Tiles       []TileDef `json:"tiles,omitempty"`
}

// TileDef carries per-tile metadata of a tileset (only properties are used).
type TileDef struct {
	ID         int        `json:"id"`
	Properties []Property `json:"properties,omitempty"`
}

// Property is a custom property. Value is bool, float64 or string after decoding.
type Property struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Object is a single entry of an object group.
type Object struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type,omitempty"`
	GID        uint32     `json:"gid,omitempty"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rotation   float64    `json:"rotation"`
	Visible    bool       `json:"visible"`
	Properties []Property `json:"properties,omitempty"`
}

// Center returns the object's centre in map pixels.
//
// Tile objects (GID != 0) are anchored at their bottom-left corner; all other
// objects are anchored at their top-left corner.
func (o *Object) Center() (float64, float64) {
	if o.GID != 0 {
		return o.X + o.Width/2, o.Y - o.Height/2
	}
	return o.X + o.Width/2, o.Y + o.Height/2
}

// TileGID returns the object's GID without flip flags.
func (o *Object) TileGID() uint32 {
	return o.GID & gidMask
}

// PixelWidth returns the map width in pixels.
func (m *Map) PixelWidth() int {
	return m.Width * m.TileWidth
}

// PixelHeight returns the map height in pixels.
func (m *Map) PixelHeight() int {
	return m.Height * m.TileHeight
}

// Layer returns the first layer with the given name, or nil.
func (m *Map) Layer(name string) *Layer {
	for _, l := range m.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Tileset returns the tileset with the given name, or nil.
func (m *Map) Tileset(name string) *Tileset {
	for _, ts := range m.Tilesets {
		if ts.Name == name {
			return ts
		}
	}
	return nil
}

// TilesetForGID returns the tileset owning gid (flip flags are ignored), or nil.
func (m *Map) TilesetForGID(gid uint32) *Tileset {
	gid &= gidMask
	if gid == 0 {
		return nil
	}
	var found *Tileset
	for _, ts := range m.Tilesets {
		if ts.FirstGID <= gid && (found == nil || ts.FirstGID > found.FirstGID) {
			found = ts
		}
	}
	return found
}

// ObjectsByName returns every object named name in the object group layerName.
func (m *Map) ObjectsByName(layerName, name string) []*Object {
	layer := m.Layer(layerName)
	if layer == nil || layer.Type != LayerTypeObject {
		return nil
	}
	result := make([]*Object, 0)
	for _, obj := range layer.Objects {
		if obj.Name == name {
			result = append(result, obj)
		}
	}
	return result
}

// TileProperties returns the properties of the local tile id in ts, or nil.
func (ts *Tileset) TileProperties(localID int) []Property {
	for _, def := range ts.Tiles {
		if def.ID == localID {
			return def.Properties
		}
	}
	return nil
}

// SourceRect returns the pixel rectangle (x, y, w, h) of the local tile id inside
// the tileset image.
func (ts *Tileset) SourceRect(localID int) (int, int, int, int) {
	cols := ts.Columns
	if cols <= 0 {
		cols = 1
	}
	col := localID % cols
	row := localID / cols
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return x, y, ts.TileWidth, ts.TileHeight
}

// FindProperty returns the value of the named property.
func FindProperty(props []Property, name string) (interface{}, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
