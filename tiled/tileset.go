package tiled

import "image"

// Tileset maps a contiguous range of global tile ids onto a sprite sheet.
type Tileset struct {
	FirstGID    uint32     `json:"firstgid"`
	Source      string     `json:"source,omitempty"`
	Name        string     `json:"name,omitempty"`
	TileWidth   int        `json:"tilewidth,omitempty"`
	TileHeight  int        `json:"tileheight,omitempty"`
	TileCount   int        `json:"tilecount,omitempty"`
	Columns     int        `json:"columns,omitempty"`
	Margin      int        `json:"margin,omitempty"`
	Spacing     int        `json:"spacing,omitempty"`
	Image       string     `json:"image,omitempty"`
	ImageWidth  int        `json:"imagewidth,omitempty"`
	ImageHeight int        `json:"imageheight,omitempty"`
	Tiles       []Tile     `json:"tiles,omitempty"`
	Properties  []Property `json:"properties,omitempty"`
}

// Tile is the definition of a single tile inside a tileset.
type Tile struct {
	ID          uint32     `json:"id"`
	Type        string     `json:"type,omitempty"`
	Class       string     `json:"class,omitempty"`
	Properties  []Property `json:"properties,omitempty"`
	ObjectGroup *Layer     `json:"objectgroup,omitempty"`
	Animation   []Frame    `json:"animation,omitempty"`
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID   uint32 `json:"tileid"`
	Duration int    `json:"duration"`
}

func (t *Tile) TypeName() string {
	if t.Type != "" {
		return t.Type
	}
	return t.Class
}

// Objects returns the tile's own collision/sub-objects.
func (t *Tile) Objects() []Object {
	if t == nil || t.ObjectGroup == nil {
		return nil
	}
	return t.ObjectGroup.Objects
}

func (ts *Tileset) columns() int {
	if ts.Columns > 0 {
		return ts.Columns
	}
	if ts.TileWidth <= 0 || ts.ImageWidth <= 0 {
		return 0
	}
	return (ts.ImageWidth - 2*ts.Margin + ts.Spacing) / (ts.TileWidth + ts.Spacing)
}

// Contains reports whether gid falls in this tileset's range.
func (ts *Tileset) Contains(gid uint32) bool {
	if gid < ts.FirstGID {
		return false
	}
	return ts.TileCount <= 0 || gid-ts.FirstGID < uint32(ts.TileCount)
}

// AABBLocal returns the source rectangle of a tile id local to the tileset.
func (ts *Tileset) AABBLocal(local uint32) (image.Rectangle, bool) {
	cols := ts.columns()
	if cols <= 0 || ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return image.Rectangle{}, false
	}
	if ts.TileCount > 0 && local >= uint32(ts.TileCount) {
		return image.Rectangle{}, false
	}
	col := int(local) % cols
	row := int(local) / cols
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight), true
}

// AABB returns the source rectangle of a global tile id.
func (ts *Tileset) AABB(gid uint32) (image.Rectangle, bool) {
	if !ts.Contains(gid) {
		return image.Rectangle{}, false
	}
	return ts.AABBLocal(gid - ts.FirstGID)
}

// TileLocal returns the definition of a local tile id, if the tileset has one.
func (ts *Tileset) TileLocal(local uint32) (*Tile, bool) {
	for i := range ts.Tiles {
		if ts.Tiles[i].ID == local {
			return &ts.Tiles[i], true
		}
	}
	return nil, false
}

// TilesetByGID finds the tileset owning gid: the one with the greatest
// firstgid not above it.
func (m *Map) TilesetByGID(gid uint32) (*Tileset, bool) {
	var found *Tileset
	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		if ts.FirstGID > gid {
			continue
		}
		if found == nil || ts.FirstGID > found.FirstGID {
			found = ts
		}
	}
	if found == nil || !found.Contains(gid) {
		return nil, false
	}
	return found, true
}

// Tile returns the tile definition for a global tile id.
func (m *Map) Tile(gid uint32) (*Tile, bool) {
	ts, ok := m.TilesetByGID(gid)
	if !ok {
		return nil, false
	}
	return ts.TileLocal(gid - ts.FirstGID)
}
