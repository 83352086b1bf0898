package tiled

import (
	"encoding/json"
	"fmt"
)

// Map is a decoded Tiled map. It is immutable once loaded.
type Map struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	TileWidth    int        `json:"tilewidth"`
	TileHeight   int        `json:"tileheight"`
	Orientation  string     `json:"orientation"`
	Infinite     bool       `json:"infinite,omitempty"`
	TiledVersion string     `json:"tiledversion,omitempty"`
	Layers       []Layer    `json:"layers"`
	Tilesets     []Tileset  `json:"tilesets"`
	Properties   []Property `json:"properties,omitempty"`
}

type LayerKind int

const (
	LayerUnsupported LayerKind = iota
	LayerTiles
	LayerObjects
	LayerImage
	LayerGroup
)

func (k LayerKind) String() string {
	switch k {
	case LayerTiles:
		return "tilelayer"
	case LayerObjects:
		return "objectgroup"
	case LayerImage:
		return "imagelayer"
	case LayerGroup:
		return "group"
	default:
		return "unsupported"
	}
}

// Layer is a node of the map's layer tree: tiles, objects, an image or a group
// of further layers.
type Layer struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Visible     bool            `json:"visible"`
	Opacity     float64         `json:"opacity"`
	X           int             `json:"x"`
	Y           int             `json:"y"`
	Width       int             `json:"width,omitempty"`
	Height      int             `json:"height,omitempty"`
	OffsetX     float64         `json:"offsetx,omitempty"`
	OffsetY     float64         `json:"offsety,omitempty"`
	Encoding    string          `json:"encoding,omitempty"`
	Compression string          `json:"compression,omitempty"`
	RawData     json.RawMessage `json:"data,omitempty"`
	Objects     []Object        `json:"objects,omitempty"`
	Layers      []Layer         `json:"layers,omitempty"`
	Image       string          `json:"image,omitempty"`
	Properties  []Property      `json:"properties,omitempty"`

	// Data holds the decoded tile gids of a tile layer, row-major.
	Data []uint32 `json:"-"`
}

// Kind classifies the layer by its Tiled type tag.
func (l *Layer) Kind() LayerKind {
	switch l.Type {
	case "tilelayer":
		return LayerTiles
	case "objectgroup":
		return LayerObjects
	case "imagelayer":
		return LayerImage
	case "group":
		return LayerGroup
	default:
		return LayerUnsupported
	}
}

// Tiles returns the layer's cells as global tile indices.
func (l *Layer) Tiles() []GlobalTileIndex {
	out := make([]GlobalTileIndex, len(l.Data))
	for i, raw := range l.Data {
		out[i] = ParseGID(raw)
	}
	return out
}

// Point is a polygon or polyline vertex relative to its object's origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is a single entry of an object layer or of a tile's collision group.
type Object struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Class      string     `json:"class,omitempty"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rotation   float64    `json:"rotation,omitempty"`
	Visible    bool       `json:"visible"`
	Ellipse    bool       `json:"ellipse,omitempty"`
	IsPoint    bool       `json:"point,omitempty"`
	Polygon    []Point    `json:"polygon,omitempty"`
	Polyline   []Point    `json:"polyline,omitempty"`
	RawGID     uint32     `json:"gid,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// TypeName returns the object's type tag. Tiled 1.9+ writes it as "class".
func (o *Object) TypeName() string {
	if o.Type != "" {
		return o.Type
	}
	return o.Class
}

// GID returns the tile the object references, if any.
func (o *Object) GID() (GlobalTileIndex, bool) {
	if o.RawGID == 0 {
		return GlobalTileIndex{}, false
	}
	gid := ParseGID(o.RawGID)
	return gid, !gid.Empty()
}

// DeepType returns the object's own type, or when that is empty the type of
// the tile it references.
func (o *Object) DeepType(m *Map) string {
	if t := o.TypeName(); t != "" {
		return t
	}
	gid, ok := o.GID()
	if !ok || m == nil {
		return ""
	}
	tile, ok := m.Tile(gid.ID)
	if !ok {
		return ""
	}
	return tile.TypeName()
}

// JSONProperties returns a fresh name -> value map of the object's custom
// properties.
func (o *Object) JSONProperties() map[string]any {
	return propertyMap(o.Properties)
}

// Property is a typed custom property. Value is a string, float64, bool or nil
// after JSON decoding.
type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

func propertyMap(props []Property) map[string]any {
	out := make(map[string]any, len(props))
	for _, p := range props {
		out[p.Name] = p.Value
	}
	return out
}

// PropertyMap returns the map-level custom properties.
func (m *Map) PropertyMap() map[string]any {
	return propertyMap(m.Properties)
}

func (m *Map) String() string {
	return fmt.Sprintf("tiled map %dx%d (%dx%d tiles, %d layers, %d tilesets)",
		m.Width, m.Height, m.TileWidth, m.TileHeight, len(m.Layers), len(m.Tilesets))
}
