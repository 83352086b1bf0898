package entity

import (
	"github.com/milk9111/tiledworld/logger"
	"github.com/milk9111/tiledworld/tiled"
)

type FlatKind int

const (
	FlatTiles FlatKind = iota
	FlatObjects
)

// FlatLayer is a tile or object layer lifted out of the layer tree. Its
// position in the FlattenLayers result is its z level.
type FlatLayer struct {
	Kind  FlatKind
	Layer *tiled.Layer
}

// FlattenLayers splices group layers in place, depth first. Image layers
// carry nothing to insert and are dropped; unknown kinds are logged and
// skipped.
func FlattenLayers(layers []tiled.Layer) []FlatLayer {
	var out []FlatLayer
	for i := range layers {
		l := &layers[i]
		switch l.Kind() {
		case tiled.LayerTiles:
			out = append(out, FlatLayer{Kind: FlatTiles, Layer: l})
		case tiled.LayerObjects:
			out = append(out, FlatLayer{Kind: FlatObjects, Layer: l})
		case tiled.LayerGroup:
			out = append(out, FlattenLayers(l.Layers)...)
		case tiled.LayerImage:
		default:
			logger.For("tiled").WithField("layer", l.Name).Warnf("unsupported layer type %q", l.Type)
		}
	}
	return out
}
