package entity

import (
	"encoding/json"
	"math"

	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/tiled"
)

// ObjectKind is the closed set of object types the map inserter handles
// itself. Anything else is an UnrecognizedObject left for other systems.
type ObjectKind interface {
	objectKind()
}

type CharacterObject struct{}

type BarrierObject struct{}

// EmptyObject is an object with no type on itself or its tile.
type EmptyObject struct{}

type UnrecognizedObject struct {
	Type string
}

func (CharacterObject) objectKind()    {}
func (BarrierObject) objectKind()      {}
func (EmptyObject) objectKind()        {}
func (UnrecognizedObject) objectKind() {}

// ClassifyObject dispatches on the object's deep type.
func ClassifyObject(m *tiled.Map, obj *tiled.Object) ObjectKind {
	switch t := obj.DeepType(m); t {
	case "character":
		return CharacterObject{}
	case "barrier":
		return BarrierObject{}
	case "":
		return EmptyObject{}
	default:
		return UnrecognizedObject{Type: t}
	}
}

// ObjectShape returns the object's geometry in map coordinates. Polylines
// have no area and yield no shape.
func ObjectShape(obj *tiled.Object) (common.Shape, bool) {
	switch {
	case len(obj.Polyline) > 0:
		return common.Shape{}, false
	case len(obj.Polygon) > 0:
		verts := make([]common.V2, len(obj.Polygon))
		for i, p := range obj.Polygon {
			verts[i] = common.NewV2(p.X+obj.X, p.Y+obj.Y)
		}
		return common.PolygonShape(verts), true
	default:
		return common.BoxShape(
			common.NewV2(obj.X, obj.Y),
			common.NewV2(obj.X+obj.Width, obj.Y+obj.Height),
		), true
	}
}

// ObjectPosition is the object's top-left corner. Tiled anchors objects at
// their bottom-left.
func ObjectPosition(obj *tiled.Object) common.V2 {
	return common.NewV2(obj.X, obj.Y-obj.Height)
}

// UnsignedProperty reads a custom property as a non-negative integer. It
// accepts the numeric forms a decoded property may take and rejects
// fractions.
func UnsignedProperty(v any) (uint32, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		f = float64(i)
	default:
		return 0, false
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return uint32(f), true
}
