package entity

import (
	"fmt"

	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
	"github.com/milk9111/tiledworld/logger"
	"github.com/milk9111/tiledworld/tiled"
)

// InsertMap creates one entity per non-empty tile cell and per object of m.
// Each flattened layer's index becomes the ZLevel of everything on it.
//
// A *ConfigError stops insertion; entities created before it stay in the
// world.
func InsertMap(w *ecs.World, m *tiled.Map) error {
	log := logger.For("tiled")
	log.Tracef("inserting %s", m)

	for z, flat := range FlattenLayers(m.Layers) {
		var err error
		switch flat.Kind {
		case FlatTiles:
			err = insertTiles(w, m, flat.Layer, float64(z))
		case FlatObjects:
			err = insertObjects(w, m, flat.Layer, float64(z))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func insertTiles(w *ecs.World, m *tiled.Map, layer *tiled.Layer, z float64) error {
	for i, gid := range layer.Tiles() {
		if gid.Empty() {
			continue
		}
		col := i % m.Width
		row := i / m.Width

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.ZLevelComponent.Kind(), component.ZLevel{Z: z}); err != nil {
			return err
		}
		pos := common.NewV2(float64(m.TileWidth*col), float64(m.TileHeight*row))
		if err := ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{V: pos}); err != nil {
			return err
		}
		if err := addSprite(w, e, m, gid); err != nil {
			return err
		}
		if err := applySubObjects(w, e, m, gid, 0); err != nil {
			return err
		}
	}
	return nil
}

func addSprite(w *ecs.World, e ecs.Entity, m *tiled.Map, gid tiled.GlobalTileIndex) error {
	if rendering, ok := RenderingFor(m, gid); ok {
		if err := ecs.Add(w, e, component.RenderingComponent.Kind(), rendering); err != nil {
			return err
		}
	}
	if anim, ok := AnimationFor(m, gid); ok {
		if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
			return err
		}
	}
	return nil
}

// applySubObjects reads the objects attached to gid's tile definition.
// objectID names the owning map object in errors, 0 for tile cells.
func applySubObjects(w *ecs.World, e ecs.Entity, m *tiled.Map, gid tiled.GlobalTileIndex, objectID int) error {
	tile, ok := m.Tile(gid.ID)
	if !ok {
		return nil
	}
	for _, sub := range tile.Objects() {
		switch sub.TypeName() {
		case "origin_offset":
			offset := component.OriginOffset{V: common.NewV2(sub.X, sub.Y)}
			if err := ecs.Add(w, e, component.OriginOffsetComponent.Kind(), offset); err != nil {
				return err
			}
		case "barrier":
			shape, ok := ObjectShape(&sub)
			if !ok {
				continue
			}
			if err := ecs.Add(w, e, component.BarrierComponent.Kind(), component.Barrier{}); err != nil {
				return err
			}
			if err := ecs.Add(w, e, component.ShapeComponent.Kind(), shape); err != nil {
				return err
			}
		default:
			return &ConfigError{
				ObjectID: objectID,
				Msg:      fmt.Sprintf("unsupported object type within tile %d: %q", gid.ID, sub.TypeName()),
			}
		}
	}
	return nil
}

func insertObjects(w *ecs.World, m *tiled.Map, layer *tiled.Layer, z float64) error {
	for i := range layer.Objects {
		if err := insertObject(w, m, &layer.Objects[i], z); err != nil {
			return err
		}
	}
	return nil
}

func insertObject(w *ecs.World, m *tiled.Map, obj *tiled.Object, z float64) error {
	log := logger.For("tiled").WithField("object", obj.ID)

	e := ecs.CreateEntity(w)
	pos := ObjectPosition(obj)
	if err := ecs.Add(w, e, component.ZLevelComponent.Kind(), component.ZLevel{Z: z}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{V: pos}); err != nil {
		return err
	}
	if obj.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), component.Name{Value: obj.Name}); err != nil {
			return err
		}
	}
	if shape, ok := ObjectShape(obj); ok {
		if err := ecs.Add(w, e, component.ShapeComponent.Kind(), shape.Translated(pos.Neg())); err != nil {
			return err
		}
	}
	if gid, ok := obj.GID(); ok {
		if err := addSprite(w, e, m, gid); err != nil {
			return err
		}
		if err := applySubObjects(w, e, m, gid, obj.ID); err != nil {
			return err
		}
	}

	props := obj.JSONProperties()
	raw := false

	switch kind := ClassifyObject(m, obj).(type) {
	case CharacterObject:
		if err := insertCharacter(w, e, obj, props); err != nil {
			return err
		}
	case BarrierObject:
		if err := ecs.Add(w, e, component.BarrierComponent.Kind(), component.Barrier{}); err != nil {
			return err
		}
	case EmptyObject:
	case UnrecognizedObject:
		log.Debugf("object type %q is unknown to the map inserter", kind.Type)
		if err := ecs.Add(w, e, component.RawObjectComponent.Kind(), component.RawObject{Object: *obj}); err != nil {
			return err
		}
		raw = true
	}

	if len(props) > 0 && !raw {
		if err := ecs.Add(w, e, component.PropertiesComponent.Kind(), component.Properties{Values: props}); err != nil {
			return err
		}
	}
	return nil
}

func insertCharacter(w *ecs.World, e ecs.Entity, obj *tiled.Object, props map[string]any) error {
	control, hasControl := props["control"]
	delete(props, "control")
	scheme, ok := control.(string)
	if !hasControl || !ok {
		return &ConfigError{ObjectID: obj.ID, ObjectName: obj.Name, Msg: "character must have a string 'control' property"}
	}

	switch scheme {
	case "player":
		raw, ok := props["player_index"]
		if !ok {
			return &ConfigError{ObjectID: obj.ID, ObjectName: obj.Name, Msg: "player character must have a 'player_index' property"}
		}
		delete(props, "player_index")
		index, ok := UnsignedProperty(raw)
		if !ok {
			return &ConfigError{ObjectID: obj.ID, ObjectName: obj.Name, Msg: fmt.Sprintf("'player_index' must be a non-negative integer, got %v", raw)}
		}
		if err := ecs.Add(w, e, component.PlayerComponent.Kind(), component.Player{Index: index}); err != nil {
			return err
		}
	case "npc":
		return &ConfigError{ObjectID: obj.ID, ObjectName: obj.Name, Msg: "npc control is not implemented"}
	default:
		logger.For("tiled").WithField("object", obj.ID).Warnf("unsupported character control scheme %q", scheme)
	}

	return ecs.Add(w, e, component.VelocityComponent.Kind(), component.Velocity{V: common.Origin()})
}
