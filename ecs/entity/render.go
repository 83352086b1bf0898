package entity

import (
	"github.com/milk9111/tiledworld/ecs/component"
	"github.com/milk9111/tiledworld/tiled"
)

func textureFrame(ts *tiled.Tileset, local uint32, gid tiled.GlobalTileIndex) (component.TextureFrame, bool) {
	src, ok := ts.AABBLocal(local)
	if !ok {
		return component.TextureFrame{}, false
	}
	return component.TextureFrame{
		SpriteSheet: ts.Image,
		Source:      src,
		Size:        src.Size(),
		FlippedH:    gid.FlippedHorizontally,
		FlippedV:    gid.FlippedVertically,
		FlippedD:    gid.FlippedDiagonally,
	}, true
}

// RenderingFor returns the sprite of gid from the tileset that owns it.
func RenderingFor(m *tiled.Map, gid tiled.GlobalTileIndex) (component.Rendering, bool) {
	ts, ok := m.TilesetByGID(gid.ID)
	if !ok {
		return component.Rendering{}, false
	}
	frame, ok := textureFrame(ts, gid.ID-ts.FirstGID, gid)
	if !ok {
		return component.Rendering{}, false
	}
	return component.Rendering{Frame: frame}, true
}

// AnimationFor returns the playing, repeating animation of gid's tile, if its
// definition has one.
func AnimationFor(m *tiled.Map, gid tiled.GlobalTileIndex) (component.Animation, bool) {
	ts, ok := m.TilesetByGID(gid.ID)
	if !ok {
		return component.Animation{}, false
	}
	tile, ok := ts.TileLocal(gid.ID - ts.FirstGID)
	if !ok || len(tile.Animation) == 0 {
		return component.Animation{}, false
	}
	anim := component.Animation{Playing: true, Repeat: true}
	for _, f := range tile.Animation {
		frame, ok := textureFrame(ts, f.TileID, gid)
		if !ok {
			continue
		}
		anim.Frames = append(anim.Frames, component.AnimationFrame{
			Frame:    frame,
			Duration: float64(f.Duration) / 1000,
		})
	}
	return anim, true
}
