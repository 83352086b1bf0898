package system

import (
	"fmt"
	"math"

	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
	"github.com/milk9111/tiledworld/ecs/spatial"
	"github.com/milk9111/tiledworld/logger"
	"github.com/sirupsen/logrus"
)

// zLevelEpsilon is how far apart two z levels may be and still collide.
const zLevelEpsilon = 1e-6

// PhysicsSystem integrates velocities, pushes barriers out of each other and
// keeps the spatial index in step with Position and Shape changes.
type PhysicsSystem struct {
	index *spatial.Index

	positions ecs.ReaderID
	shapes    ecs.ReaderID
	ready     bool

	log *logrus.Entry
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		index: spatial.NewIndex(),
		log:   logger.For("physics"),
	}
}

// Index exposes the spatial index for queries. Callers must not mutate it.
func (ps *PhysicsSystem) Index() *spatial.Index {
	if ps == nil {
		return nil
	}
	return ps.index
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.ensureReady(w)
	ps.MoveThings(w)
	ps.SyncIndex(w)
	ps.CollideThings(w)
	ps.SyncIndex(w)
}

// ensureReady registers the system's own change readers and indexes what is
// already in the world.
func (ps *PhysicsSystem) ensureReady(w *ecs.World) {
	if ps.ready {
		return
	}
	ps.positions = ecs.RegisterReader(w, component.PositionComponent.Kind())
	ps.shapes = ecs.RegisterReader(w, component.ShapeComponent.Kind())
	ps.index.Rebuild(w)
	ps.ready = true
	ps.log.WithField("entries", ps.index.Len()).Debug("spatial index built")
}

// MoveThings applies one frame of velocity to every non-exiled entity and
// records the direction it moved in.
func (ps *PhysicsSystem) MoveThings(w *ecs.World) {
	dt := frameDelta(w)
	for _, e := range w.Query(component.VelocityComponent.Kind()) {
		if exiled(w, e) {
			continue
		}
		vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		dxy := vel.V.Mult(dt)
		if dxy.Length() <= 0 {
			continue
		}

		pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
		if !ok {
			panic(fmt.Sprintf("physics system: entity %s has velocity but no position", e))
		}
		if err := ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{V: pos.V.Add(dxy)}); err != nil {
			panic("physics system: move: " + err.Error())
		}
		if dir, ok := common.CardinalFromV2(vel.V); ok {
			if err := ecs.Add(w, e, component.CardinalComponent.Kind(), component.Cardinal{Dir: dir}); err != nil {
				panic("physics system: set cardinal: " + err.Error())
			}
		}
	}
}

// CollideThings moves every non-exiled moving barrier out of the barriers it
// overlaps on its own z level. Entities are resolved in ascending id order
// and each correction is indexed before the next entity is resolved.
func (ps *PhysicsSystem) CollideThings(w *ecs.World) {
	movers := w.Query(
		component.VelocityComponent.Kind(),
		component.BarrierComponent.Kind(),
		component.ShapeComponent.Kind(),
		component.ZLevelComponent.Kind(),
		component.PositionComponent.Kind(),
	)
	for _, e := range movers {
		if exiled(w, e) {
			continue
		}
		pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())
		z, _ := ecs.Get(w, e, component.ZLevelComponent.Kind())

		next := pos.V
		for _, hit := range ps.index.QueryIntersectingBarriers(w, e) {
			other, ok := ecs.Get(w, hit.Entity, component.ZLevelComponent.Kind())
			if !ok || math.Abs(other.Z-z.Z) > zLevelEpsilon {
				continue
			}
			if exiled(w, hit.Entity) {
				continue
			}
			next = next.Sub(hit.MTV)
		}
		if next == pos.V {
			continue
		}

		if err := ecs.Add(w, e, component.PositionComponent.Kind(), component.Position{V: next}); err != nil {
			panic("physics system: resolve collision: " + err.Error())
		}
		if bb, ok := spatial.WorldAABB(w, e); ok {
			ps.index.InsertOrUpdate(e, bb)
		}
	}
}

// SyncIndex reconciles the index with every Position and Shape change since
// the previous call.
func (ps *PhysicsSystem) SyncIndex(w *ecs.World) {
	ps.ensureReady(w)
	events := ecs.ReadEvents(w, component.PositionComponent.Kind(), ps.positions)
	events = append(events, ecs.ReadEvents(w, component.ShapeComponent.Kind(), ps.shapes)...)
	if len(events) == 0 {
		return
	}
	ps.index.UpdateTree(w, events, spatial.WorldAABB)
}
