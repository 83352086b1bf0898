package spatial

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
)

// minExtent keeps zero-area bounds (points, lines) queryable as boxes.
const minExtent = 1e-6

// Hit is one overlap found by a query. Shape is the other entity's shape in
// world space; MTV is the displacement that, subtracted from the querying
// entity's position, separates the two.
type Hit struct {
	Entity ecs.Entity
	Shape  common.Shape
	MTV    common.V2
}

// AABBFunc reports the world-space bounds of an entity, or false when it
// should not be indexed.
type AABBFunc func(w *ecs.World, e ecs.Entity) (common.AABB, bool)

// Index is an AABB index keyed by entity. Each entry is a box on its own
// static body in a private cp.Space, so broad-phase queries run against
// chipmunk's BB tree. Only the simulation may mutate it.
type Index struct {
	space  *cp.Space
	shapes map[ecs.Entity]*cp.Shape
	owners map[*cp.Shape]ecs.Entity
	boxes  map[ecs.Entity]common.AABB
}

func NewIndex() *Index {
	return &Index{
		space:  cp.NewSpace(),
		shapes: make(map[ecs.Entity]*cp.Shape),
		owners: make(map[*cp.Shape]ecs.Entity),
		boxes:  make(map[ecs.Entity]common.AABB),
	}
}

// InsertOrUpdate stores bb as e's bounds, replacing any previous entry.
func (ix *Index) InsertOrUpdate(e ecs.Entity, bb common.AABB) {
	ix.Remove(e)
	// removal scans the body's shape list, so no two entries share a body
	shape := cp.NewBox2(cp.NewStaticBody(), padded(bb), 0)
	ix.space.AddShape(shape)
	ix.shapes[e] = shape
	ix.owners[shape] = e
	ix.boxes[e] = bb
}

// Remove drops e's entry and reports whether there was one.
func (ix *Index) Remove(e ecs.Entity) bool {
	shape, ok := ix.shapes[e]
	if !ok {
		return false
	}
	ix.space.RemoveShape(shape)
	delete(ix.shapes, e)
	delete(ix.owners, shape)
	delete(ix.boxes, e)
	return true
}

func (ix *Index) AABB(e ecs.Entity) (common.AABB, bool) {
	bb, ok := ix.boxes[e]
	return bb, ok
}

func (ix *Index) Len() int {
	return len(ix.shapes)
}

// UpdateTree reconciles the entries of every entity named in events with its
// current bounds from aabbOf. Dead entities and entities aabbOf rejects are
// removed.
func (ix *Index) UpdateTree(w *ecs.World, events []ecs.ComponentEvent, aabbOf AABBFunc) {
	seen := make(map[ecs.Entity]struct{}, len(events))
	for _, evt := range events {
		if _, ok := seen[evt.Entity]; ok {
			continue
		}
		seen[evt.Entity] = struct{}{}
		ix.refresh(w, evt.Entity, aabbOf)
	}
}

// Rebuild replaces the whole index with the bounds of every entity that has
// both a Position and a Shape.
func (ix *Index) Rebuild(w *ecs.World) {
	for e := range ix.shapes {
		ix.Remove(e)
	}
	for _, e := range w.Query(component.PositionComponent.Kind(), component.ShapeComponent.Kind()) {
		ix.refresh(w, e, WorldAABB)
	}
}

func (ix *Index) refresh(w *ecs.World, e ecs.Entity, aabbOf AABBFunc) {
	if !w.IsAlive(e) {
		ix.Remove(e)
		return
	}
	bb, ok := aabbOf(w, e)
	if !ok {
		ix.Remove(e)
		return
	}
	ix.InsertOrUpdate(e, bb)
}

// Candidates returns the entities whose stored bounds touch bb, excluding
// skip, in ascending id order.
func (ix *Index) Candidates(bb common.AABB, skip ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	ix.space.BBQuery(padded(bb), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := ix.owners[shape]
		if !ok || e == skip {
			return
		}
		out = append(out, e)
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// QueryIntersectingShapes returns every indexed entity whose world shape
// overlaps e's. It has no side effects.
func (ix *Index) QueryIntersectingShapes(w *ecs.World, e ecs.Entity) []Hit {
	return ix.query(w, e, false)
}

// QueryIntersectingBarriers is QueryIntersectingShapes restricted to entities
// carrying Barrier.
func (ix *Index) QueryIntersectingBarriers(w *ecs.World, e ecs.Entity) []Hit {
	return ix.query(w, e, true)
}

func (ix *Index) query(w *ecs.World, e ecs.Entity, barriersOnly bool) []Hit {
	self, ok := WorldShape(w, e)
	if !ok {
		return nil
	}
	var hits []Hit
	for _, other := range ix.Candidates(self.AABB(), e) {
		// entries can outlive their entity until the next UpdateTree
		if !w.IsAlive(other) {
			continue
		}
		if barriersOnly && !ecs.Has(w, other, component.BarrierComponent.Kind()) {
			continue
		}
		shape, ok := WorldShape(w, other)
		if !ok || !common.Overlaps(self.AABB(), shape.AABB()) {
			continue
		}
		mtv, ok := common.MTV(self, shape)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Entity: other, Shape: shape, MTV: mtv})
	}
	return hits
}

// WorldShape returns e's Shape translated by its Position.
func WorldShape(w *ecs.World, e ecs.Entity) (common.Shape, bool) {
	shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
	if !ok {
		return common.Shape{}, false
	}
	pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	if !ok {
		return common.Shape{}, false
	}
	return shape.Translated(pos.V), true
}

// WorldAABB is the default AABBFunc: the bounds of WorldShape.
func WorldAABB(w *ecs.World, e ecs.Entity) (common.AABB, bool) {
	shape, ok := WorldShape(w, e)
	if !ok {
		return common.AABB{}, false
	}
	return shape.AABB(), true
}

func padded(bb common.AABB) cp.BB {
	if bb.R-bb.L < minExtent {
		bb.L -= minExtent
		bb.R += minExtent
	}
	if bb.T-bb.B < minExtent {
		bb.B -= minExtent
		bb.T += minExtent
	}
	return bb
}
