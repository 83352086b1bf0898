package stream

import (
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
)

// Snapshot is the per-tick state sent to viewers.
type Snapshot struct {
	Frame    uint64        `json:"frame"`
	Entities []EntityState `json:"entities"`
}

// EntityState describes one positioned entity.
type EntityState struct {
	ID        uint32  `json:"id"`
	Name      string  `json:"name,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Facing    string  `json:"facing,omitempty"`
	Barrier   bool    `json:"barrier,omitempty"`
	Inventory int     `json:"inventory,omitempty"`
}

// Capture records every positioned entity in ascending id order. Frame
// comes from the FrameClock when the world has one.
func Capture(w *ecs.World) Snapshot {
	var snap Snapshot
	if e, ok := ecs.First(w, component.FrameClockComponent.Kind()); ok {
		clock, _ := ecs.Get(w, e, component.FrameClockComponent.Kind())
		snap.Frame = clock.Frame
	}

	ents := w.Query(component.PositionComponent.Kind())
	snap.Entities = make([]EntityState, 0, len(ents))
	for _, e := range ents {
		pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())
		st := EntityState{ID: e.ID(), X: pos.V.X, Y: pos.V.Y}
		if z, ok := ecs.Get(w, e, component.ZLevelComponent.Kind()); ok {
			st.Z = z.Z
		}
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
			st.Name = n.Value
		}
		if c, ok := ecs.Get(w, e, component.CardinalComponent.Kind()); ok {
			st.Facing = c.Dir.String()
		}
		st.Barrier = ecs.Has(w, e, component.BarrierComponent.Kind())
		if inv, ok := ecs.Get(w, e, component.InventoryComponent.Kind()); ok {
			st.Inventory = len(inv.Items)
		}
		snap.Entities = append(snap.Entities, st)
	}
	return snap
}
