package ecs

import (
	"fmt"
	"sort"

	"github.com/milk9111/tiledworld/ecs/component"
)

// World owns entities, their components and the component change streams.
// It is not safe for concurrent use.
type World struct {
	entities   entityStore
	stores     map[component.ComponentID]*sparseSet
	channels   map[component.ComponentID]*eventChannel
	nextReader ReaderID
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*sparseSet),
		channels: make(map[component.ComponentID]*eventChannel),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e, publishing a removal for each,
// and frees its id. It reports false when e was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for id, store := range w.stores {
		if store.remove(e) {
			w.emit(id, ComponentEvent{Kind: ChangeRemoved, Entity: e})
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity in ascending id order.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

func (w *World) addComponent(e Entity, kind component.Kind, value any) error {
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("add %s to %s: %w", kind.Name(), e, component.ErrEntityNotAlive)
	}
	store, ok := w.stores[kind.ID()]
	if !ok {
		store = &sparseSet{}
		w.stores[kind.ID()] = store
	}
	change := ChangeModified
	if store.set(e, value) {
		change = ChangeInserted
	}
	w.emit(kind.ID(), ComponentEvent{Kind: change, Entity: e})
	return nil
}

func (w *World) getComponent(e Entity, kind component.Kind) (any, bool) {
	store, ok := w.stores[kind.ID()]
	if !ok {
		return nil, false
	}
	return store.get(e)
}

// HasComponent reports whether e carries a component of kind.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	store, ok := w.stores[kind.ID()]
	return ok && store.has(e)
}

// RemoveComponent detaches kind from e and reports whether it was present.
func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	store, ok := w.stores[kind.ID()]
	if !ok || !store.remove(e) {
		return false
	}
	w.emit(kind.ID(), ComponentEvent{Kind: ChangeRemoved, Entity: e})
	return true
}

// Query returns the entities carrying every listed kind, in ascending id
// order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	var smallest *sparseSet
	for _, kind := range kinds {
		store, ok := w.stores[kind.ID()]
		if !ok {
			return nil
		}
		if smallest == nil || store.len() < smallest.len() {
			smallest = store
		}
	}
	out := make([]Entity, 0, smallest.len())
	for _, e := range smallest.dense {
		match := true
		for _, kind := range kinds {
			if !w.stores[kind.ID()].has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-id entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	store, ok := w.stores[kind.ID()]
	if !ok || store.len() == 0 {
		return 0, false
	}
	first := store.dense[0]
	for _, e := range store.dense[1:] {
		if e.id() < first.id() {
			first = e
		}
	}
	return first, true
}

// Count returns how many entities carry kind.
func (w *World) Count(kind component.Kind) int {
	store, ok := w.stores[kind.ID()]
	if !ok {
		return 0
	}
	return store.len()
}

func (w *World) channel(id component.ComponentID) *eventChannel {
	ch, ok := w.channels[id]
	if !ok {
		ch = &eventChannel{readers: make(map[ReaderID]uint64)}
		w.channels[id] = ch
	}
	return ch
}

func (w *World) emit(id component.ComponentID, evt ComponentEvent) {
	if ch, ok := w.channels[id]; ok {
		ch.push(evt)
	}
}
