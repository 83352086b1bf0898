package ecs

import "github.com/milk9111/tiledworld/ecs/component"

// ChangeKind describes what happened to a component.
type ChangeKind uint8

const (
	ChangeInserted ChangeKind = iota + 1
	ChangeModified
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInserted:
		return "inserted"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ComponentEvent records one change to one component of one entity.
type ComponentEvent struct {
	Kind   ChangeKind
	Entity Entity
}

// ReaderID identifies an independent cursor into a component's change stream.
type ReaderID uint32

// eventChannel buffers change events until every registered reader has seen
// them. Nothing is buffered while a channel has no readers.
type eventChannel struct {
	events  []ComponentEvent
	base    uint64
	readers map[ReaderID]uint64
}

func (c *eventChannel) push(evt ComponentEvent) {
	if len(c.readers) == 0 {
		return
	}
	c.events = append(c.events, evt)
}

func (c *eventChannel) read(r ReaderID) []ComponentEvent {
	cursor, ok := c.readers[r]
	if !ok {
		return nil
	}
	end := c.base + uint64(len(c.events))
	if cursor == end {
		return nil
	}
	pending := c.events[cursor-c.base:]
	out := make([]ComponentEvent, len(pending))
	copy(out, pending)
	c.readers[r] = end
	c.compact()
	return out
}

func (c *eventChannel) compact() {
	low := c.base + uint64(len(c.events))
	for _, cursor := range c.readers {
		if cursor < low {
			low = cursor
		}
	}
	drop := int(low - c.base)
	if drop == 0 {
		return
	}
	c.events = append(c.events[:0], c.events[drop:]...)
	c.base = low
}

// RegisterReader opens a cursor on kind's change stream. The reader sees
// every change made after registration.
func RegisterReader(w *World, kind component.Kind) ReaderID {
	ch := w.channel(kind.ID())
	w.nextReader++
	id := w.nextReader
	ch.readers[id] = ch.base + uint64(len(ch.events))
	return id
}

// ReadEvents returns the changes to kind that reader has not seen yet, in the
// order they happened.
func ReadEvents(w *World, kind component.Kind, reader ReaderID) []ComponentEvent {
	ch, ok := w.channels[kind.ID()]
	if !ok {
		return nil
	}
	return ch.read(reader)
}

// MarkModified publishes a modification made in place through a pointer
// returned by Get or ForEach.
func MarkModified(w *World, e Entity, kind component.Kind) {
	if !w.HasComponent(e, kind) {
		return
	}
	w.emit(kind.ID(), ComponentEvent{Kind: ChangeModified, Entity: e})
}
