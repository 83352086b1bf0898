package stream

import (
	"github.com/milk9111/tiledworld/ecs"
)

// BroadcastSystem publishes a snapshot of the world to the hub every tick.
// It should run last so viewers see resolved positions.
type BroadcastSystem struct {
	hub *Hub
}

func NewBroadcastSystem(hub *Hub) *BroadcastSystem {
	return &BroadcastSystem{hub: hub}
}

func (s *BroadcastSystem) Update(w *ecs.World) {
	if s == nil || s.hub == nil || s.hub.Viewers() == 0 {
		return
	}
	if err := s.hub.Broadcast(Capture(w)); err != nil {
		s.hub.log.WithError(err).Warn("broadcast snapshot failed")
	}
}
