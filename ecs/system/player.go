package system

import (
	"fmt"

	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
)

// PlayerSystem steers players from their controllers: full analog
// deflection moves a player at its MaxSpeed.
type PlayerSystem struct {
	defaultMaxSpeed float64
}

func NewPlayerSystem(defaultMaxSpeed float64) *PlayerSystem {
	return &PlayerSystem{defaultMaxSpeed: defaultMaxSpeed}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerComponent.Kind(), component.ControllerComponent.Kind()) {
		if exiled(w, e) {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			panic(fmt.Sprintf("player system: player %s has no velocity", e))
		}
		ctrl, _ := ecs.Get(w, e, component.ControllerComponent.Kind())

		speed := s.defaultMaxSpeed
		if ms, ok := ecs.Get(w, e, component.MaxSpeedComponent.Kind()); ok {
			speed = ms.Speed
		}

		next := common.Origin()
		if dir, ok := common.Unitize(ctrl.Analog); ok {
			next = dir.Mult(speed)
		}
		if next == vel.V {
			continue
		}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), component.Velocity{V: next}); err != nil {
			panic("player system: set velocity: " + err.Error())
		}
	}
}
