package system

import (
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
)

// FrameClockSystem advances the FrameClock singleton by a fixed step,
// creating it on first use.
type FrameClockSystem struct {
	step float64
}

func NewFrameClockSystem(step float64) *FrameClockSystem {
	return &FrameClockSystem{step: step}
}

func (s *FrameClockSystem) Update(w *ecs.World) {
	e, ok := ecs.First(w, component.FrameClockComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
	}
	var clock component.FrameClock
	if c, ok := ecs.Get(w, e, component.FrameClockComponent.Kind()); ok {
		clock = *c
	}
	clock.Delta = s.step
	clock.Frame++
	if err := ecs.Add(w, e, component.FrameClockComponent.Kind(), clock); err != nil {
		panic("frame clock system: update clock: " + err.Error())
	}
}

// frameDelta returns the last tick's duration, or 0 without a clock.
func frameDelta(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.FrameClockComponent.Kind())
	if !ok {
		return 0
	}
	clock, _ := ecs.Get(w, e, component.FrameClockComponent.Kind())
	return clock.Delta
}

func exiled(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.ExileComponent.Kind())
}
