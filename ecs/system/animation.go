package system

import (
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
)

// AnimationSystem advances playing animations by the frame delta and shows
// the current frame through the entity's Rendering.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := frameDelta(w)
	if dt <= 0 {
		return
	}

	for _, e := range w.Query(component.AnimationComponent.Kind(), component.RenderingComponent.Kind()) {
		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
		if !anim.Playing || len(anim.Frames) == 0 {
			continue
		}
		before := anim.CurrentFrame
		advance(anim, dt)
		if anim.CurrentFrame == before {
			continue
		}
		r := component.Rendering{Frame: anim.Frames[anim.CurrentFrame].Frame}
		if err := ecs.Add(w, e, component.RenderingComponent.Kind(), r); err != nil {
			panic("animation system: set frame: " + err.Error())
		}
	}
}

// advance moves anim forward by dt seconds. It steps at most one full cycle
// per call so zero-length frames cannot spin.
func advance(anim *component.Animation, dt float64) {
	anim.Progress += dt
	for steps := 0; steps < len(anim.Frames); steps++ {
		d := anim.Frames[anim.CurrentFrame].Duration
		if anim.Progress < d {
			return
		}
		anim.Progress -= d
		next := anim.CurrentFrame + 1
		if next >= len(anim.Frames) {
			if !anim.Repeat {
				anim.Playing = false
				anim.Progress = 0
				return
			}
			next = 0
		}
		anim.CurrentFrame = next
	}
}
