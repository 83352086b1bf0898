package system

import (
	"testing"

	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
)

func TestPlayerSystem(t *testing.T) {
	tests := []struct {
		name     string
		analog   common.V2
		maxSpeed float64 // 0 = no MaxSpeed component
		exile    bool
		want     common.V2
	}{
		{"own_max_speed", common.NewV2(3, 4), 10, false, common.NewV2(6, 8)},
		{"default_max_speed", common.NewV2(0, -0.5), 0, false, common.NewV2(0, -100)},
		{"released_stick_stops", common.NewV2(0, 0), 10, false, common.NewV2(0, 0)},
		{"exiled_untouched", common.NewV2(1, 0), 10, true, common.NewV2(7, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			must := func(err error) {
				if err != nil {
					t.Fatal(err)
				}
			}
			must(ecs.Add(w, e, component.PlayerComponent.Kind(), component.Player{Index: 0}))
			must(ecs.Add(w, e, component.VelocityComponent.Kind(), component.Velocity{V: common.NewV2(7, 7)}))
			must(ecs.Add(w, e, component.ControllerComponent.Kind(), component.Controller{Analog: tt.analog}))
			if tt.maxSpeed > 0 {
				must(ecs.Add(w, e, component.MaxSpeedComponent.Kind(), component.MaxSpeed{Speed: tt.maxSpeed}))
			}
			if tt.exile {
				must(ecs.Add(w, e, component.ExileComponent.Kind(), component.Exile{}))
			}

			NewPlayerSystem(100).Update(w)

			vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
			if !common.NearlyEqual(vel.V, tt.want, 1e-9) {
				t.Fatalf("expected velocity %v, got %v", tt.want, vel.V)
			}
		})
	}
}

func TestPlayerSystemPanicsWithoutVelocity(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerComponent.Kind(), component.Player{})
	_ = ecs.Add(w, e, component.ControllerComponent.Kind(), component.Controller{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a player without velocity")
		}
	}()
	NewPlayerSystem(100).Update(w)
}
