package component

import "github.com/milk9111/tiledworld/common"

type Player struct {
	Index uint32
}

var PlayerComponent = NewComponent[Player]("player")

// Controller is the analog input state written by the input collaborator.
type Controller struct {
	Analog common.V2
}

var ControllerComponent = NewComponent[Controller]("controller")

type MaxSpeed struct {
	Speed float64
}

var MaxSpeedComponent = NewComponent[MaxSpeed]("max_speed")
