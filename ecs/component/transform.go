package component

import "github.com/milk9111/tiledworld/common"

// Position is the world-space top-left of an entity.
type Position struct {
	V common.V2
}

var PositionComponent = NewComponent[Position]("position")

// Velocity is in world units per second.
type Velocity struct {
	V common.V2
}

var VelocityComponent = NewComponent[Velocity]("velocity")

// OriginOffset moves an entity's visual origin relative to its position.
type OriginOffset struct {
	V common.V2
}

var OriginOffsetComponent = NewComponent[OriginOffset]("origin_offset")

type Cardinal struct {
	Dir common.Cardinal
}

var CardinalComponent = NewComponent[Cardinal]("cardinal")
