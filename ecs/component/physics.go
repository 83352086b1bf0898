package component

import "github.com/milk9111/tiledworld/common"

// Shape is an entity's collision geometry, local to its Position.
var ShapeComponent = NewComponent[common.Shape]("shape")

// Barrier marks an entity that blocks other barriers on the same z level.
type Barrier struct{}

var BarrierComponent = NewComponent[Barrier]("barrier")

// ZLevel is the index of the flattened map layer an entity came from.
type ZLevel struct {
	Z float64
}

var ZLevelComponent = NewComponent[ZLevel]("zlevel")

// Exile takes an entity out of the simulation without destroying it.
type Exile struct{}

var ExileComponent = NewComponent[Exile]("exile")
