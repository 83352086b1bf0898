package component

// LoadMap asks the map system to load File and insert it into the world.
// The requesting entity is destroyed once the load settles.
type LoadMap struct {
	File string
}

var LoadMapComponent = NewComponent[LoadMap]("load_map")

// FrameClock is the singleton frame timing resource.
type FrameClock struct {
	Delta float64
	Frame uint64
}

var FrameClockComponent = NewComponent[FrameClock]("frame_clock")
