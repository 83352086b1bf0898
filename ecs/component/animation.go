package component

type AnimationFrame struct {
	Frame    TextureFrame
	Duration float64 // seconds
}

type Animation struct {
	Frames       []AnimationFrame
	Playing      bool
	Repeat       bool
	CurrentFrame int
	Progress     float64
}

var AnimationComponent = NewComponent[Animation]("animation")
