package component

import "image"

// TextureFrame names a rectangle of a sprite sheet and how to draw it.
type TextureFrame struct {
	SpriteSheet string
	Source      image.Rectangle
	Size        image.Point
	FlippedH    bool
	FlippedV    bool
	FlippedD    bool
}

type Rendering struct {
	Frame TextureFrame
}

var RenderingComponent = NewComponent[Rendering]("rendering")
