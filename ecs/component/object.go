package component

import "github.com/milk9111/tiledworld/tiled"

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]("name")

// Properties holds custom map properties no system has claimed yet.
type Properties struct {
	Values map[string]any
}

var PropertiesComponent = NewComponent[Properties]("properties")

// RawObject keeps a map object whose type no built-in system recognised.
type RawObject struct {
	Object tiled.Object
}

var RawObjectComponent = NewComponent[RawObject]("raw_object")
