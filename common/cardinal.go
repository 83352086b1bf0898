package common

import "math"

// Cardinal is one of the eight compass directions. North is screen-up (-y).
type Cardinal int

const (
	East Cardinal = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

var cardinalNames = [...]string{"east", "southeast", "south", "southwest", "west", "northwest", "north", "northeast"}

func (c Cardinal) String() string {
	if c < 0 || int(c) >= len(cardinalNames) {
		return "none"
	}
	return cardinalNames[c]
}

// CardinalFromV2 discretizes a direction vector into the nearest compass
// direction. The zero vector has no direction.
func CardinalFromV2(v V2) (Cardinal, bool) {
	if v.X == 0 && v.Y == 0 {
		return 0, false
	}
	angle := math.Atan2(v.Y, v.X)
	sector := int(math.Round(angle / (math.Pi / 4)))
	sector = ((sector % 8) + 8) % 8
	return Cardinal(sector), true
}

// V2 returns the unit vector pointing in direction c.
func (c Cardinal) V2() V2 {
	angle := float64(c) * math.Pi / 4
	return NewV2(math.Cos(angle), math.Sin(angle))
}
