package common

import "fmt"

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a convex collision shape in entity-local coordinates. A box uses
// Lower/Upper; a polygon uses Vertices.
type Shape struct {
	Kind     ShapeKind
	Lower    V2
	Upper    V2
	Vertices []V2
}

func BoxShape(lower, upper V2) Shape {
	return Shape{Kind: ShapeBox, Lower: lower, Upper: upper}
}

// BoxWithSize returns a box anchored at the origin.
func BoxWithSize(w, h float64) Shape {
	return BoxShape(Origin(), NewV2(w, h))
}

func PolygonShape(vertices []V2) Shape {
	verts := make([]V2, len(vertices))
	copy(verts, vertices)
	return Shape{Kind: ShapePolygon, Vertices: verts}
}

// AABB returns the local bounding box of the shape.
func (s Shape) AABB() AABB {
	if s.Kind == ShapeBox {
		return AABBFromPoints([]V2{s.Lower, s.Upper})
	}
	return AABBFromPoints(s.Vertices)
}

// Translated returns a copy of the shape moved by v.
func (s Shape) Translated(v V2) Shape {
	if s.Kind == ShapeBox {
		return BoxShape(s.Lower.Add(v), s.Upper.Add(v))
	}
	verts := make([]V2, len(s.Vertices))
	for i, p := range s.Vertices {
		verts[i] = p.Add(v)
	}
	return Shape{Kind: ShapePolygon, Vertices: verts}
}

// Points returns the shape's corners in winding order.
func (s Shape) Points() []V2 {
	if s.Kind == ShapeBox {
		bb := s.AABB()
		return []V2{
			NewV2(bb.L, bb.B),
			NewV2(bb.R, bb.B),
			NewV2(bb.R, bb.T),
			NewV2(bb.L, bb.T),
		}
	}
	return s.Vertices
}

// Center is the mean of the shape's points.
func (s Shape) Center() V2 {
	pts := s.Points()
	if len(pts) == 0 {
		return Origin()
	}
	var c V2
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mult(1 / float64(len(pts)))
}

func (s Shape) String() string {
	if s.Kind == ShapeBox {
		return fmt.Sprintf("box(%v,%v)-(%v,%v)", s.Lower.X, s.Lower.Y, s.Upper.X, s.Upper.Y)
	}
	return fmt.Sprintf("polygon(%d vertices)", len(s.Vertices))
}
