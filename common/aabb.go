package common

import "github.com/jakecoffman/cp"

// AABB is an axis-aligned box. L/R bound x; B/T bound y, with B <= T
// (B is the top edge on screen since y grows downward).
type AABB = cp.BB

// NewAABB builds a box from its top-left corner and size.
func NewAABB(x, y, w, h float64) AABB {
	return cp.BB{L: x, B: y, R: x + w, T: y + h}
}

// AABBFromPoints returns the smallest box containing all points.
func AABBFromPoints(points []V2) AABB {
	if len(points) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: points[0].X, B: points[0].Y, R: points[0].X, T: points[0].Y}
	for _, p := range points[1:] {
		bb.L = min(bb.L, p.X)
		bb.R = max(bb.R, p.X)
		bb.B = min(bb.B, p.Y)
		bb.T = max(bb.T, p.Y)
	}
	return bb
}

// Translate offsets a box by v.
func Translate(bb AABB, v V2) AABB {
	return cp.BB{L: bb.L + v.X, B: bb.B + v.Y, R: bb.R + v.X, T: bb.T + v.Y}
}

// Overlaps reports whether two boxes share interior area.
func Overlaps(a, b AABB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}

// Width and Height of a box.
func Width(bb AABB) float64  { return bb.R - bb.L }
func Height(bb AABB) float64 { return bb.T - bb.B }
