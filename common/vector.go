package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// V2 is a 2D vector in world space. Screen coordinates: +x right, +y down.
type V2 = cp.Vector

func NewV2(x, y float64) V2 {
	return cp.Vector{X: x, Y: y}
}

// Origin returns the zero vector.
func Origin() V2 {
	return cp.Vector{}
}

// Unitize returns v scaled to length 1, or false when v has no length.
func Unitize(v V2) (V2, bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) {
		return V2{}, false
	}
	return v.Mult(1 / l), true
}

// NearlyEqual compares two vectors component-wise.
func NearlyEqual(a, b V2, eps float64) bool {
	return ApproxEqual(a.X, b.X, eps) && ApproxEqual(a.Y, b.Y, eps)
}
