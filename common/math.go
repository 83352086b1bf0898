package common

import "math"

// Epsilon is the tolerance used for float comparisons in the simulation.
const Epsilon = 1e-9

// ApproxEqual reports whether a and b differ by less than eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}
