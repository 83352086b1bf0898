package common

import "math"

// MTV returns the minimum translation vector between two convex shapes given
// in world space. The vector points from a into b: subtracting it from a's
// position separates the shapes. Shapes that only touch do not collide.
func MTV(a, b Shape) (V2, bool) {
	pa := a.Points()
	pb := b.Points()
	if len(pa) == 0 || len(pb) == 0 {
		return V2{}, false
	}

	best := math.Inf(1)
	var bestAxis V2
	for _, pts := range [][]V2{pa, pb} {
		for i := range pts {
			edge := pts[(i+1)%len(pts)].Sub(pts[i])
			axis, ok := Unitize(NewV2(-edge.Y, edge.X))
			if !ok {
				continue
			}
			minA, maxA := project(pa, axis)
			minB, maxB := project(pb, axis)
			overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
			if overlap <= Epsilon {
				return V2{}, false
			}
			// Containment: pushing out the short way means covering the
			// gap to the nearer outer edge too.
			if (minA >= minB && maxA <= maxB) || (minB >= minA && maxB <= maxA) {
				overlap += math.Min(math.Abs(minA-minB), math.Abs(maxA-maxB))
			}
			if overlap < best {
				best = overlap
				bestAxis = axis
			}
		}
	}
	if math.IsInf(best, 1) {
		return V2{}, false
	}

	if b.Center().Sub(a.Center()).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Neg()
	}
	return bestAxis.Mult(best), true
}

func project(points []V2, axis V2) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
