package geom

import "gonum.org/v1/gonum/spatial/r2"

// ClosestPointOnSegment projects target onto the line through p0 and p1 and
// returns the projected point with its parameter clamped to [tMin, tMax].
// The parameter is 0 at p0 and 1 at p1; tMin and tMax may be infinite.
// A degenerate segment (p0 == p1) returns p0.
func ClosestPointOnSegment(p0, p1, target r2.Vec, tMin, tMax float64) r2.Vec {
	dir := r2.Sub(p1, p0)
	length2 := r2.Dot(dir, dir)
	if length2 == 0 {
		return p0
	}
	t := r2.Dot(r2.Sub(target, p0), dir) / length2
	return Mix(p0, p1, Clamp(t, tMin, tMax))
}
