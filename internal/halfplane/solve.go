package halfplane

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/geom"
	"github.com/banshee-data/orca/internal/vo"
)

// line is a half-plane with its boundary resolved against the base velocity.
type line struct {
	point r2.Vec
	n     r2.Vec
	dir   r2.Vec
}

func resolve(planes []vo.Halfplane, base r2.Vec) []line {
	lines := make([]line, len(planes))
	for i, p := range planes {
		lines[i] = line{point: p.Boundary(base), n: p.N, dir: p.Direction()}
	}
	return lines
}

// Solve returns the point of the intersection of planes (offsets relative to
// base) nearest preferred. The second result is false when the intersection
// is empty.
func Solve(planes []vo.Halfplane, base, preferred r2.Vec) (r2.Vec, bool) {
	lines := resolve(planes, base)
	solution := preferred

	for i, l := range lines {
		if r2.Dot(r2.Sub(solution, l.point), l.n) >= -geom.Epsilon {
			continue
		}
		left, right, ok := interval(l, lines[:i])
		if !ok {
			debugf("plane %d: empty intersection with %d earlier planes", i, i)
			return geom.Zero, false
		}
		solution = geom.ClosestPointOnSegment(l.point, r2.Add(l.point, l.dir), preferred, left, right)
		debugf("plane %d violated: t in [%g, %g], solution now (%g, %g)", i, left, right, solution.X, solution.Y)
	}
	return solution, true
}

// Feasible reports whether v lies in every plane.
func Feasible(planes []vo.Halfplane, base, v r2.Vec) bool {
	for _, p := range planes {
		if !p.Contains(base, v) {
			return false
		}
	}
	return true
}

// interval returns the range [left, right] of t for which l.point + t*l.dir
// lies in every one of others. ok is false when the range is empty.
func interval(l line, others []line) (left, right float64, ok bool) {
	left, right = math.Inf(-1), math.Inf(1)

	for _, o := range others {
		// num/den locate the crossing of the two boundary lines along l.
		num := geom.Cross(r2.Sub(o.point, l.point), o.dir)
		den := geom.Cross(l.dir, o.dir)

		if geom.NearlyZero(den) {
			// Parallel: o either admits the whole of l or none of it.
			if num < -geom.Epsilon {
				return 0, 0, false
			}
			continue
		}

		t := num / den
		if den > 0 {
			right = math.Min(right, t)
		} else {
			left = math.Max(left, t)
		}
		if left-right > geom.Epsilon {
			return 0, 0, false
		}
	}
	return left, right, true
}
