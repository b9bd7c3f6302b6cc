package vo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/geom"
)

// AgentPlane returns the constraint other imposes on self over time horizon
// tau (tau > 0).
//
// Three regimes:
//  1. Overlap: the agents already intersect. The relative velocity must
//     point away from other at no less than the penetration depth, whatever
//     the current heading. Coincident centres fall back to OutOfDisk.
//  2. Cap: the relative velocity lies in the cone but short of the tangent
//     chord of the truncation disk (x/tau, r/tau). Escape that disk.
//  3. Cone: project the relative velocity onto both cone legs and push
//     towards the nearer one. Inside the cone U is doubled; outside the
//     cone N is flipped and U halved.
func AgentPlane(self, other entity.Agent, tau float64) Halfplane {
	x := r2.Sub(other.Position, self.Position)
	r := self.Clearance() + other.Clearance()
	v := r2.Sub(self.Velocity, other.Velocity)
	dist := geom.Norm(x)

	if geom.NearlyZero(dist) {
		return OutOfDisk(x, r, v)
	}
	if dist < r {
		return escapeOverlap(x, r, v)
	}

	diskCenter := r2.Scale(1/tau, x)
	diskR := r / tau
	// Midpoint of the chord joining the two tangent points of the cap disk.
	adjustedDiskCenter := r2.Scale(1-(r*r)/(dist*dist), diskCenter)

	positionAngle := geom.AngleOf(x)
	halfAngle := geom.ArcsinDeg(r, dist)
	inCone := geom.NearlyZero(geom.Norm(v)) || geom.AngleDiff(geom.AngleOf(v), positionAngle) <= halfAngle

	if inCone && r2.Dot(r2.Sub(v, adjustedDiskCenter), x) < 0 {
		return OutOfDisk(diskCenter, diskR, v)
	}

	left := geom.ClosestPointOnSegment(geom.Zero, geom.VectorOfAngle(positionAngle+halfAngle), v, 0, math.Inf(1))
	right := geom.ClosestPointOnSegment(geom.Zero, geom.VectorOfAngle(positionAngle-halfAngle), v, 0, math.Inf(1))

	closest := left
	if geom.Dist(v, right) < geom.Dist(v, left) {
		closest = right
	}

	u := r2.Sub(closest, v)
	n := geom.Normalize(u)
	if inCone {
		u = r2.Scale(2, u)
	} else {
		n = geom.Neg(n)
		u = r2.Scale(0.5, u)
	}
	return Halfplane{U: u, N: n}
}

// escapeOverlap returns the plane whose boundary is the relative velocity
// leaving the neighbour at x along -x at speed r - |x|. Every permitted
// relative velocity has a positive component away from the neighbour.
func escapeOverlap(x r2.Vec, r float64, v r2.Vec) Halfplane {
	n := geom.Normalize(geom.Neg(x))
	escape := r2.Scale(r-geom.Norm(x), n)
	return Halfplane{U: r2.Sub(escape, v), N: n}
}
