package vo

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/geom"
)

// ObstaclePlane returns the constraint a static segment imposes on self over
// time horizon tau (tau > 0).
//
// When self already overlaps or touches the thickened segment, the boundary
// sits at the escape velocity -d, where d is the vector from self to the
// nearest segment point. Otherwise the segment is moved towards self by the combined
// clearance, scaled by 1/tau into velocity space, and the boundary is its
// point nearest the origin with N pointing back at the origin.
func ObstaclePlane(self entity.Agent, o entity.Obstacle, tau float64) Halfplane {
	clearance := self.Clearance() + o.Radius
	nearest := geom.ClosestPointOnSegment(o.Start, o.End, self.Position, 0, 1)
	distVec := r2.Sub(nearest, self.Position)
	dist := geom.Norm(distVec)

	// Contact counts as overlap; the expansion below degenerates there.
	if dist < clearance+geom.Epsilon {
		return pushAway(self, o, distVec)
	}

	shift := r2.Scale(clearance, geom.Normalize(distVec))
	start := r2.Scale(1/tau, r2.Sub(r2.Sub(o.Start, self.Position), shift))
	end := r2.Scale(1/tau, r2.Sub(r2.Sub(o.End, self.Position), shift))
	closest := geom.ClosestPointOnSegment(start, end, geom.Zero, 0, 1)
	if geom.NearlyZero(geom.Norm(closest)) {
		return pushAway(self, o, distVec)
	}

	return Halfplane{
		U: r2.Sub(closest, self.Velocity),
		N: geom.Neg(geom.Normalize(closest)),
	}
}

// pushAway places the boundary at the escape velocity -distVec.
func pushAway(self entity.Agent, o entity.Obstacle, distVec r2.Vec) Halfplane {
	away := geom.Neg(distVec)
	n := geom.Normalize(away)
	if geom.NearlyZero(geom.Norm(distVec)) {
		// Centre on the segment: leave sideways, or along the biased
		// velocity when the segment is a point.
		if geom.NearlyZero(o.Length()) {
			n = OutOfDisk(geom.Zero, 0, self.Velocity).N
		} else {
			n = geom.Normalize(geom.Perp(r2.Sub(o.End, o.Start)))
		}
	}
	return Halfplane{U: r2.Sub(away, self.Velocity), N: n}
}
