package vo

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/geom"
)

// EscapeBiasDeg is the rotation applied to every disk escape direction so
// symmetric encounters resolve to the same side.
const EscapeBiasDeg = 10.0

// OutOfDisk returns the quickest way for velocity to reach the boundary of
// the disk (center, radius). N is the direction from center to velocity
// rotated by EscapeBiasDeg; U = N * (radius - |velocity - center|).
func OutOfDisk(center r2.Vec, radius float64, velocity r2.Vec) Halfplane {
	rel := r2.Sub(velocity, center)
	n := geom.VectorOfAngle(geom.AngleOf(rel) + EscapeBiasDeg)
	return Halfplane{
		U: r2.Scale(radius-geom.Norm(rel), n),
		N: n,
	}
}
