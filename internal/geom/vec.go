package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the tolerance used by every geometric predicate.
const Epsilon = 1e-9

// Zero is the zero vector.
var Zero = r2.Vec{}

// Norm returns the Euclidean length of v.
func Norm(v r2.Vec) float64 {
	return r2.Norm(v)
}

// Normalize returns v scaled to unit length. The zero vector maps to itself
// instead of producing NaN components.
func Normalize(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return Zero
	}
	return r2.Scale(1/n, v)
}

// Cross returns the z component of the 3D cross product, a.X*b.Y - a.Y*b.X.
func Cross(a, b r2.Vec) float64 {
	return r2.Cross(a, b)
}

// Dot returns the dot product of a and b.
func Dot(a, b r2.Vec) float64 {
	return r2.Dot(a, b)
}

// Dist returns the distance between a and b.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Mix linearly interpolates between a (t=0) and b (t=1). t is not clamped.
func Mix(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Perp returns v rotated by -90 degrees: (v.Y, -v.X).
func Perp(v r2.Vec) r2.Vec {
	return r2.Vec{X: v.Y, Y: -v.X}
}

// Neg returns -v.
func Neg(v r2.Vec) r2.Vec {
	return r2.Scale(-1, v)
}

// ClampNorm shortens v to length max when it is longer, keeping its direction.
func ClampNorm(v r2.Vec, max float64) r2.Vec {
	if r2.Norm(v) > max {
		return r2.Scale(max, Normalize(v))
	}
	return v
}

// Clamp limits x to [lo, hi]. When lo > hi the result is lo.
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

// NearlyZero reports whether |x| <= Epsilon.
func NearlyZero(x float64) bool {
	return scalar.EqualWithinAbs(x, 0, Epsilon)
}

// NearlyEqual reports whether a and b are within Epsilon of each other
// component-wise.
func NearlyEqual(a, b r2.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, Epsilon) && scalar.EqualWithinAbs(a.Y, b.Y, Epsilon)
}

// IsFinite reports whether both components of v are finite numbers.
func IsFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
