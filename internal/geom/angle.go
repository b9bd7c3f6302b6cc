package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var xAxis = r2.Vec{X: 1}

// AngleOf returns the signed angle of v against the x axis in degrees,
// in [-180, 180]. The sign follows v.Y. The zero vector yields 90, the
// angle of a zero dot product.
func AngleOf(v r2.Vec) float64 {
	unit := Normalize(v)
	ang := radToDeg(math.Acos(Clamp(r2.Dot(xAxis, unit), -1, 1)))
	if v.Y < 0 {
		ang = -ang
	}
	return ang
}

// VectorOfAngle returns the unit vector at deg degrees from the x axis.
func VectorOfAngle(deg float64) r2.Vec {
	rad := degToRad(deg)
	return r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

// ArcsinDeg returns asin(opposite/hypotenuse) in degrees. The ratio is
// clamped to [-1, 1]; a zero hypotenuse yields 90.
func ArcsinDeg(opposite, hypotenuse float64) float64 {
	if hypotenuse == 0 {
		return 90
	}
	return radToDeg(math.Asin(Clamp(opposite/hypotenuse, -1, 1)))
}

// AngleDiff returns the smallest absolute difference between two angles on
// the circle, in [0, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(wrap360(a) - wrap360(b))
	return math.Min(d, 360-d)
}

func wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
