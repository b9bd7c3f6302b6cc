// Package testutil provides shared test helpers for the geometry packages.
//
// This package centralises vector comparisons so every package asserts
// tolerances the same way.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultTolerance is the absolute tolerance used when tests do not need a
// tighter or looser bound.
const DefaultTolerance = 1e-9

// AssertVecNear checks that got is within tol of want in both components.
func AssertVecNear(t testing.TB, want, got r2.Vec, tol float64) bool {
	t.Helper()
	okX := assert.InDelta(t, want.X, got.X, tol, "X component (want %v, got %v)", want, got)
	okY := assert.InDelta(t, want.Y, got.Y, tol, "Y component (want %v, got %v)", want, got)
	return okX && okY
}

// AssertParallel checks that a and b point in the same direction.
// Both vectors must be non-zero.
func AssertParallel(t testing.TB, a, b r2.Vec, tol float64) bool {
	t.Helper()
	na, nb := r2.Norm(a), r2.Norm(b)
	if na == 0 || nb == 0 {
		return assert.Fail(t, "zero vector has no direction", "a=%v b=%v", a, b)
	}
	cos := r2.Dot(a, b) / (na * nb)
	return assert.InDelta(t, 1.0, cos, tol, "vectors not parallel: a=%v b=%v", a, b)
}

// AssertFiniteVec fails the test if v has a NaN or infinite component.
func AssertFiniteVec(t testing.TB, v r2.Vec) bool {
	t.Helper()
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return assert.Fail(t, "vector is not finite", "v=%v", v)
	}
	return true
}
