// Package geom holds the 2D vector and angle primitives the collision
// avoidance packages are built on.
//
// Vectors are gonum r2.Vec values. Angles are in degrees throughout.
//
// Tolerance policy: divisions are guarded with exact zero checks
// (Normalize, AngleOf, ClosestPointOnSegment). Geometric predicates
// (parallel lines, half-plane violation, empty intervals, static agents)
// compare against Epsilon.
package geom
