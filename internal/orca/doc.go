// Package orca computes collision-avoiding velocities with Optimal Reciprocal
// Collision Avoidance.
//
// A solve builds one half-plane per neighbour (vo.AgentPlane), one per
// clustered pair of stationary neighbours (cluster.Build) and one per static
// obstacle (vo.ObstaclePlane), then intersects them with halfplane.Solve,
// preferring the subject's current velocity. When the intersection is empty
// every neighbour plane is relaxed by a small step and the intersection is
// retried, up to Config.MaxRelaxations times. Obstacle planes are never
// relaxed.
//
// Key types: Solver, Config, Constraints, Result.
//
// Solver is immutable and safe for concurrent use. Inputs are never mutated.
package orca
