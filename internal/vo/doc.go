// Package vo builds velocity-obstacle constraints.
//
// Every constraint is a Halfplane expressed relative to the subject's current
// velocity: the boundary passes through velocity+U and N points into the
// permitted side.
//
// Responsibilities: pairwise agent cones (with the truncated cap and the
// overlap escape), static segment obstacles, and the shared disk-escape
// primitive.
// Key types: Halfplane.
//
// Dependency rule: vo depends on geom and entity only.
package vo
