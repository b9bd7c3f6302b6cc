// Package halfplane intersects an ordered set of velocity half-planes and
// returns the permitted point nearest a preferred velocity.
//
// The method is the incremental 2D linear-program scheme: walk the planes in
// order and, whenever the running solution violates one, move it onto that
// plane's boundary line, limited to the interval the earlier planes allow.
// The result depends on plane order; later planes take precedence.
package halfplane
