// Package cluster merges pairs of nearby stationary agents into line
// obstacles before the pairwise constraints are built.
//
// Two independent point constraints in a narrow gap between idle agents
// over-constrain the subject; a single segment between them does not.
//
// Dependency rule: cluster depends on entity and vo. It never mutates the
// agents it is given.
package cluster
