// Package entity owns the value types the solver reasons about: moving
// agents and static line obstacles.
//
// Key types: Agent, Obstacle.
//
// Dependency rule: entity may depend on geom only. Nothing in this package
// touches the solver or performs IO.
package entity
