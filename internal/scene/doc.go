// Package scene describes a set of agents and wall obstacles as JSON, loads
// it through fsutil, and steps every agent with the ORCA solver to produce
// position tracks.
package scene
