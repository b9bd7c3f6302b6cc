package entity

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/geom"
)

// ErrInvalidAgent is returned by Agent.Validate.
var ErrInvalidAgent = errors.New("invalid agent")

// Agent is one moving entity. Velocity never exceeds MaxSpeed after a
// mutation made through this package.
type Agent struct {
	// ID is optional. Agents sharing a non-empty ID with the solve subject
	// are treated as the subject itself and never constrain it.
	ID string

	Position r2.Vec
	Velocity r2.Vec
	Radius   float64
	// Confidence is extra clearance added to Radius in every proximity test.
	Confidence float64
	MaxSpeed   float64
	Target     r2.Vec

	// MergedIntoObstacle is only written by callers copying back a solve
	// result with MarkMerged.
	MergedIntoObstacle bool
}

// NewAgent creates an agent at position moving with velocity. MaxSpeed starts
// at the speed of velocity and Target at position; use WithInnerState to set
// both.
func NewAgent(position, velocity r2.Vec, radius float64) Agent {
	return Agent{
		Position: position,
		Velocity: velocity,
		Radius:   radius,
		MaxSpeed: geom.Norm(velocity),
		Target:   position,
	}
}

// WithID returns a copy of a with the given ID.
func (a Agent) WithID(id string) Agent {
	a.ID = id
	return a
}

// WithConfidence returns a copy of a with the given safety margin.
func (a Agent) WithConfidence(confidence float64) Agent {
	a.Confidence = confidence
	return a
}

// WithInnerState returns a copy of a steering towards target at no more than
// maxSpeed. The current velocity is clamped to the new limit.
func (a Agent) WithInnerState(maxSpeed float64, target r2.Vec) Agent {
	a.MaxSpeed = maxSpeed
	a.Target = target
	a.Velocity = geom.ClampNorm(a.Velocity, maxSpeed)
	return a
}

// UpdatePosition moves the agent to position and points its velocity at the
// target, clamped to MaxSpeed.
func (a *Agent) UpdatePosition(position r2.Vec) {
	a.Position = position
	a.Velocity = geom.ClampNorm(r2.Sub(a.Target, a.Position), a.MaxSpeed)
}

// Clearance is the radius used in proximity tests: Radius + Confidence.
func (a Agent) Clearance() float64 {
	return a.Radius + a.Confidence
}

// Speed returns the magnitude of the current velocity.
func (a Agent) Speed() float64 {
	return geom.Norm(a.Velocity)
}

// IsStatic reports whether the agent moves no faster than threshold.
func (a Agent) IsStatic(threshold float64) bool {
	return a.Speed() <= threshold
}

// Validate checks for negative or non-finite parameters.
func (a Agent) Validate() error {
	if !geom.IsFinite(a.Position) || !geom.IsFinite(a.Velocity) || !geom.IsFinite(a.Target) {
		return fmt.Errorf("%w %q: non-finite position, velocity or target", ErrInvalidAgent, a.ID)
	}
	if a.Radius < 0 || math.IsNaN(a.Radius) {
		return fmt.Errorf("%w %q: radius must be non-negative, got %f", ErrInvalidAgent, a.ID, a.Radius)
	}
	if a.Confidence < 0 || math.IsNaN(a.Confidence) {
		return fmt.Errorf("%w %q: confidence must be non-negative, got %f", ErrInvalidAgent, a.ID, a.Confidence)
	}
	if a.MaxSpeed < 0 || math.IsNaN(a.MaxSpeed) {
		return fmt.Errorf("%w %q: max speed must be non-negative, got %f", ErrInvalidAgent, a.ID, a.MaxSpeed)
	}
	return nil
}

// MarkMerged copies clustering flags back onto agents. merged is indexed like
// agents; extra entries on either side are ignored.
func MarkMerged(agents []Agent, merged []bool) {
	for i := range agents {
		if i >= len(merged) {
			return
		}
		agents[i].MergedIntoObstacle = merged[i]
	}
}
