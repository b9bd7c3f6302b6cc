package orca

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/orca/internal/geom"
)

// ErrInvalidTimeHorizon is returned when the time horizon is not a positive
// finite number.
var ErrInvalidTimeHorizon = errors.New("time horizon must be positive")

// ErrInvalidConfig wraps every other configuration problem.
var ErrInvalidConfig = errors.New("invalid solver config")

// Default configuration values.
const (
	DefaultTimeHorizon    = 2.0
	DefaultRelaxationStep = 1e-4
	DefaultMaxRelaxations = 50000
)

// Config controls one Solver.
type Config struct {
	// TimeHorizon is the look-ahead over which collisions are avoided.
	TimeHorizon float64
	// ClusterStaticAgents merges close pairs of stationary neighbours into
	// line obstacles.
	ClusterStaticAgents bool
	// StaticSpeedThreshold is the speed at or below which a neighbour counts
	// as stationary for clustering.
	StaticSpeedThreshold float64
	// RelaxationStep is how far each neighbour plane moves per retry.
	RelaxationStep float64
	// MaxRelaxations caps the retries after an infeasible intersection.
	MaxRelaxations int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TimeHorizon:          DefaultTimeHorizon,
		ClusterStaticAgents:  true,
		StaticSpeedThreshold: geom.Epsilon,
		RelaxationStep:       DefaultRelaxationStep,
		MaxRelaxations:       DefaultMaxRelaxations,
	}
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	if !(c.TimeHorizon > 0) || math.IsInf(c.TimeHorizon, 1) {
		return fmt.Errorf("%w, got %v", ErrInvalidTimeHorizon, c.TimeHorizon)
	}
	if c.StaticSpeedThreshold < 0 || math.IsNaN(c.StaticSpeedThreshold) {
		return fmt.Errorf("%w: static_speed_threshold must be non-negative, got %v", ErrInvalidConfig, c.StaticSpeedThreshold)
	}
	if !(c.RelaxationStep > 0) || math.IsInf(c.RelaxationStep, 1) {
		return fmt.Errorf("%w: relaxation_step must be positive, got %v", ErrInvalidConfig, c.RelaxationStep)
	}
	if c.MaxRelaxations < 0 {
		return fmt.Errorf("%w: max_relaxations must be non-negative, got %d", ErrInvalidConfig, c.MaxRelaxations)
	}
	return nil
}
