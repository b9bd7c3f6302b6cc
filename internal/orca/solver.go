package orca

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/geom"
	"github.com/banshee-data/orca/internal/halfplane"
	"github.com/banshee-data/orca/internal/vo"
)

// ErrNoFeasibleVelocity is returned when the constraints stay infeasible
// after Config.MaxRelaxations retries, or when only unrelaxable obstacle
// planes conflict. The accompanying Result has a zero velocity.
var ErrNoFeasibleVelocity = errors.New("no feasible velocity found")

// Result describes one solve.
type Result struct {
	// Velocity is the new velocity, no faster than the subject's MaxSpeed.
	// It is zero when Feasible is false.
	Velocity r2.Vec
	Feasible bool
	// Relaxations is the number of relaxation rounds applied.
	Relaxations int
	// Merged is indexed like the neighbour slice; true marks neighbours
	// folded into a cluster obstacle.
	Merged []bool
	// ClusterObstacles are the segments synthesised from merged pairs.
	ClusterObstacles []entity.Obstacle
	// Clamped reports that the MaxSpeed clamp moved Velocity outside the
	// solved constraints.
	Clamped bool

	NeighborPlanes int
	ObstaclePlanes int
}

// Solver computes ORCA velocities with a fixed Config.
type Solver struct {
	cfg Config
}

// New returns a Solver after validating cfg.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg}, nil
}

// Config returns the solver configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// Solve returns the velocity for subject that avoids neighbors and obstacles
// over the configured time horizon while staying closest to the subject's
// current velocity.
//
// On ErrNoFeasibleVelocity the Result is still populated (Feasible false,
// zero Velocity) so callers may stop the agent.
func (s *Solver) Solve(subject entity.Agent, neighbors []entity.Agent, obstacles []entity.Obstacle) (Result, error) {
	c, err := s.Constraints(subject, neighbors, obstacles)
	if err != nil {
		Opsf("rejected solve for %q: %v", subject.ID, err)
		return Result{}, err
	}

	res := Result{
		Merged:           c.Merged,
		ClusterObstacles: c.ClusterObstacles,
		NeighborPlanes:   len(c.Neighbor),
		ObstaclePlanes:   len(c.Cluster) + len(c.Obstacle),
	}

	neighbor := c.Neighbor
	planes := c.Planes()
	for round := 0; ; round++ {
		v, ok := halfplane.Solve(planes, subject.Velocity, subject.Velocity)
		if ok {
			res.Velocity = geom.ClampNorm(v, subject.MaxSpeed)
			res.Feasible = true
			res.Relaxations = round
			res.Clamped = res.Velocity != v && !halfplane.Feasible(planes, subject.Velocity, res.Velocity)
			if res.Clamped {
				Diagf("solve %q: speed limit %.4f leaves the permitted region", subject.ID, subject.MaxSpeed)
			}
			Diagf("solve %q: %d neighbor planes, %d obstacle planes, %d relaxations, velocity (%.4f, %.4f)",
				subject.ID, res.NeighborPlanes, res.ObstaclePlanes, round, res.Velocity.X, res.Velocity.Y)
			return res, nil
		}

		if len(neighbor) == 0 || round >= s.cfg.MaxRelaxations {
			res.Relaxations = round
			Opsf("solve %q: no feasible velocity after %d relaxations (%d neighbor planes, %d obstacle planes)",
				subject.ID, round, res.NeighborPlanes, res.ObstaclePlanes)
			return res, fmt.Errorf("subject %q: %w", subject.ID, ErrNoFeasibleVelocity)
		}

		neighbor = vo.RelaxAll(neighbor, s.cfg.RelaxationStep)
		planes = c.withNeighbor(neighbor)
		Tracef("solve %q: round %d infeasible, relaxed %d neighbor planes", subject.ID, round, len(neighbor))
	}
}

// Solve is a convenience wrapper running a default-configured Solver with
// time horizon tau and returning only the velocity.
func Solve(subject entity.Agent, neighbors []entity.Agent, obstacles []entity.Obstacle, tau float64) (r2.Vec, error) {
	cfg := DefaultConfig()
	cfg.TimeHorizon = tau
	s, err := New(cfg)
	if err != nil {
		return geom.Zero, err
	}
	res, err := s.Solve(subject, neighbors, obstacles)
	return res.Velocity, err
}
