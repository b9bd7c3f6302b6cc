package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/orca"
)

// Track is the sequence of positions one agent visited, starting with its
// initial position.
type Track struct {
	AgentID string
	Points  []r2.Vec
}

// StepReport summarises one simulation step.
type StepReport struct {
	Step int
	// Results is indexed like Scene.Agents.
	Results []orca.Result
	// Infeasible counts agents that were stopped because no velocity
	// satisfied their constraints.
	Infeasible int
}

// Run is the outcome of Simulate.
type Run struct {
	ID      string
	SceneID string
	Steps   []StepReport
	Tracks  []Track
	// Final is the scene after the last step.
	Final *Scene
}

// SubjectResult returns the solve result of the scene subject in step i.
func (r *Run) SubjectResult(i int) (orca.Result, error) {
	idx, err := r.Final.SubjectIndex()
	if err != nil {
		return orca.Result{}, err
	}
	if i < 0 || i >= len(r.Steps) {
		return orca.Result{}, fmt.Errorf("step %d out of range [0,%d)", i, len(r.Steps))
	}
	return r.Steps[i].Results[idx], nil
}

// Simulate advances s by steps of dt seconds and records every agent's
// track. s is not modified.
//
// Each step first re-aims every agent at its target, then solves all agents
// against the same snapshot, then moves each by its new velocity. Agents
// without a feasible velocity stop for that step.
func Simulate(ctx context.Context, solver *orca.Solver, s *Scene, steps int, dt float64) (*Run, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}

	cur := s.Clone()
	run := &Run{
		ID:      uuid.New().String(),
		SceneID: s.ID,
		Tracks:  make([]Track, len(cur.Agents)),
	}
	preferred := make([]r2.Vec, len(cur.Agents))
	for i, a := range cur.Agents {
		run.Tracks[i] = Track{AgentID: a.ID, Points: []r2.Vec{a.Position}}
		preferred[i] = a.Velocity
	}

	for step := 0; step < steps; step++ {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		for i := range cur.Agents {
			if !cur.Steered[cur.Agents[i].ID] {
				cur.Agents[i].Velocity = preferred[i]
			}
		}
		report, err := Step(solver, cur)
		if err != nil {
			return run, fmt.Errorf("step %d: %w", step, err)
		}
		report.Step = step
		for i := range cur.Agents {
			a := &cur.Agents[i]
			a.Velocity = report.Results[i].Velocity
			a.Position = r2.Add(a.Position, r2.Scale(dt, a.Velocity))
			run.Tracks[i].Points = append(run.Tracks[i].Points, a.Position)
		}
		run.Steps = append(run.Steps, report)
	}
	run.Final = cur
	return run, nil
}

// Step re-aims the steered agents of s at their targets and solves every
// agent against the others. Re-aiming replaces each steered agent's Velocity
// in s with its preferred velocity. Positions are left unchanged and the
// solved velocities are only returned in the report.
func Step(solver *orca.Solver, s *Scene) (StepReport, error) {
	if s.TimeHorizon > 0 && s.TimeHorizon != solver.Config().TimeHorizon {
		cfg := solver.Config()
		cfg.TimeHorizon = s.TimeHorizon
		var err error
		if solver, err = orca.New(cfg); err != nil {
			return StepReport{}, err
		}
	}

	for i := range s.Agents {
		if s.Steered[s.Agents[i].ID] {
			s.Agents[i].UpdatePosition(s.Agents[i].Position)
		}
	}

	report := StepReport{Results: make([]orca.Result, len(s.Agents))}
	for i, a := range s.Agents {
		res, err := solver.Solve(a, s.Neighbors(i), s.Obstacles)
		if err != nil {
			if !errors.Is(err, orca.ErrNoFeasibleVelocity) {
				return report, err
			}
			report.Infeasible++
		}
		report.Results[i] = res
	}
	return report, nil
}

// MergedAgents returns the agents of s with MergedIntoObstacle copied from
// res, a result computed for the agent at index i.
func MergedAgents(s *Scene, i int, res orca.Result) []entity.Agent {
	neighbors := s.Neighbors(i)
	entity.MarkMerged(neighbors, res.Merged)
	return neighbors
}
