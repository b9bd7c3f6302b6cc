package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
)

// Deadlock returns the built-in scene used when the driver is given no scene
// file: a subject heading for (0.2, 0.2) in the corner of a 1.6x2 room, its
// path blocked by two idle agents.
//
// Only the right and bottom walls are present. The left and top walls
// produce half-planes that exclude the subject's own position.
func Deadlock() *Scene {
	subject := entity.NewAgent(r2.Vec{X: 1.171660304069519, Y: 0.22933036088943481}, r2.Vec{}, 0.15).
		WithInnerState(0.2, r2.Vec{X: 0.2, Y: 0.2}).
		WithID("subject")
	subject.UpdatePosition(subject.Position)

	walls := entity.BoundingObstacles(1.6, 2.0, 0.01)

	return &Scene{
		ID:          uuid.New().String(),
		Name:        "deadlock",
		Subject:     subject.ID,
		TimeHorizon: 2.0,
		Agents: []entity.Agent{
			subject,
			entity.NewAgent(r2.Vec{X: 0.876857340335846, Y: 0.8371948003768921}, r2.Vec{}, 0.15).WithID("idle-1"),
			entity.NewAgent(r2.Vec{X: 1.1547585725784302, Y: 0.3865005373954773}, r2.Vec{}, 0.15).WithID("idle-2"),
		},
		Obstacles: walls[2:],
		Steered:   map[string]bool{subject.ID: true},
	}
}
