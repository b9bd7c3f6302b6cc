package entity

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/geom"
)

// ErrInvalidObstacle is returned by Obstacle.Validate.
var ErrInvalidObstacle = errors.New("invalid obstacle")

// Obstacle is a static line segment with a clearance radius around it.
type Obstacle struct {
	Start  r2.Vec
	End    r2.Vec
	Radius float64
}

// Validate checks for a negative radius or non-finite endpoints.
func (o Obstacle) Validate() error {
	if !geom.IsFinite(o.Start) || !geom.IsFinite(o.End) {
		return fmt.Errorf("%w: non-finite endpoint %v..%v", ErrInvalidObstacle, o.Start, o.End)
	}
	if o.Radius < 0 || math.IsNaN(o.Radius) {
		return fmt.Errorf("%w: radius must be non-negative, got %f", ErrInvalidObstacle, o.Radius)
	}
	return nil
}

// Length returns the distance between the endpoints.
func (o Obstacle) Length() float64 {
	return geom.Dist(o.Start, o.End)
}

// BoundingObstacles returns the four walls of the rectangle
// [0,width]x[0,height], clockwise from the left wall.
func BoundingObstacles(width, height, radius float64) []Obstacle {
	corners := []r2.Vec{
		{X: 0, Y: 0},
		{X: 0, Y: height},
		{X: width, Y: height},
		{X: width, Y: 0},
	}
	walls := make([]Obstacle, 0, len(corners))
	for i, c := range corners {
		walls = append(walls, Obstacle{
			Start:  c,
			End:    corners[(i+1)%len(corners)],
			Radius: radius,
		})
	}
	return walls
}
