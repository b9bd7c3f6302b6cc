package orca

import (
	"fmt"

	"github.com/banshee-data/orca/internal/cluster"
	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/vo"
)

// Constraints is the half-plane set built for one subject.
type Constraints struct {
	// Neighbor holds one plane per neighbour that was not merged into a
	// cluster, in neighbour order. Only these planes are relaxed.
	Neighbor []vo.Halfplane
	// Cluster holds one plane per merged pair of stationary neighbours.
	Cluster []vo.Halfplane
	// Obstacle holds one plane per static obstacle, in obstacle order.
	Obstacle []vo.Halfplane

	// ClusterObstacles are the segments behind Cluster.
	ClusterObstacles []entity.Obstacle
	// Merged is indexed like the neighbour slice given to the solver.
	Merged []bool
}

// Planes returns neighbour planes, then cluster planes, then obstacle planes.
// halfplane.Solve lets later planes win, so this order gives obstacles
// precedence over neighbour avoidance.
func (c Constraints) Planes() []vo.Halfplane {
	return c.withNeighbor(c.Neighbor)
}

func (c Constraints) withNeighbor(neighbor []vo.Halfplane) []vo.Halfplane {
	planes := make([]vo.Halfplane, 0, len(neighbor)+len(c.Cluster)+len(c.Obstacle))
	planes = append(planes, neighbor...)
	planes = append(planes, c.Cluster...)
	planes = append(planes, c.Obstacle...)
	return planes
}

// Constraints validates the inputs and builds the half-planes for subject.
// Neighbours sharing subject's non-empty ID are skipped.
func (s *Solver) Constraints(subject entity.Agent, neighbors []entity.Agent, obstacles []entity.Obstacle) (Constraints, error) {
	if err := subject.Validate(); err != nil {
		return Constraints{}, fmt.Errorf("subject: %w", err)
	}
	for i, n := range neighbors {
		if err := n.Validate(); err != nil {
			return Constraints{}, fmt.Errorf("neighbor %d: %w", i, err)
		}
	}
	for i, o := range obstacles {
		if err := o.Validate(); err != nil {
			return Constraints{}, fmt.Errorf("obstacle %d: %w", i, err)
		}
	}

	tau := s.cfg.TimeHorizon

	// others[k] is neighbors[index[k]].
	others := make([]entity.Agent, 0, len(neighbors))
	index := make([]int, 0, len(neighbors))
	for i, n := range neighbors {
		if subject.ID != "" && n.ID == subject.ID {
			continue
		}
		others = append(others, n)
		index = append(index, i)
	}

	c := Constraints{Merged: make([]bool, len(neighbors))}

	merged := make([]bool, len(others))
	if s.cfg.ClusterStaticAgents {
		res := cluster.Build(subject, others, tau, s.cfg.StaticSpeedThreshold)
		c.Cluster = res.Planes
		c.ClusterObstacles = res.Obstacles
		merged = res.Merged
		for _, p := range res.Pairs {
			Tracef("cluster: neighbors %d and %d merged into one obstacle", index[p.A], index[p.B])
		}
	}

	for k, other := range others {
		if merged[k] {
			c.Merged[index[k]] = true
			continue
		}
		h := vo.AgentPlane(subject, other, tau)
		Tracef("neighbor %d: %s", index[k], h)
		c.Neighbor = append(c.Neighbor, h)
	}

	for i, o := range obstacles {
		h := vo.ObstaclePlane(subject, o, tau)
		Tracef("obstacle %d: %s", i, h)
		c.Obstacle = append(c.Obstacle, h)
	}
	return c, nil
}
