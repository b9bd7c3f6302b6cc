package cluster

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/geom"
	"github.com/banshee-data/orca/internal/vo"
)

// Pair records two neighbour indices joined into one obstacle.
type Pair struct {
	A, B int
}

// Result is the outcome of one clustering pass.
type Result struct {
	// Obstacles are the synthesised segments, one per pair, in scan order.
	Obstacles []entity.Obstacle
	// Planes holds the obstacle constraint of each entry in Obstacles.
	Planes []vo.Halfplane
	// Merged is indexed like the neighbour slice passed to Build.
	Merged []bool
	Pairs  []Pair
}

// snapshot is the immutable first pass over the neighbours.
type snapshot struct {
	position  []r2.Vec
	clearance []float64
	static    []bool
}

func takeSnapshot(neighbors []entity.Agent, staticThreshold float64) snapshot {
	s := snapshot{
		position:  make([]r2.Vec, len(neighbors)),
		clearance: make([]float64, len(neighbors)),
		static:    make([]bool, len(neighbors)),
	}
	for i, n := range neighbors {
		s.position[i] = n.Position
		s.clearance[i] = n.Clearance()
		s.static[i] = n.IsStatic(staticThreshold)
	}
	return s
}

// Threshold is the centre distance below which two static agents a and b are
// merged when self must pass between them.
func Threshold(self, a, b entity.Agent) float64 {
	return a.Clearance() + b.Clearance() + 2*self.Clearance()
}

// Build scans neighbours with speed <= staticThreshold. Each static seed i
// that is not yet merged is paired with every later static neighbour j that
// is not yet merged and lies closer than Threshold. Each pair becomes an
// obstacle from i to j whose radius is the larger of the two clearances.
func Build(self entity.Agent, neighbors []entity.Agent, tau, staticThreshold float64) Result {
	snap := takeSnapshot(neighbors, staticThreshold)
	res := Result{Merged: make([]bool, len(neighbors))}
	selfGap := 2 * self.Clearance()

	for i := range neighbors {
		if !snap.static[i] || res.Merged[i] {
			continue
		}
		for j := i + 1; j < len(neighbors); j++ {
			if !snap.static[j] || res.Merged[j] {
				continue
			}
			limit := snap.clearance[i] + snap.clearance[j] + selfGap
			if geom.Dist(snap.position[i], snap.position[j]) >= limit {
				continue
			}
			o := entity.Obstacle{
				Start:  snap.position[i],
				End:    snap.position[j],
				Radius: max(snap.clearance[i], snap.clearance[j]),
			}
			res.Obstacles = append(res.Obstacles, o)
			res.Planes = append(res.Planes, vo.ObstaclePlane(self, o, tau))
			res.Pairs = append(res.Pairs, Pair{A: i, B: j})
			res.Merged[i] = true
			res.Merged[j] = true
		}
	}
	return res
}
