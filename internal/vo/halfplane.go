package vo

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/geom"
)

// Halfplane is a velocity-space constraint in offset/normal form. For a base
// velocity b the permitted region is {v : (v - (b+U)) . N >= 0}.
type Halfplane struct {
	U r2.Vec
	N r2.Vec
}

// Boundary returns the boundary point for base velocity base.
func (h Halfplane) Boundary(base r2.Vec) r2.Vec {
	return r2.Add(base, h.U)
}

// Direction returns the direction of the boundary line, N rotated by -90
// degrees.
func (h Halfplane) Direction() r2.Vec {
	return geom.Perp(h.N)
}

// Relax returns a copy whose boundary is moved by step against N, enlarging
// the permitted region.
func (h Halfplane) Relax(step float64) Halfplane {
	return Halfplane{U: r2.Sub(h.U, r2.Scale(step, h.N)), N: h.N}
}

// Contains reports whether v is permitted for base velocity base, within
// geom.Epsilon.
func (h Halfplane) Contains(base, v r2.Vec) bool {
	return r2.Dot(r2.Sub(v, h.Boundary(base)), h.N) >= -geom.Epsilon
}

func (h Halfplane) String() string {
	return fmt.Sprintf("Halfplane{u=(%.6g, %.6g) n=(%.6g, %.6g)}", h.U.X, h.U.Y, h.N.X, h.N.Y)
}

// RelaxAll returns a new slice with every plane relaxed by step.
func RelaxAll(planes []Halfplane, step float64) []Halfplane {
	out := make([]Halfplane, len(planes))
	for i, p := range planes {
		out[i] = p.Relax(step)
	}
	return out
}
