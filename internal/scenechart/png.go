// Package scenechart renders scenes and simulation tracks: a static PNG via
// gonum/plot and an interactive HTML scatter via go-echarts.
package scenechart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/orca/internal/fsutil"
	"github.com/banshee-data/orca/internal/scene"
)

// circleSegments is the number of line segments used to outline an agent.
const circleSegments = 32

var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

var wallColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}

// agentColor returns a stable colour for the i-th agent.
func agentColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// NewPlot builds the scene plot: walls, each agent's track, its final
// outline and its final velocity drawn as a segment of length |v|*tau.
func NewPlot(s *scene.Scene, tracks []scene.Track, tau float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("ORCA scene %s", displayName(s))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	for i, o := range s.Obstacles {
		wall, err := plotter.NewLine(plotter.XYs{{X: o.Start.X, Y: o.Start.Y}, {X: o.End.X, Y: o.End.Y}})
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		wall.Color = wallColor
		wall.Width = vg.Points(2)
		p.Add(wall)
		if i == 0 {
			p.Legend.Add("walls", wall)
		}
	}

	for i, a := range s.Agents {
		col := agentColor(i)

		if i < len(tracks) && len(tracks[i].Points) > 1 {
			pts := make(plotter.XYs, 0, len(tracks[i].Points))
			for _, pt := range tracks[i].Points {
				pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, fmt.Errorf("track %s: %w", a.ID, err)
			}
			line.Color = col
			line.Width = vg.Points(1)
			line.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
			p.Add(line)
		}

		outline, err := plotter.NewLine(circle(a.Position.X, a.Position.Y, a.Radius))
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.ID, err)
		}
		outline.Color = col
		outline.Width = vg.Points(1)
		p.Add(outline)
		p.Legend.Add(a.ID, outline)

		centre, err := plotter.NewScatter(plotter.XYs{{X: a.Position.X, Y: a.Position.Y}})
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.ID, err)
		}
		centre.GlyphStyle = draw.GlyphStyle{Color: col, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
		p.Add(centre)

		if a.Velocity.X != 0 || a.Velocity.Y != 0 {
			tip := plotter.XY{X: a.Position.X + a.Velocity.X*tau, Y: a.Position.Y + a.Velocity.Y*tau}
			vel, err := plotter.NewLine(plotter.XYs{{X: a.Position.X, Y: a.Position.Y}, tip})
			if err != nil {
				return nil, fmt.Errorf("agent %s velocity: %w", a.ID, err)
			}
			vel.Color = col
			vel.Width = vg.Points(1.5)
			p.Add(vel)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// WritePNG renders NewPlot to path on fsys.
func WritePNG(fsys fsutil.FileSystem, path string, s *scene.Scene, tracks []scene.Track, tau float64) error {
	p, err := NewPlot(s, tracks, tau)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render png: %w", err)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// circle approximates a circle of radius r around (x, y) as a closed
// polyline.
func circle(x, y, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSegments+1)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = plotter.XY{X: x + r*math.Cos(theta), Y: y + r*math.Sin(theta)}
	}
	return pts
}

func displayName(s *scene.Scene) string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
