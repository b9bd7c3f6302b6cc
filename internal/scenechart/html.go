package scenechart

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/fsutil"
	"github.com/banshee-data/orca/internal/scene"
)

// RenderHTML writes an interactive chart of s with one line series per agent
// track and one per wall. The axes share a scale so distances read true.
func RenderHTML(w io.Writer, s *scene.Scene, tracks []scene.Track) error {
	lo, hi := extent(s, tracks)
	// Square view so circles and angles are not distorted.
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	pad := 0.05*span + 0.1

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ORCA scene", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: displayName(s), Subtitle: fmt.Sprintf("scene=%s agents=%d walls=%d", s.ID, len(s.Agents), len(s.Obstacles))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: round3(lo.X - pad), Max: round3(lo.X + span + pad), Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: round3(lo.Y - pad), Max: round3(lo.Y + span + pad), Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)

	for i, o := range s.Obstacles {
		data := []opts.LineData{
			{Value: []interface{}{o.Start.X, o.Start.Y}},
			{Value: []interface{}{o.End.X, o.End.Y}},
		}
		line.AddSeries(fmt.Sprintf("wall %d", i), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex(wallColor), Width: 3}),
		)
	}

	for i, a := range s.Agents {
		points := []r2.Vec{a.Position}
		if i < len(tracks) && len(tracks[i].Points) > 0 {
			points = tracks[i].Points
		}
		data := make([]opts.LineData, 0, len(points))
		for _, p := range points {
			data = append(data, opts.LineData{Value: []interface{}{p.X, p.Y}})
		}
		line.AddSeries(a.ID, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true), SymbolSize: 4}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex(agentColor(i)), Width: 1.5}),
		)
	}

	return line.Render(w)
}

// WriteHTML renders RenderHTML to path on fsys.
func WriteHTML(fsys fsutil.FileSystem, path string, s *scene.Scene, tracks []scene.Track) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, s, tracks); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// extent returns the bounding box of every agent disk, track point and wall.
func extent(s *scene.Scene, tracks []scene.Track) (lo, hi r2.Vec) {
	lo = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(p r2.Vec, r float64) {
		lo.X, lo.Y = math.Min(lo.X, p.X-r), math.Min(lo.Y, p.Y-r)
		hi.X, hi.Y = math.Max(hi.X, p.X+r), math.Max(hi.Y, p.Y+r)
	}
	for _, a := range s.Agents {
		grow(a.Position, a.Radius)
	}
	for _, t := range tracks {
		for _, p := range t.Points {
			grow(p, 0)
		}
	}
	for _, o := range s.Obstacles {
		grow(o.Start, o.Radius)
		grow(o.End, o.Radius)
	}
	return lo, hi
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func hex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
